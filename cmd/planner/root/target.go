package root

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"planner/internal/ui"
)

func newTargetCmd(a *app) *cobra.Command {
	var undo bool
	cmd := &cobra.Command{
		Use:   "target <YYYY-MM> <number>",
		Short: "Check off a planned target (1-based)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseMonthArg(args[0])
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				return fmt.Errorf("target number must be a positive integer, got %q", args[1])
			}

			ctx := cmd.Context()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()
			if err := requireUnlocked(ctx, svc); err != nil {
				return err
			}

			plan, err := svc.MasterPlanRepo().Get(ctx)
			if err != nil {
				return err
			}
			mp, ok := plan[key]
			if !ok {
				return fmt.Errorf("no plan for %s", key)
			}
			if n > len(mp.Targets) {
				return fmt.Errorf("%s has %d targets", key, len(mp.Targets))
			}

			if _, err := svc.TargetRepo().Update(ctx, key, n-1, !undo); err != nil {
				return err
			}
			afterEdit(ctx, svc)

			s := styles(ctx, svc)
			if undo {
				fmt.Fprintln(cmd.OutOrStdout(), s.Muted.Render(fmt.Sprintf("Unchecked %s target %d: %s", key, n, mp.Targets[n-1])))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), s.Good.Render(fmt.Sprintf("%s Checked %s target %d: %s", ui.IconTarget, key, n, mp.Targets[n-1])))
			return nil
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "uncheck instead")
	return cmd
}
