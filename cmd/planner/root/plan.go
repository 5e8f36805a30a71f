package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"planner/internal/storage"
)

func newPlanCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Edit the roadmap",
	}
	cmd.AddCommand(newPlanSetCmd(a))
	return cmd
}

func newPlanSetCmd(a *app) *cobra.Command {
	var (
		label   string
		summary string
		targets []string
		steps   []string
	)
	cmd := &cobra.Command{
		Use:   "set <YYYY-MM>",
		Short: "Change fields of a month, creating it if missing",
		Long: `Change fields of one month of the roadmap. Only the flags given are changed.
--target and --step replace the whole list; repeat them to give several.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseMonthArg(args[0])
			if err != nil {
				return err
			}

			var patch storage.MonthPlanPatch
			flags := cmd.Flags()
			if flags.Changed("label") {
				patch.Month = &label
			}
			if flags.Changed("summary") {
				patch.MonthlySummary = &summary
			}
			if flags.Changed("target") {
				patch.Targets = &targets
			}
			if flags.Changed("step") {
				patch.HowToAchieve = &steps
			}
			if patch == (storage.MonthPlanPatch{}) {
				return errors.New("nothing to change; pass --label, --summary, --target or --step")
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

			plan, err := svc.MasterPlanRepo().Update(ctx, key, patch)
			if err != nil {
				return err
			}
			afterEdit(ctx, svc)
			mp := plan[key]
			fmt.Fprintln(cmd.OutOrStdout(), styles(ctx, svc).Good.Render(
				fmt.Sprintf("Updated %s (%s): %d targets, %d steps", key, mp.Month, len(mp.Targets), len(mp.HowToAchieve))))
			return nil
		},
	}
	cmd.Flags().StringVar(&label, "label", "", "display label, e.g. \"January 2026\"")
	cmd.Flags().StringVar(&summary, "summary", "", "planned summary of the month")
	cmd.Flags().StringArrayVar(&targets, "target", nil, "target (repeatable, replaces all)")
	cmd.Flags().StringArrayVar(&steps, "step", nil, "how-to-achieve step (repeatable, replaces all)")
	return cmd
}
