package root

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"planner/internal/ui"
)

func newToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <YYYY-MM> <day>",
		Short: "Flip a day between done and not done",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseMonthArg(args[0])
			if err != nil {
				return err
			}
			day, err := parseDayArg(args[1])
			if err != nil {
				return err
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

			progress, err := svc.ProgressRepo().Toggle(ctx, key, day)
			if err != nil {
				return err
			}
			afterEdit(ctx, svc)

			s := styles(ctx, svc)
			if progress[key][strconv.Itoa(day)] {
				fmt.Fprintln(cmd.OutOrStdout(), s.Good.Render(fmt.Sprintf("%s %s day %d done", ui.IconDone, key, day)))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), s.Muted.Render(fmt.Sprintf("%s day %d reopened", key, day)))
			}
			return nil
		},
	}
}
