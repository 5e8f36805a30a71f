package root

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSummaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <YYYY-MM> <text...>",
		Short: "Write the monthly reflection",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseMonthArg(args[0])
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

			if _, err := svc.SummaryRepo().Update(ctx, key, strings.Join(args[1:], " ")); err != nil {
				return err
			}
			afterEdit(ctx, svc)
			fmt.Fprintln(cmd.OutOrStdout(), styles(ctx, svc).Good.Render("Saved reflection for "+key))
			return nil
		},
	}
}
