package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"planner/internal/ui"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the store and seed the roadmap if it is empty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			s := styles(ctx, svc)
			keys, err := svc.MonthKeys(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, s.Heading(ui.IconPlan, "Planner ready"))
			fmt.Fprintln(out, s.LabelValue("Backend", a.cfg.Store.Backend))
			if len(keys) > 0 {
				fmt.Fprintln(out, s.LabelValue("Months", fmt.Sprintf("%d (%s to %s)", len(keys), keys[0], keys[len(keys)-1])))
			}
			if issues := svc.Validate(ctx); len(issues) > 0 {
				fmt.Fprintln(out, s.Warn.Render(fmt.Sprintf("%s %d integrity issue(s); run 'planner validate'", ui.IconWarn, len(issues))))
			}
			return nil
		},
	}
}
