package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"planner/internal/ui"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check stored data for corruption",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			// No InitializeStorage here: missing entities are findings.
			svc := newServiceOn(a, store)
			s := styles(ctx, svc)
			issues := svc.Validate(ctx)
			if len(issues) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), s.Good.Render(ui.IconDone+" No issues"))
				return nil
			}
			for _, issue := range issues {
				fmt.Fprintln(cmd.OutOrStdout(), s.Warn.Render(ui.IconWarn+" "+issue))
			}
			return fmt.Errorf("%d integrity issue(s)", len(issues))
		},
	}
}
