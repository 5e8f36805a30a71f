package root

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"planner/internal/ui"
)

func newResetCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all planner data and re-seed the roadmap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				fmt.Fprint(cmd.OutOrStdout(), "This erases notes, progress, summaries, settings and backups. Type 'yes' to continue: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("reset cancelled")
				}
				if strings.TrimSpace(line) != "yes" {
					return errors.New("reset cancelled")
				}
			}

			ctx := cmd.Context()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			plan, err := a.seedPlan()
			if err != nil {
				return err
			}
			if err := svc.Reset(ctx, plan); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), styles(ctx, svc).Good.Render(ui.IconDone+" Planner reset"))
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")
	return cmd
}
