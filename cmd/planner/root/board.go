package root

import (
	"github.com/spf13/cobra"

	"planner/internal/engine"
	"planner/internal/tui"
)

func newBoardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			interval, err := a.cfg.BackupInterval()
			if err != nil {
				return err
			}
			debounce, err := a.cfg.BackupDebounce()
			if err != nil {
				return err
			}
			sched := engine.NewScheduler(svc.CreateAutoBackup, interval, debounce, a.log)
			sched.Start(ctx)
			defer sched.Stop()

			return tui.RunBoard(ctx, svc, sched.Touch, cmd.OutOrStdout())
		},
	}
}
