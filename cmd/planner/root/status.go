package root

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"planner/internal/engine"
	"planner/internal/storage"
	"planner/internal/ui"
)

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show progress for every month of the roadmap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			snap, err := svc.Snapshot(ctx)
			if err != nil {
				return err
			}
			s := ui.For(snap.Theme)
			out := cmd.OutOrStdout()
			current := engine.CurrentMonthKey(time.Now())

			fmt.Fprintln(out, s.Heading(ui.IconPlan, "Roadmap"))
			for _, k := range snap.Plan.Keys() {
				p := engine.EnhancedProgress(snap, k)
				notes := engine.NotesProgress(snap, k)
				marker := "  "
				if k == current {
					marker = "> "
				}
				fmt.Fprintf(out, "%s%s %-16s days %s notes %s overall %s %s\n",
					marker, k, label(snap.Plan, k),
					s.Percent(p.Daily), s.Percent(notes.Overall), s.Percent(p.Overall),
					ui.ProgressBar(p.Overall, 20))
			}
			fmt.Fprintln(out, "")
			lock := "off"
			if snap.Settings.LockMode {
				lock = ui.IconLock + " on"
			}
			fmt.Fprintln(out, s.LabelValue("Lock", lock))
			fmt.Fprintln(out, s.LabelValue("Auto-save", snap.Settings.AutoSave))
			fmt.Fprintln(out, s.LabelValue("Theme", snap.Theme))
			return nil
		},
	}
}

func label(plan storage.MasterPlan, k string) string {
	if mp, ok := plan[k]; ok && mp.Month != "" {
		return mp.Month
	}
	return storage.MonthLabel(k)
}
