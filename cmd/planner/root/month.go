package root

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"planner/internal/engine"
	"planner/internal/ui"
)

func newMonthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Show one month: targets, steps, progress and notes",
		Long:  "Show one month of the roadmap. Defaults to the current month.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := engine.CurrentMonthKey(time.Now())
			if len(args) == 1 {
				k, err := parseMonthArg(args[0])
				if err != nil {
					return err
				}
				key = k
			}

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

			mp, ok := snap.Plan[key]
			fmt.Fprintln(out, s.Heading(ui.IconCalendar, label(snap.Plan, key)))
			if !ok {
				fmt.Fprintln(out, s.Muted.Render("No plan for this month."))
				return nil
			}

			enhanced := engine.EnhancedProgress(snap, key)
			notes := engine.NotesProgress(snap, key)
			fmt.Fprintln(out, s.LabelValue("Overall", s.Percent(enhanced.Overall)+" "+ui.ProgressBar(enhanced.Overall, 20)))
			fmt.Fprintln(out, s.LabelValue("Days done", s.Percent(enhanced.Daily)))
			fmt.Fprintln(out, s.LabelValue("Target mentions", s.Percent(enhanced.Targets)))
			fmt.Fprintln(out, s.LabelValue("Targets checked", s.Percent(engine.TargetProgress(snap, key))))
			fmt.Fprintln(out, s.LabelValue("Notes", fmt.Sprintf("%d/%d days %s", notes.NotesCount, notes.TotalDays, s.Percent(notes.Overall))))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, s.H2.Render(ui.IconTarget+" Targets"))
			for i, t := range mp.Targets {
				mark := "[ ]"
				if snap.Targets[key][strconv.Itoa(i)] {
					mark = s.Good.Render("[x]")
				}
				fmt.Fprintf(out, "%s %d. %s\n", mark, i+1, t)
			}
			if len(mp.HowToAchieve) > 0 {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, s.H2.Render("How to achieve"))
				for _, step := range mp.HowToAchieve {
					fmt.Fprintf(out, "- %s\n", step)
				}
			}
			if mp.MonthlySummary != "" {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, s.Muted.Render(mp.MonthlySummary))
			}
			if text := snap.Summaries[key]; text != "" {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, s.H2.Render("Reflection"))
				fmt.Fprintln(out, text)
			}

			days := sortedDays(snap.Notes[key], snap.Daily[key])
			if len(days) > 0 {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, s.H2.Render(ui.IconNote+" Days"))
			}
			for _, d := range days {
				ds := strconv.Itoa(d)
				mark := "  "
				if snap.Daily[key][ds] {
					mark = ui.IconDone
				}
				fmt.Fprintf(out, "%s %2d %s\n", mark, d, snap.Notes[key][ds])
			}
			return nil
		},
	}
}

// sortedDays lists the days that carry a note or a completion flag.
func sortedDays(notes map[string]string, done map[string]bool) []int {
	seen := map[int]bool{}
	for k := range notes {
		if d, err := strconv.Atoi(k); err == nil {
			seen[d] = true
		}
	}
	for k, v := range done {
		if d, err := strconv.Atoi(k); err == nil && v {
			seen[d] = true
		}
	}
	days := make([]int, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}
