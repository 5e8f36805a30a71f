package root

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"planner/internal/ui"
)

func newNoteCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Write or remove a day's note",
	}
	cmd.AddCommand(newNoteSetCmd(a), newNoteRmCmd(a))
	return cmd
}

func newNoteSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <YYYY-MM> <day> <text...>",
		Short: "Write a day's note; blank text removes it",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.saveNote(cmd, args[0], args[1], strings.Join(args[2:], " "))
		},
	}
}

func newNoteRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <YYYY-MM> <day>",
		Short: "Remove a day's note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.saveNote(cmd, args[0], args[1], "")
		},
	}
}

func (a *app) saveNote(cmd *cobra.Command, monthArg, dayArg, text string) error {
	key, err := parseMonthArg(monthArg)
	if err != nil {
		return err
	}
	day, err := parseDayArg(dayArg)
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

	if _, err := svc.SaveNote(ctx, key, day, text); err != nil {
		return err
	}
	afterEdit(ctx, svc)

	s := styles(ctx, svc)
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(cmd.OutOrStdout(), s.Muted.Render(fmt.Sprintf("Removed note for %s day %d", key, day)))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), s.Good.Render(fmt.Sprintf("%s Saved note for %s day %d", ui.IconNote, key, day)))
	return nil
}
