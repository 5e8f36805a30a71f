package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"planner/internal/storage"
)

func newThemeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark]",
		Short:     "Show or set the colour theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(storage.ThemeLight), string(storage.ThemeDark)},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if len(args) == 1 {
				t := storage.Theme(args[0])
				if !t.IsValid() {
					return fmt.Errorf("theme must be light or dark, got %q", args[0])
				}
				if _, err := svc.ThemeRepo().Set(ctx, t); err != nil {
					return err
				}
			}
			t, err := svc.ThemeRepo().Get(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), styles(ctx, svc).LabelValue("Theme", t))
			return nil
		},
	}
}
