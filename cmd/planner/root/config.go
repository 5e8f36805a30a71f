package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"planner/internal/config"
	"planner/internal/storage"
	"planner/internal/ui"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a commented default config file (never overwrites)",
		Args:  cobra.NoArgs,
		// The file may not exist yet, so skip loading it.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath
			if path == "" {
				p, err := config.DefaultConfigPath()
				if err != nil {
					return err
				}
				path = p
			}
			created, err := config.WriteDefault(path)
			if err != nil {
				return err
			}
			s := ui.For(storage.ThemeLight)
			if !created {
				fmt.Fprintln(cmd.OutOrStdout(), s.Muted.Render("Config already exists at "+path))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), s.Good.Render(ui.IconDone+" Wrote "+path))
			return nil
		},
	})
	return cmd
}
