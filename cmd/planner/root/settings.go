package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"planner/internal/storage"
)

func newSettingsCmd(a *app) *cobra.Command {
	var (
		lock     bool
		unlock   bool
		autoSave bool
	)
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change lock mode and auto-save",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if lock && unlock {
				return errors.New("--lock and --unlock are mutually exclusive")
			}
			var patch storage.SettingsPatch
			switch {
			case lock:
				v := true
				patch.LockMode = &v
			case unlock:
				v := false
				patch.LockMode = &v
			}
			if cmd.Flags().Changed("autosave") {
				patch.AutoSave = &autoSave
			}

			ctx := cmd.Context()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var s storage.Settings
			if patch == (storage.SettingsPatch{}) {
				s, err = svc.SettingsRepo().Get(ctx)
			} else {
				s, err = svc.SettingsRepo().Update(ctx, patch)
			}
			if err != nil {
				return err
			}

			st := styles(ctx, svc)
			fmt.Fprintln(cmd.OutOrStdout(), st.LabelValue("Lock", s.LockMode))
			fmt.Fprintln(cmd.OutOrStdout(), st.LabelValue("Auto-save", s.AutoSave))
			return nil
		},
	}
	cmd.Flags().BoolVar(&lock, "lock", false, "refuse edits until unlocked")
	cmd.Flags().BoolVar(&unlock, "unlock", false, "allow edits again")
	cmd.Flags().BoolVar(&autoSave, "autosave", true, "make an auto-backup after each edit")
	return cmd
}
