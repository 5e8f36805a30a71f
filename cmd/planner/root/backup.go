package root

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"planner/internal/storage"
	"planner/internal/ui"
)

func newBackupCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Manage rotating auto-backups",
	}
	cmd.AddCommand(newBackupCreateCmd(a), newBackupListCmd(a), newBackupRestoreCmd(a))
	return cmd
}

func newBackupCreateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Make an auto-backup now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if !svc.CreateAutoBackup(ctx) {
				return errors.New("auto-backup failed; see log")
			}
			list, err := svc.ListAutoBackups(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), styles(ctx, svc).Good.Render(ui.IconBackup+" Created "+list[0].Key))
			return nil
		},
	}
}

func newBackupListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List auto-backups, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			list, err := svc.ListAutoBackups(ctx)
			if err != nil {
				return err
			}
			s := styles(ctx, svc)
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), s.Muted.Render("No auto-backups."))
				return nil
			}
			for _, b := range list {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", s.Key.Render(b.DisplayDate), b.Key)
			}
			return nil
		},
	}
}

func newBackupRestoreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <key|timestamp>",
		Short: "Restore an auto-backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if !strings.HasPrefix(key, storage.AutoBackupPrefix) {
				key = storage.AutoBackupPrefix + key
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

			if !svc.RestoreFromAutoBackup(ctx, key) {
				return fmt.Errorf("could not restore %s; see 'planner backup list'", key)
			}
			fmt.Fprintln(cmd.OutOrStdout(), styles(ctx, svc).Good.Render(ui.IconDone+" Restored "+key))
			return nil
		},
	}
}
