package root

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"planner/internal/engine"
	"planner/internal/ui"
)

func newExportCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every entity to a JSON backup file",
		Long:  "Write every entity to a JSON backup file. The default name is planner-backup-YYYY-MM-DD.json; -o - writes to stdout.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			data, err := svc.ExportJSON(ctx)
			if err != nil {
				return err
			}
			if output == "-" {
				_, err := cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			}
			if output == "" {
				output = engine.ExportFileName(time.Now())
			}
			if err := os.WriteFile(output, data, 0o600); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), styles(ctx, svc).Good.Render(ui.IconBackup+" Exported to "+output))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (- for stdout)")
	return cmd
}
