package root

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"planner/internal/engine"
	"planner/internal/ui"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace entities with those in a JSON backup file",
		Long: `Replace entities with those in a JSON backup file (- reads stdin).
Entities absent from the file are left alone. A malformed file changes nothing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read import: %w", err)
			}
			bundle, err := engine.ParseBundle(data)
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

			if err := svc.ImportAll(ctx, bundle); err != nil {
				return err
			}
			afterEdit(ctx, svc)
			fmt.Fprintln(cmd.OutOrStdout(), styles(ctx, svc).Good.Render(ui.IconDone+" Imported "+args[0]))
			return nil
		},
	}
}
