package root

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"planner/internal/config"
	"planner/internal/engine"
	"planner/internal/storage"
	"planner/internal/ui"
)

const Version = "0.1.0"

// app is the state shared by every command of one invocation.
type app struct {
	configPath string
	verbose    bool

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:           "planner",
		Short:         "Personal strategic planner: monthly targets, daily progress, notes",
		Long:          "Planner tracks a multi-month roadmap locally: per-day completion, notes, monthly reflections and rotating backups.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			log, err := newLogger(cfg.LogLevel, a.verbose)
			if err != nil {
				return err
			}
			a.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/.planner/config.toml)")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(
		newInitCmd(a),
		newStatusCmd(a),
		newMonthCmd(a),
		newToggleCmd(a),
		newNoteCmd(a),
		newSummaryCmd(a),
		newPlanCmd(a),
		newTargetCmd(a),
		newSettingsCmd(a),
		newThemeCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newBackupCmd(a),
		newValidateCmd(a),
		newResetCmd(a),
		newBoardCmd(a),
		newConfigCmd(a),
	)
	return cmd
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	lvl := zapcore.WarnLevel
	if level != "" {
		if err := lvl.Set(level); err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	log, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log, nil
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	s := ui.For(storage.ThemeLight)
	msg := ui.IconError + " " + err.Error()
	if code := engine.Code(err); code != engine.CodeUnknown {
		msg += " [" + code + "]"
	}
	fmt.Fprintln(w, s.Bad.Render(msg))
}
