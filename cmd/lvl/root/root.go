package root

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/MehradMi/Solo-Leveling-Task-Tracker/internal/config"
	"github.com/MehradMi/Solo-Leveling-Task-Tracker/internal/engine"
	"github.com/MehradMi/Solo-Leveling-Task-Tracker/internal/logging"
	"github.com/MehradMi/Solo-Leveling-Task-Tracker/internal/ui"
)

const Version = "0.1.0"

// app carries what every command needs once the root pre-run has loaded it.
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	closeLog func() error
	dbPath   string
}

func newRootCmd() *cobra.Command {
	a := &app{log: slog.New(slog.NewTextHandler(io.Discard, nil))}

	cmd := &cobra.Command{
		Use:           "lvl",
		Short:         "LevelUp: turn your tasks into an RPG",
		Long:          "LevelUp is a local CLI/TUI task tracker: create a character, complete real tasks and level up.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.closeLog != nil {
				return a.closeLog()
			}
			return nil
		},
	}
	cmd.Version = Version
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	cmd.PersistentFlags().StringVar(&a.dbPath, "db", "", "Database path (overrides config)")

	cmd.AddCommand(
		newCreateCmd(a),
		newClassesCmd(),
		newCharactersCmd(a),
		newSwitchCmd(a),
		newStatusCmd(a),
		newAddCmd(a),
		newListCmd(a),
		newStartCmd(a),
		newStopCmd(a),
		newLogCmd(a),
		newDoCmd(a),
		newFailCmd(a),
		newPreviewCmd(a),
		newLeaderboardCmd(a),
		newAchievementsCmd(a),
		newTimerCmd(a),
		newExportCmd(a),
		newBoardCmd(a),
	)
	return cmd
}

func (a *app) setup() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.dbPath != "" {
		cfg.DBPath = a.dbPath
	}
	log, closeLog, err := logging.Setup(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	a.closeLog = closeLog
	return nil
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		var nf engine.NotFoundError
		if errors.As(err, &nf) && nf.Kind == "active character" {
			fmt.Fprintln(os.Stderr, ui.Muted.Render("Create one with: lvl create <name> --class <class>"))
		}
		os.Exit(1)
	}
}
