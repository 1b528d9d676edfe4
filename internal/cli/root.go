package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"rydscheme/internal/config"
	"rydscheme/internal/dataset"
	"rydscheme/internal/format"
	"rydscheme/internal/store"
	"rydscheme/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	DataDir    string
	DBPath     string
	Format     string
	PrettyJSON bool

	cfg config.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "rydscheme",
		Short:        "Explore Rydberg level data and build THz excitation/decay schemes",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI (reads levels.dat, absorption.dat, spontaneous.dat)
  rydscheme --data ./data

  # Scriptable queries
  rydscheme thz --from 0.3 --to 3
  rydscheme levels show 40 1 1.5

  # Build a scheme without the TUI
  rydscheme scheme build --from 0.3 --to 3 --thz 0 --exci 2,0 --spon 1
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd.Context(), app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		config.LoadDotEnv()
		cfg, err := config.Resolve(config.Overrides{DataDir: app.DataDir, DBPath: app.DBPath, Format: app.Format})
		if err != nil {
			return writeErr(cmd, err)
		}
		app.cfg = cfg
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.DataDir, "data", "", "Directory holding levels.dat, absorption.dat and spontaneous.dat (env RYDSCHEME_DATA)")
	cmd.PersistentFlags().StringVar(&app.DBPath, "db", "", "Load the dataset from this SQLite cache instead of --data (env RYDSCHEME_DB)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", "", "Output format (json|edn) (env RYDSCHEME_FORMAT)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print output")

	cmd.AddCommand(newLevelsCmd(app))
	cmd.AddCommand(newTHzCmd(app))
	cmd.AddCommand(newTransitionsCmd(app))
	cmd.AddCommand(newSchemeCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(ctx context.Context, app *App) error {
	ds, source, err := loadDataset(ctx, app)
	if err != nil {
		return err
	}
	opts := tui.Options{Source: source}
	if app.cfg.TUI != nil {
		opts.PlotWidth = app.cfg.TUI.PlotWidth
		opts.PlotHeight = app.cfg.TUI.PlotHeight
	}
	return tui.Run(ds, opts)
}

// loadDataset reads the tables from the SQLite cache when one is configured,
// otherwise from the text files, and normalizes them.
func loadDataset(ctx context.Context, app *App) (*dataset.Dataset, string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if app.cfg.DBPath != "" {
		t, err := store.Store{Path: app.cfg.DBPath}.Load(ctx)
		if err != nil {
			return nil, "", fmt.Errorf("load %s: %w", app.cfg.DBPath, err)
		}
		return dataset.New(t), app.cfg.DBPath, nil
	}
	t, err := dataset.LoadDir(app.cfg.DataDir)
	if err != nil {
		return nil, "", err
	}
	src, err := filepath.Abs(app.cfg.DataDir)
	if err != nil {
		src = app.cfg.DataDir
	}
	return dataset.New(t), src, nil
}

func writeOut(cmd *cobra.Command, app *App, data any, meta map[string]any) error {
	return format.Write(cmd.OutOrStdout(), format.Envelope{Data: data, Meta: meta}, app.cfg.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
