package cli

import (
	"fmt"
	"strconv"

	"rydscheme/internal/config"

	"github.com/spf13/cobra"
)

var configKeys = []string{"data-dir", "db", "format", "plot-width", "plot-height"}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the global config (~/.rydscheme/config.json)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, app.cfg, map[string]any{"path": path})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Set a config value (data-dir, db, format, plot-width, plot-height)",
		Args:      cobra.ExactArgs(2),
		ValidArgs: configKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := setConfigValue(cfg, args[0], args[1]); err != nil {
				return writeErr(cmd, err)
			}
			if err := config.Save(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, cfg, nil)
		},
	})
	return cmd
}

func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "data-dir":
		cfg.DataDir = value
	case "db":
		cfg.DBPath = value
	case "format":
		if value != "json" && value != "edn" {
			return argError{name: "format", text: value, want: "json or edn"}
		}
		cfg.Format = value
	case "plot-width", "plot-height":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return argError{name: key, text: value, want: "a non-negative integer"}
		}
		if cfg.TUI == nil {
			cfg.TUI = &config.TUIConfig{}
		}
		if key == "plot-width" {
			cfg.TUI.PlotWidth = n
		} else {
			cfg.TUI.PlotHeight = n
		}
	default:
		return fmt.Errorf("unknown config key %q (want one of %v)", key, configKeys)
	}
	return nil
}
