package cli

import (
	"path/filepath"

	"rydscheme/internal/dataset"
	"rydscheme/internal/store"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Copy the text tables from --data into a SQLite cache (--db)",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := dataset.LoadDir(app.cfg.DataDir)
			if err != nil {
				return writeErr(cmd, err)
			}
			path := app.cfg.DBPath
			if path == "" {
				path = store.DefaultPath(app.cfg.DataDir)
			}
			src, err := filepath.Abs(app.cfg.DataDir)
			if err != nil {
				src = app.cfg.DataDir
			}
			info, err := store.Store{Path: path}.Import(cmd.Context(), t, src)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, info, nil)
		},
	}
}
