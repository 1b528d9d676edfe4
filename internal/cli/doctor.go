package cli

import (
	"rydscheme/internal/dataset"

	"github.com/spf13/cobra"
)

func newDoctorCmd(app *App) *cobra.Command {
	var fail bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check level uniqueness, dangling transitions and energy ordering",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, source, err := loadDataset(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}

			report := dataset.Doctor(ds)
			if err := writeOut(cmd, app, report, map[string]any{
				"source":    source,
				"issues":    len(report.Issues),
				"hasErrors": report.HasErrors(),
			}); err != nil {
				return err
			}

			if fail && report.HasErrors() {
				return dataset.ErrDoctorIssuesFound
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fail, "fail", false, "Exit with non-zero status if errors are found")
	return cmd
}
