package cli

import (
	"errors"
	"fmt"

	"rydscheme/internal/publish"
	"rydscheme/internal/query"
	"rydscheme/internal/render"
	"rydscheme/internal/scheme"
	"rydscheme/internal/session"

	"github.com/spf13/cobra"
)

type schemeResult struct {
	Scheme scheme.Scheme `json:"scheme"`
	Scene  render.Scene  `json:"scene"`
	Labels schemeLabels  `json:"labels"`
}

type schemeLabels struct {
	THz         string   `json:"thz"`
	Lower       string   `json:"lower"`
	Upper       string   `json:"upper"`
	Excitation  []string `json:"exci"`
	Spontaneous []string `json:"spon"`
}

func newSchemeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scheme",
		Short: "Build excitation/decay schemes without the TUI",
	}

	var from, to string
	var thz int
	var exci, spon []int
	var publishTo string
	var overwrite bool

	build := &cobra.Command{
		Use:   "build",
		Short: "Replay a sequence of table picks and print the resulting scheme",
		Long: `Replays the interactive flow: apply the THz range, pick row --thz of the THz table,
then pick the --exci rows one after another (the first restarts the excitation path,
the rest extend it) and likewise the --spon rows. Row numbers are 0-based positions in
the table shown at that step (see "rydscheme thz" and "rydscheme transitions").`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := query.ParseRange(from, to)
			if err != nil {
				return writeErr(cmd, err)
			}
			if thz < 0 {
				return writeErr(cmd, errors.New("--thz is required"))
			}
			ds, source, err := loadDataset(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}

			s := session.New(ds)
			if err := replay(s, r, thz, exci, spon); err != nil {
				return writeErr(cmd, err)
			}

			sc := s.Scheme()
			res := schemeResult{
				Scheme: sc,
				Scene:  render.Project(sc),
				Labels: schemeLabels{
					THz:         sc.THzLabel(),
					Lower:       sc.LowerLabel(),
					Upper:       sc.UpperLabel(),
					Excitation:  sc.ExcitationLines(),
					Spontaneous: sc.SpontaneousLines(),
				},
			}
			meta := map[string]any{
				"state":     s.State().String(),
				"sessionId": s.ID(),
			}
			if publishTo != "" {
				wr, err := publish.WriteScheme(sc, publishTo, publish.WriteOptions{
					Overwrite: overwrite,
					Render: publish.RenderOptions{
						Source:    source,
						SessionID: s.ID(),
						Range:     fmt.Sprintf("(%g, %g)", r.Lower, r.Upper),
					},
				})
				if err != nil {
					return writeErr(cmd, err)
				}
				meta["written"] = wr.Written
			}
			return writeOut(cmd, app, res, meta)
		},
	}
	build.Flags().StringVar(&from, "from", "", "Lower THz bound (exclusive)")
	build.Flags().StringVar(&to, "to", "", "Upper THz bound (exclusive)")
	build.Flags().IntVar(&thz, "thz", -1, "Row of the THz table to anchor on")
	build.Flags().IntSliceVar(&exci, "exci", nil, "Rows to pick for the excitation path, in order")
	build.Flags().IntSliceVar(&spon, "spon", nil, "Rows to pick for the spontaneous path, in order")
	build.Flags().StringVar(&publishTo, "publish", "", "Also write the scheme as a markdown report to this file")
	build.Flags().BoolVar(&overwrite, "overwrite", false, "Allow --publish to replace an existing file")

	cmd.AddCommand(build)
	return cmd
}

// replay drives s through the same transitions the TUI would.
func replay(s *session.Session, r query.Range, thz int, exci, spon []int) error {
	p, err := s.ApplyRange(r)
	if err != nil {
		return err
	}
	if err := s.Pick(p, thz); err != nil {
		return fmt.Errorf("--thz %d: %w", thz, err)
	}

	paths := []struct {
		flag         string
		rows         []int
		first, again session.Action
	}{
		{"--exci", exci, session.ActionSelectExcitation, session.ActionAddExcitation},
		{"--spon", spon, session.ActionSelectFluorescence, session.ActionAddFluorescence},
	}
	for _, path := range paths {
		for i, row := range path.rows {
			a := path.again
			if i == 0 {
				a = path.first
			}
			p, err := s.Begin(a)
			if err != nil {
				return fmt.Errorf("%s[%d]: %w", path.flag, i, err)
			}
			if err := s.Pick(p, row); err != nil {
				return fmt.Errorf("%s[%d] row %d: %w", path.flag, i, row, err)
			}
		}
	}
	return nil
}
