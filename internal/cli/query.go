package cli

import (
	"rydscheme/internal/query"

	"github.com/spf13/cobra"
)

type selectionRow struct {
	Index int      `json:"index"`
	Cells []string `json:"cells"`
	Row   any      `json:"row"`
}

type selectionView struct {
	Kind    string         `json:"kind"`
	Headers []string       `json:"headers"`
	Rows    []selectionRow `json:"rows"`
}

func viewSelection(sel query.Selection) selectionView {
	v := selectionView{Kind: sel.Kind.String(), Headers: sel.Headers(), Rows: make([]selectionRow, 0, sel.Len())}
	for i := 0; i < sel.Len(); i++ {
		r := selectionRow{Index: i, Cells: sel.Cells(i)}
		if sel.Kind == query.KindSpontaneous {
			r.Row = sel.Spontaneous[i]
		} else {
			r.Row = sel.Absorption[i]
		}
		v.Rows = append(v.Rows, r)
	}
	return v
}

func newTHzCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "thz",
		Short: "List absorption transitions with |frequency| strictly inside a THz range",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := query.ParseRange(from, to)
			if err != nil {
				return writeErr(cmd, err)
			}
			ds, _, err := loadDataset(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			sel := query.THz(ds, r)
			return writeOut(cmd, app, viewSelection(sel), map[string]any{"count": sel.Len(), "range": r})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Lower bound (THz, exclusive)")
	cmd.Flags().StringVar(&to, "to", "", "Upper bound (THz, exclusive)")
	return cmd
}

func newTransitionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transitions",
		Short: "List transitions leaving a given state",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "exci <n> <l> <j> <mj>",
		Short: "Absorption transitions whose lower state is (n, l, j, mj)",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := parseState(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			ds, _, err := loadDataset(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			sel := query.Excitation(ds, src)
			return writeOut(cmd, app, viewSelection(sel), map[string]any{"count": sel.Len(), "source": src})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "spon <n> <l> <j>",
		Short: "Spontaneous decays out of level (n, l, j)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := parseKey(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			ds, _, err := loadDataset(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			sel := query.Spontaneous(ds, src)
			return writeOut(cmd, app, viewSelection(sel), map[string]any{"count": sel.Len(), "source": src})
		},
	})
	return cmd
}
