package cli

import (
	"strconv"
	"strings"

	"rydscheme/internal/dataset"

	"github.com/spf13/cobra"
)

func newLevelsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "levels",
		Short: "Level table lookups",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show <n> <l> <j>",
		Short: "Show energy and decay rate of a level",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseKey(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			ds, _, err := loadDataset(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			lv, err := ds.Lookup(key)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, lv, map[string]any{
				"term": strconv.Itoa(lv.N) + dataset.TermSymbol(lv.L),
			})
		},
	})
	return cmd
}

func parseKey(args []string) (dataset.Key, error) {
	n, err := parseInt("n", args[0])
	if err != nil {
		return dataset.Key{}, err
	}
	l, err := parseInt("l", args[1])
	if err != nil {
		return dataset.Key{}, err
	}
	j, err := parseFloat("j", args[2])
	if err != nil {
		return dataset.Key{}, err
	}
	return dataset.Key{N: n, L: l, J: j}, nil
}

func parseState(args []string) (dataset.State, error) {
	k, err := parseKey(args[:3])
	if err != nil {
		return dataset.State{}, err
	}
	mj, err := parseFloat("mj", args[3])
	if err != nil {
		return dataset.State{}, err
	}
	return dataset.State{N: k.N, L: k.L, J: k.J, MJ: mj}, nil
}

func parseInt(name, s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, argError{name: name, text: s, want: "an integer"}
	}
	return v, nil
}

func parseFloat(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, argError{name: name, text: s, want: "a number"}
	}
	return v, nil
}
