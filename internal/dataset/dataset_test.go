package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const levelsDat = `# n l j energy rate
10 0 0.5 1.0 1e6
10 1 1.5 1.2 2e6
11 0 0.5 1.4 3e6
`

const absorptionDat = `10 1 1.5 1.5 10 0 0.5 0.5 -5.0 -60.0 -0.3
10 1 1.5 1.5 11 0 0.5 0.5 2.0 150.0 0.8
`

const spontaneousDat = `11 0 0.5 10 1 1.5 2.0 150.0 4e5
10 1 1.5 10 0 0.5 5.0 60.0 1e3
`

func writeDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range map[string]string{
		LevelsFile:      levelsDat,
		AbsorptionFile:  absorptionDat,
		SpontaneousFile: spontaneousDat,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestLoadDir_ParsesAllTables(t *testing.T) {
	tables, err := LoadDir(writeDataDir(t))
	require.NoError(t, err)
	require.Len(t, tables.Levels, 3)
	require.Len(t, tables.Absorption, 2)
	require.Len(t, tables.Spontaneous, 2)

	require.Equal(t, Level{Key: Key{N: 10, L: 1, J: 1.5}, Energy: 1.2, Lifetime: 2e6}, tables.Levels[1])
	// Raw rows keep their stored sign.
	require.Equal(t, -5.0, tables.Absorption[0].Frequency)
	require.Equal(t, Key{N: 11, L: 0, J: 0.5}, tables.Spontaneous[0].Upper)
	require.Equal(t, 4e5, tables.Spontaneous[0].Rate)
}

func TestReadLevels_RejectsWrongColumnCount(t *testing.T) {
	_, err := ReadLevels(strings.NewReader("10 0 0.5 1.0\n"), LevelsFile)
	var pe ParseError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, 1, pe.Line)
	require.Equal(t, LevelsFile, pe.File)
}

func TestReadLevels_RejectsFractionalN(t *testing.T) {
	_, err := ReadLevels(strings.NewReader("\n10.5 0 0.5 1.0 1e6\n"), LevelsFile)
	var pe ParseError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, 2, pe.Line)
}

func TestNormalize_SwapsNegativeFrequencyRows(t *testing.T) {
	raw := []Absorption{{
		Lower:      State{N: 10, L: 0, J: 0.5, MJ: 0.5},
		Upper:      State{N: 10, L: 1, J: 1.5, MJ: 1.5},
		Frequency:  -5.0,
		Wavelength: -60.0,
		Dipole:     -0.3,
	}}
	got := Normalize(raw)

	require.Equal(t, Absorption{
		Lower:      State{N: 10, L: 1, J: 1.5, MJ: 1.5},
		Upper:      State{N: 10, L: 0, J: 0.5, MJ: 0.5},
		Frequency:  5.0,
		Wavelength: 60.0,
		Dipole:     0.3,
	}, got[0])
	// Input untouched.
	require.Equal(t, -5.0, raw[0].Frequency)
	require.Equal(t, 10, raw[0].Lower.N)
	require.Equal(t, 0, raw[0].Lower.L)
}

func TestNormalize_LeavesPositiveRowsAlone(t *testing.T) {
	row := Absorption{Lower: State{N: 1}, Upper: State{N: 2}, Frequency: 1, Wavelength: 2, Dipole: -3}
	require.Equal(t, row, Normalize([]Absorption{row})[0])
}

func TestLookup(t *testing.T) {
	tables, err := LoadDir(writeDataDir(t))
	require.NoError(t, err)
	d := New(tables)

	for _, lv := range tables.Levels {
		got, err := d.Lookup(lv.Key)
		require.NoError(t, err)
		require.Equal(t, lv, got)
	}

	_, err = d.Lookup(Key{N: 99, L: 0, J: 0.5})
	var nf NotFoundError
	require.True(t, errors.As(err, &nf))
	require.Equal(t, Key{N: 99, L: 0, J: 0.5}, nf.Key)

	// Exact match only.
	_, err = d.Lookup(Key{N: 10, L: 0, J: 0.5000001})
	require.True(t, errors.As(err, &nf))
}

func TestLookup_AmbiguousFailsFast(t *testing.T) {
	d := New(Tables{Levels: []Level{
		{Key: Key{N: 5, L: 0, J: 0.5}, Energy: 1},
		{Key: Key{N: 5, L: 0, J: 0.5}, Energy: 2},
	}})
	_, err := d.Lookup(Key{N: 5, L: 0, J: 0.5})
	var amb AmbiguousError
	require.True(t, errors.As(err, &amb))
	require.Equal(t, 2, amb.Count)
}

func TestNew_NormalizedRowsAscendInEnergy(t *testing.T) {
	tables, err := LoadDir(writeDataDir(t))
	require.NoError(t, err)
	d := New(tables)

	for _, r := range d.Absorption() {
		lo, err := d.Lookup(r.Lower.Key())
		require.NoError(t, err)
		hi, err := d.Lookup(r.Upper.Key())
		require.NoError(t, err)
		require.Less(t, lo.Energy, hi.Energy, "row %v", r)
	}
}

func TestDoctor_CleanDataset(t *testing.T) {
	tables, err := LoadDir(writeDataDir(t))
	require.NoError(t, err)
	rep := Doctor(New(tables))
	require.Empty(t, rep.Issues)
	require.False(t, rep.HasErrors())
	require.Equal(t, 3, rep.Levels)
}

func TestDoctor_ReportsDanglingAndDuplicateLevels(t *testing.T) {
	d := New(Tables{
		Levels: []Level{
			{Key: Key{N: 10, L: 0, J: 0.5}, Energy: 1.0},
			{Key: Key{N: 10, L: 0, J: 0.5}, Energy: 1.0},
		},
		Absorption: []Absorption{{
			Lower:     State{N: 10, L: 0, J: 0.5},
			Upper:     State{N: 12, L: 1, J: 0.5},
			Frequency: 1,
		}},
	})
	rep := Doctor(d)
	require.True(t, rep.HasErrors())

	codes := map[string]int{}
	for _, it := range rep.Issues {
		codes[it.Code]++
	}
	require.Equal(t, 1, codes["level_ambiguous"])
	require.Equal(t, 1, codes["level_missing"])
}

func TestTermSymbol(t *testing.T) {
	require.Equal(t, "s", TermSymbol(0))
	require.Equal(t, "f", TermSymbol(3))
	require.Equal(t, "l=12", TermSymbol(12))
}
