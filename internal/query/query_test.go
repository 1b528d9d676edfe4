package query

import (
	"errors"
	"testing"

	"rydscheme/internal/dataset"

	"github.com/stretchr/testify/require"
)

func testDataset() *dataset.Dataset {
	return dataset.New(dataset.Tables{
		Levels: []dataset.Level{
			{Key: dataset.Key{N: 10, L: 0, J: 0.5}, Energy: 1.0, Lifetime: 1e6},
			{Key: dataset.Key{N: 10, L: 1, J: 1.5}, Energy: 1.2, Lifetime: 2e6},
			{Key: dataset.Key{N: 11, L: 0, J: 0.5}, Energy: 1.4, Lifetime: 3e6},
		},
		Absorption: []dataset.Absorption{
			{
				Lower:     dataset.State{N: 10, L: 0, J: 0.5, MJ: 0.5},
				Upper:     dataset.State{N: 10, L: 1, J: 1.5, MJ: 1.5},
				Frequency: -5.0, Wavelength: -60.0, Dipole: -0.3,
			},
			{
				Lower:     dataset.State{N: 10, L: 1, J: 1.5, MJ: 1.5},
				Upper:     dataset.State{N: 11, L: 0, J: 0.5, MJ: 0.5},
				Frequency: 4.0, Wavelength: 75.0, Dipole: 0.8,
			},
			{
				Lower:     dataset.State{N: 10, L: 1, J: 1.5, MJ: 0.5},
				Upper:     dataset.State{N: 11, L: 0, J: 0.5, MJ: 0.5},
				Frequency: 6.0, Wavelength: 50.0, Dipole: 0.1,
			},
		},
		Spontaneous: []dataset.Spontaneous{
			{Upper: dataset.Key{N: 11, L: 0, J: 0.5}, Lower: dataset.Key{N: 10, L: 1, J: 1.5}, Frequency: 4.0, Wavelength: 75.0, Rate: 4e5},
			{Upper: dataset.Key{N: 10, L: 1, J: 1.5}, Lower: dataset.Key{N: 10, L: 0, J: 0.5}, Frequency: 5.0, Wavelength: 60.0, Rate: 1e3},
		},
	})
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange(" 4 ", "6.5")
	require.NoError(t, err)
	require.Equal(t, Range{Lower: 4, Upper: 6.5}, r)

	_, err = ParseRange("four", "6")
	var pe ParseError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, "lower", pe.Field)

	_, err = ParseRange("4", "")
	require.True(t, errors.As(err, &pe))
	require.Equal(t, "upper", pe.Field)
	require.Contains(t, pe.Error(), "empty")
}

func TestTHz_BoundsAreExclusive(t *testing.T) {
	d := testDataset()

	sel := THz(d, Range{Lower: 4.0, Upper: 6.0})
	require.Equal(t, 1, sel.Len())
	require.Equal(t, 5.0, sel.Absorption[0].Frequency)

	sel = THz(d, Range{Lower: 3.9, Upper: 6.1})
	require.Equal(t, 3, sel.Len())
}

func TestTHz_EmptyResultIsValid(t *testing.T) {
	sel := THz(testDataset(), Range{Lower: 100, Upper: 200})
	require.Equal(t, 0, sel.Len())
	require.NotNil(t, sel.Absorption)

	// Inverted range matches nothing.
	require.Equal(t, 0, THz(testDataset(), Range{Lower: 6, Upper: 4}).Len())
}

func TestTHz_DisplayDropsWavelengthButRowKeepsIt(t *testing.T) {
	sel := THz(testDataset(), Range{Lower: 4.0, Upper: 6.0})
	require.Equal(t, []string{"10", "1", "1.5", "1.5", "10", "0", "0.5", "0.5", "5", "0.3"}, sel.Cells(0))
	require.Len(t, sel.Headers(), len(sel.Cells(0)))
	require.Equal(t, 60.0, sel.Absorption[0].Wavelength)
}

func TestExcitation_MatchesLowerStateIncludingMJ(t *testing.T) {
	d := testDataset()
	sel := Excitation(d, dataset.State{N: 10, L: 1, J: 1.5, MJ: 1.5})
	require.Equal(t, 2, sel.Len())
	require.Equal(t, KindExcitation, sel.Kind)
	// The normalized first row and the second row both start from this state.
	for i := 0; i < sel.Len(); i++ {
		require.Equal(t, dataset.State{N: 10, L: 1, J: 1.5, MJ: 1.5}, sel.Absorption[i].Lower)
	}
	require.Equal(t, "λ (nm)", sel.Headers()[8])
	require.Equal(t, "75", sel.Cells(1)[8])

	require.Equal(t, 0, Excitation(d, dataset.State{N: 10, L: 1, J: 1.5, MJ: -1.5}).Len())
}

func TestSpontaneous_MatchesUpperKey(t *testing.T) {
	sel := Spontaneous(testDataset(), dataset.Key{N: 11, L: 0, J: 0.5})
	require.Equal(t, 1, sel.Len())
	require.Equal(t, []string{"11", "0", "0.5", "10", "1", "1.5", "75", "400000"}, sel.Cells(0))
	require.Len(t, sel.Headers(), 8)
}
