package session

import (
	"errors"
	"testing"

	"rydscheme/internal/dataset"
	"rydscheme/internal/query"
	"rydscheme/internal/scheme"

	"github.com/stretchr/testify/require"
)

var (
	lvA = dataset.Key{N: 10, L: 0, J: 0.5}
	lvB = dataset.Key{N: 10, L: 1, J: 1.5}
	lvC = dataset.Key{N: 11, L: 0, J: 0.5}
	lvD = dataset.Key{N: 12, L: 1, J: 0.5}
	lvE = dataset.Key{N: 9, L: 2, J: 2.5}
	lvF = dataset.Key{N: 9, L: 1, J: 0.5}
	lvG = dataset.Key{N: 13, L: 0, J: 0.5}
)

func st(k dataset.Key, mj float64) dataset.State {
	return dataset.State{N: k.N, L: k.L, J: k.J, MJ: mj}
}

func ladderDataset() *dataset.Dataset {
	return dataset.New(dataset.Tables{
		Levels: []dataset.Level{
			{Key: lvA, Energy: 1.0, Lifetime: 1e6},
			{Key: lvB, Energy: 1.2, Lifetime: 2e6},
			{Key: lvC, Energy: 1.4, Lifetime: 3e6},
			{Key: lvD, Energy: 1.6, Lifetime: 4e6},
			{Key: lvE, Energy: 0.8, Lifetime: 5e6},
			{Key: lvF, Energy: 0.7, Lifetime: 6e6},
			{Key: lvG, Energy: 1.8, Lifetime: 7e6},
		},
		Absorption: []dataset.Absorption{
			{Lower: st(lvA, 0.5), Upper: st(lvB, 1.5), Frequency: 5, Wavelength: 60, Dipole: 0.3},
			{Lower: st(lvA, 0.5), Upper: st(lvD, 0.5), Frequency: 300, Wavelength: 1000, Dipole: 0.05},
			{Lower: st(lvD, 0.5), Upper: st(lvG, 0.5), Frequency: 200, Wavelength: 1500, Dipole: 0.02},
			{Lower: st(lvA, 0.5), Upper: st(lvC, 0.5), Frequency: 100, Wavelength: 3000, Dipole: 0.1},
			{Lower: st(lvA, 0.5), Upper: dataset.State{N: 40, L: 3, J: 3.5, MJ: 0.5}, Frequency: 50, Wavelength: 6000, Dipole: 0.01},
		},
		Spontaneous: []dataset.Spontaneous{
			{Upper: lvB, Lower: lvE, Frequency: 333, Wavelength: 900, Rate: 1e4},
			{Upper: lvE, Lower: lvF, Frequency: 150, Wavelength: 2000, Rate: 500},
			{Upper: lvB, Lower: lvA, Frequency: 5, Wavelength: 60, Rate: 1e3},
			{Upper: lvE, Lower: dataset.Key{N: 8, L: 0, J: 0.5}, Frequency: 20, Wavelength: 15000, Rate: 10},
		},
	})
}

func mustPick(t *testing.T, s *Session, p Pending, row int) {
	t.Helper()
	require.NoError(t, s.Pick(p, row))
}

func mustBegin(t *testing.T, s *Session, a Action) Pending {
	t.Helper()
	p, err := s.Begin(a)
	require.NoError(t, err)
	return p
}

func thzReady(t *testing.T) *Session {
	t.Helper()
	s := New(ladderDataset())
	p, err := s.ApplyRange(query.Range{Lower: 4, Upper: 6})
	require.NoError(t, err)
	require.Equal(t, 1, p.Selection.Len())
	mustPick(t, s, p, 0)
	require.Equal(t, StateTHzReady, s.State())
	return s
}

func requireChained(t *testing.T, sc scheme.Scheme) {
	t.Helper()
	for i, step := range sc.Excitation {
		want := sc.Lower.State
		if i > 0 {
			want = sc.Excitation[i-1].State
		}
		require.Equal(t, want, step.From, "exci step %d", i)
	}
	for i, step := range sc.Spontaneous {
		want := sc.Upper.Key()
		if i > 0 {
			want = sc.Spontaneous[i-1].Key
		}
		require.Equal(t, want, step.From, "spon step %d", i)
	}
}

func TestScenario_THzPickResolvesAnchors(t *testing.T) {
	d := dataset.New(dataset.Tables{
		Levels: []dataset.Level{
			{Key: lvA, Energy: 1.0, Lifetime: 1e6},
			{Key: lvB, Energy: 1.2, Lifetime: 2e6},
		},
		Absorption: []dataset.Absorption{{
			Lower: st(lvA, 0.5), Upper: st(lvB, 1.5),
			Frequency: -5.0, Wavelength: -60.0, Dipole: -0.3,
		}},
	})
	s := New(d)
	require.NotEmpty(t, s.ID())

	p, err := s.ApplyRange(query.Range{Lower: 4.0, Upper: 6.0})
	require.NoError(t, err)
	require.Equal(t, StateInit, p.State)
	require.Equal(t, 1, p.Selection.Len())
	require.Equal(t, dataset.Absorption{
		Lower: st(lvB, 1.5), Upper: st(lvA, 0.5),
		Frequency: 5.0, Wavelength: 60.0, Dipole: 0.3,
	}, p.Selection.Absorption[0])

	mustPick(t, s, p, 0)
	require.Equal(t, StateTHzReady, s.State())
	sc := s.Scheme()
	require.Equal(t, &scheme.Anchor{State: st(lvA, 0.5), Energy: 1.0, Lifetime: 1e6}, sc.Lower)
	require.Equal(t, &scheme.Anchor{State: st(lvB, 1.5), Energy: 1.2, Lifetime: 2e6}, sc.Upper)
	require.True(t, s.Enabled(ActionSelectExcitation))
	require.True(t, s.Enabled(ActionSelectFluorescence))
	require.False(t, s.Enabled(ActionAddExcitation))
	require.False(t, s.Enabled(ActionAddFluorescence))
}

func TestExcitation_SelectThenAppend(t *testing.T) {
	s := thzReady(t)

	p := mustBegin(t, s, ActionSelectExcitation)
	require.Equal(t, StateSeekExciFirst, s.State())
	require.Equal(t, 4, p.Selection.Len())
	mustPick(t, s, p, 1) // A -> D
	require.Equal(t, StateSeekExciFirst, s.State())
	require.Len(t, s.Scheme().Excitation, 1)
	require.True(t, s.Enabled(ActionAddExcitation))

	p = mustBegin(t, s, ActionAddExcitation)
	require.Equal(t, StateSeekExci, s.State())
	require.Equal(t, 1, p.Selection.Len())
	before := s.Scheme().Excitation
	mustPick(t, s, p, 0) // D -> G
	require.Equal(t, StateSeekExci, s.State())

	sc := s.Scheme()
	require.Len(t, sc.Excitation, 2)
	require.Equal(t, before[0], sc.Excitation[0])
	require.Equal(t, scheme.ExcitationStep{
		From:       st(lvD, 0.5),
		State:      st(lvG, 0.5),
		Energy:     1.8,
		Lifetime:   7e6,
		Wavelength: 1500,
		Dipole:     0.02,
	}, sc.Excitation[1])
	requireChained(t, sc)
}

func TestExcitation_SelectAgainRestartsPath(t *testing.T) {
	s := thzReady(t)
	mustPick(t, s, mustBegin(t, s, ActionSelectExcitation), 1)
	mustPick(t, s, mustBegin(t, s, ActionAddExcitation), 0)
	require.Len(t, s.Scheme().Excitation, 2)

	mustPick(t, s, mustBegin(t, s, ActionSelectExcitation), 2) // A -> C
	sc := s.Scheme()
	require.Len(t, sc.Excitation, 1)
	require.Equal(t, st(lvC, 0.5), sc.Excitation[0].State)
	requireChained(t, sc)
}

func TestSpontaneous_SelectThenAppend(t *testing.T) {
	s := thzReady(t)

	p := mustBegin(t, s, ActionSelectFluorescence)
	require.Equal(t, StateSeekSponFirst, s.State())
	require.Equal(t, 2, p.Selection.Len())
	mustPick(t, s, p, 0) // B -> E
	require.Len(t, s.Scheme().Spontaneous, 1)

	p = mustBegin(t, s, ActionAddFluorescence)
	require.Equal(t, StateSeekSpon, s.State())
	require.Equal(t, 2, p.Selection.Len())
	mustPick(t, s, p, 0) // E -> F

	sc := s.Scheme()
	require.Len(t, sc.Spontaneous, 2)
	require.Equal(t, scheme.SpontaneousStep{
		From: lvE, Key: lvF, Energy: 0.7, Lifetime: 6e6, Wavelength: 2000, Rate: 500,
	}, sc.Spontaneous[1])
	requireChained(t, sc)

	mustPick(t, s, mustBegin(t, s, ActionSelectFluorescence), 1) // B -> A
	require.Len(t, s.Scheme().Spontaneous, 1)
	// The excitation path is untouched by fluorescence picks.
	require.Empty(t, s.Scheme().Excitation)
}

func TestPick_DanglingLevelLeavesSchemeUnchanged(t *testing.T) {
	s := thzReady(t)
	mustPick(t, s, mustBegin(t, s, ActionSelectExcitation), 0)
	before := s.Scheme()

	p := mustBegin(t, s, ActionSelectExcitation)
	err := s.Pick(p, 3) // A -> (40, 3, 3.5) which has no level row
	var nf dataset.NotFoundError
	require.True(t, errors.As(err, &nf), "got %v", err)
	require.Equal(t, dataset.Key{N: 40, L: 3, J: 3.5}, nf.Key)

	require.Equal(t, before, s.Scheme())
	_, pending := s.Pending()
	require.False(t, pending)
}

func TestPick_DanglingSpontaneousTarget(t *testing.T) {
	s := thzReady(t)
	mustPick(t, s, mustBegin(t, s, ActionSelectFluorescence), 0)
	p := mustBegin(t, s, ActionAddFluorescence)
	err := s.Pick(p, 1)
	var nf dataset.NotFoundError
	require.True(t, errors.As(err, &nf))
	require.Len(t, s.Scheme().Spontaneous, 1)
}

func TestPick_StrayPickInTHzReady(t *testing.T) {
	s := New(ladderDataset())
	p, err := s.ApplyRange(query.Range{Lower: 4, Upper: 6})
	require.NoError(t, err)
	mustPick(t, s, p, 0)

	require.ErrorIs(t, s.Pick(p, 0), ErrNoPendingSelection)
	require.Equal(t, StateTHzReady, s.State())
}

func TestPick_StaleSelection(t *testing.T) {
	s := New(ladderDataset())
	old, err := s.ApplyRange(query.Range{Lower: 4, Upper: 6})
	require.NoError(t, err)
	s.Cancel()
	_, err = s.ApplyRange(query.Range{Lower: 4, Upper: 6})
	require.NoError(t, err)

	require.ErrorIs(t, s.Pick(old, 0), ErrStaleSelection)
	_, pending := s.Pending()
	require.True(t, pending)
}

func TestPick_RowOutOfRange(t *testing.T) {
	s := New(ladderDataset())
	p, err := s.ApplyRange(query.Range{Lower: 4, Upper: 6})
	require.NoError(t, err)

	var re RowError
	require.True(t, errors.As(s.Pick(p, 1), &re))
	require.Equal(t, 1, re.Len)
	require.Equal(t, StateInit, s.State())
	require.False(t, s.Scheme().HasAnchors())
}

func TestBegin_Gating(t *testing.T) {
	s := New(ladderDataset())
	for _, a := range Actions() {
		require.False(t, s.Enabled(a), a.String())
		_, err := s.Begin(a)
		var de ActionDisabledError
		require.True(t, errors.As(err, &de))
		require.Equal(t, a, de.Action)
	}

	s = thzReady(t)
	_, err := s.Begin(ActionAddFluorescence)
	require.Error(t, err)
}

func TestPendingBlocksNewQueries(t *testing.T) {
	s := thzReady(t)
	_, err := s.Begin(ActionSelectExcitation)
	require.NoError(t, err)
	require.False(t, s.Enabled(ActionSelectFluorescence))

	_, err = s.Begin(ActionSelectFluorescence)
	require.ErrorIs(t, err, ErrSelectionPending)
	_, err = s.ApplyRange(query.Range{Lower: 0, Upper: 10})
	require.ErrorIs(t, err, ErrSelectionPending)
}

func TestCancel_NoStateChange(t *testing.T) {
	s := thzReady(t)
	mustPick(t, s, mustBegin(t, s, ActionSelectExcitation), 0)
	before := s.Scheme()

	_ = mustBegin(t, s, ActionAddExcitation)
	s.Cancel()
	require.Equal(t, before, s.Scheme())
	_, pending := s.Pending()
	require.False(t, pending)
	require.True(t, s.Enabled(ActionAddExcitation))
}

func TestApplyRange_StartsFromScratch(t *testing.T) {
	s := thzReady(t)
	mustPick(t, s, mustBegin(t, s, ActionSelectExcitation), 0)
	mustPick(t, s, mustBegin(t, s, ActionSelectFluorescence), 0)

	p, err := s.ApplyRange(query.Range{Lower: 99, Upper: 101})
	require.NoError(t, err)
	require.Equal(t, StateInit, s.State())
	require.Equal(t, 1, p.Selection.Len())
	sc := s.Scheme()
	require.False(t, sc.HasAnchors())
	require.Empty(t, sc.Excitation)
	require.Empty(t, sc.Spontaneous)
	for _, a := range Actions() {
		require.False(t, s.Enabled(a))
	}
}

func TestEmptySelection_CancelIsTheOnlyWayOut(t *testing.T) {
	s := New(ladderDataset())
	p, err := s.ApplyRange(query.Range{Lower: 1000, Upper: 2000})
	require.NoError(t, err)
	require.Equal(t, 0, p.Selection.Len())
	s.Cancel()
	require.Equal(t, StateInit, s.State())
}

func TestStateStrings(t *testing.T) {
	require.Equal(t, "seek-exci-0", StateSeekExciFirst.String())
	require.Equal(t, "thz-ready", StateTHzReady.String())
	require.Equal(t, "Select fluorescence transition...", ActionSelectFluorescence.String())
}
