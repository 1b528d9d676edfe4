// Package session drives level and path selection for one interactive run.
//
// A Session is single-threaded: one table is open at a time, represented by
// a Pending value, and each pick is resolved against the Pending it was made
// in. Every step is computed on a copy of the scheme and committed only after
// all level lookups succeed.
package session

import (
	"fmt"

	"rydscheme/internal/dataset"
	"rydscheme/internal/query"
	"rydscheme/internal/scheme"

	"github.com/google/uuid"
)

// Pending is the context a forthcoming pick resolves against: the branch of
// the state machine and the rows the table shows.
type Pending struct {
	seq       uint64
	State     State
	Selection query.Selection
}

type Session struct {
	id      string
	data    *dataset.Dataset
	state   State
	scheme  scheme.Scheme
	pending *Pending
	seq     uint64
}

func New(d *dataset.Dataset) *Session {
	return &Session{
		id:     uuid.NewString(),
		data:   d,
		state:  StateInit,
		scheme: scheme.New(),
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) State() State { return s.state }

// Scheme returns a copy of the current scheme.
func (s *Session) Scheme() scheme.Scheme { return s.scheme.Clone() }

func (s *Session) Pending() (Pending, bool) {
	if s.pending == nil {
		return Pending{}, false
	}
	return *s.pending, true
}

// Enabled reports whether a can be started now.
func (s *Session) Enabled(a Action) bool {
	if s.pending != nil {
		return false
	}
	switch a {
	case ActionSelectExcitation, ActionSelectFluorescence:
		return s.scheme.HasAnchors()
	case ActionAddExcitation:
		return len(s.scheme.Excitation) > 0
	case ActionAddFluorescence:
		return len(s.scheme.Spontaneous) > 0
	default:
		return false
	}
}

// ApplyRange starts a new scheme from scratch and opens the THz table.
func (s *Session) ApplyRange(r query.Range) (Pending, error) {
	if s.pending != nil {
		return Pending{}, ErrSelectionPending
	}
	s.state = StateInit
	s.scheme.Reset()
	return s.open(StateInit, query.THz(s.data, r)), nil
}

// Begin opens the candidate table for a path-exploration action.
func (s *Session) Begin(a Action) (Pending, error) {
	if s.pending != nil {
		return Pending{}, ErrSelectionPending
	}
	if !s.Enabled(a) {
		return Pending{}, ActionDisabledError{Action: a, State: s.state}
	}

	var sel query.Selection
	switch a {
	case ActionSelectExcitation:
		sel = query.Excitation(s.data, s.scheme.Lower.State)
	case ActionAddExcitation:
		tip, _ := s.scheme.ExcitationTip()
		sel = query.Excitation(s.data, tip)
	case ActionSelectFluorescence:
		sel = query.Spontaneous(s.data, s.scheme.Upper.Key())
	case ActionAddFluorescence:
		tip, _ := s.scheme.SpontaneousTip()
		sel = query.Spontaneous(s.data, tip)
	}
	s.state = a.target()
	return s.open(s.state, sel), nil
}

func (s *Session) open(st State, sel query.Selection) Pending {
	s.seq++
	s.pending = &Pending{seq: s.seq, State: st, Selection: sel}
	return *s.pending
}

// Cancel closes the open table without a pick. Nothing else changes.
func (s *Session) Cancel() {
	s.pending = nil
}

// Pick resolves row of p. On error the open table is closed and the scheme
// is left exactly as it was.
func (s *Session) Pick(p Pending, row int) error {
	if s.pending == nil {
		return ErrNoPendingSelection
	}
	if p.seq != s.pending.seq {
		return ErrStaleSelection
	}
	cur := *s.pending
	s.pending = nil

	if n := cur.Selection.Len(); row < 0 || row >= n {
		return RowError{Row: row, Len: n}
	}
	next, sc, err := transition(s.data, s.scheme.Clone(), cur, row)
	if err != nil {
		return err
	}
	s.state = next
	s.scheme = sc
	return nil
}

// transition computes the effect of picking row in p.
func transition(d *dataset.Dataset, sc scheme.Scheme, p Pending, row int) (State, scheme.Scheme, error) {
	switch p.State {
	case StateInit:
		thz := p.Selection.Absorption[row]
		lower, err := anchor(d, thz.Lower)
		if err != nil {
			return p.State, sc, fmt.Errorf("lower Rydberg level: %w", err)
		}
		upper, err := anchor(d, thz.Upper)
		if err != nil {
			return p.State, sc, fmt.Errorf("upper Rydberg level: %w", err)
		}
		// Anchors are ordered by level energy, not by column group.
		if lower.Energy > upper.Energy {
			lower, upper = upper, lower
		}
		sc.SetAnchors(thz, lower, upper)
		return StateTHzReady, sc, nil

	case StateTHzReady:
		return p.State, sc, ErrNoPendingSelection

	case StateSeekExciFirst, StateSeekExci:
		tr := p.Selection.Absorption[row]
		lv, err := d.Lookup(tr.Upper.Key())
		if err != nil {
			return p.State, sc, fmt.Errorf("excitation target: %w", err)
		}
		if p.State == StateSeekExciFirst {
			sc.ClearExcitation()
		}
		sc.AppendExcitation(scheme.ExcitationStep{
			From:       tr.Lower,
			State:      tr.Upper,
			Energy:     lv.Energy,
			Lifetime:   lv.Lifetime,
			Wavelength: tr.Wavelength,
			Dipole:     tr.Dipole,
		})
		return p.State, sc, nil

	case StateSeekSponFirst, StateSeekSpon:
		tr := p.Selection.Spontaneous[row]
		lv, err := d.Lookup(tr.Lower)
		if err != nil {
			return p.State, sc, fmt.Errorf("decay target: %w", err)
		}
		if p.State == StateSeekSponFirst {
			sc.ClearSpontaneous()
		}
		sc.AppendSpontaneous(scheme.SpontaneousStep{
			From:       tr.Upper,
			Key:        tr.Lower,
			Energy:     lv.Energy,
			Lifetime:   lv.Lifetime,
			Wavelength: tr.Wavelength,
			Rate:       tr.Rate,
		})
		return p.State, sc, nil

	default:
		return p.State, sc, fmt.Errorf("unknown state %s", p.State)
	}
}

func anchor(d *dataset.Dataset, st dataset.State) (scheme.Anchor, error) {
	lv, err := d.Lookup(st.Key())
	if err != nil {
		return scheme.Anchor{}, err
	}
	return scheme.Anchor{State: st, Energy: lv.Energy, Lifetime: lv.Lifetime}, nil
}
