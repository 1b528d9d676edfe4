// Package scheme holds the excitation + spontaneous-decay scheme a session
// assembles between two Rydberg levels.
package scheme

import (
	"fmt"
	"strconv"

	"rydscheme/internal/dataset"
)

// Anchor is one of the two Rydberg levels joined by the chosen THz transition.
type Anchor struct {
	dataset.State
	Energy   float64 `json:"energy"`
	Lifetime float64 `json:"lifetime"`
}

// ExcitationStep is one absorption transition appended to the excitation path.
// From is the state the step leaves; the embedded State is where it lands.
type ExcitationStep struct {
	From dataset.State `json:"from"`
	dataset.State
	Energy     float64 `json:"energy"`
	Lifetime   float64 `json:"lifetime"`
	Wavelength float64 `json:"wavelength"`
	Dipole     float64 `json:"dipole"`
}

// SpontaneousStep is one decay appended to the spontaneous path.
type SpontaneousStep struct {
	From dataset.Key `json:"from"`
	dataset.Key
	Energy     float64 `json:"energy"`
	Lifetime   float64 `json:"lifetime"`
	Wavelength float64 `json:"wavelength"`
	Rate       float64 `json:"rate"`
}

// Scheme is the mutable accumulator. Anchors are set together or not at all.
type Scheme struct {
	THz         *dataset.Absorption `json:"thz,omitempty"`
	Lower       *Anchor             `json:"lowerRydbergLevel,omitempty"`
	Upper       *Anchor             `json:"upperRydbergLevel,omitempty"`
	Excitation  []ExcitationStep    `json:"exciPath"`
	Spontaneous []SpontaneousStep   `json:"sponPath"`
}

// New returns an empty scheme.
func New() Scheme {
	return Scheme{Excitation: []ExcitationStep{}, Spontaneous: []SpontaneousStep{}}
}

func (s *Scheme) Reset() { *s = New() }

// Clone returns a copy that shares nothing mutable with s.
func (s Scheme) Clone() Scheme {
	out := s
	out.Excitation = append([]ExcitationStep{}, s.Excitation...)
	out.Spontaneous = append([]SpontaneousStep{}, s.Spontaneous...)
	return out
}

func (s Scheme) HasAnchors() bool { return s.Lower != nil && s.Upper != nil }

// SetAnchors replaces both anchors and clears both paths.
func (s *Scheme) SetAnchors(thz dataset.Absorption, lower, upper Anchor) {
	*s = New()
	s.THz = &thz
	s.Lower = &lower
	s.Upper = &upper
}

// ExcitationTip is the state the next excitation step must leave from.
func (s Scheme) ExcitationTip() (dataset.State, bool) {
	if n := len(s.Excitation); n > 0 {
		return s.Excitation[n-1].State, true
	}
	if s.Lower != nil {
		return s.Lower.State, true
	}
	return dataset.State{}, false
}

// SpontaneousTip is the level the next decay must leave from.
func (s Scheme) SpontaneousTip() (dataset.Key, bool) {
	if n := len(s.Spontaneous); n > 0 {
		return s.Spontaneous[n-1].Key, true
	}
	if s.Upper != nil {
		return s.Upper.Key(), true
	}
	return dataset.Key{}, false
}

func (s *Scheme) ClearExcitation()  { s.Excitation = []ExcitationStep{} }
func (s *Scheme) ClearSpontaneous() { s.Spontaneous = []SpontaneousStep{} }

func (s *Scheme) AppendExcitation(step ExcitationStep) {
	s.Excitation = append(s.Excitation, step)
}

func (s *Scheme) AppendSpontaneous(step SpontaneousStep) {
	s.Spontaneous = append(s.Spontaneous, step)
}

// THzLabel describes the anchor transition, or "" before one is chosen.
func (s Scheme) THzLabel() string {
	if s.THz == nil {
		return ""
	}
	return fmt.Sprintf("Available THz detection: %s THz (%s)", num(s.THz.Frequency), num(s.THz.Dipole))
}

func (s Scheme) LowerLabel() string { return anchorLabel("Lower", s.Lower) }

func (s Scheme) UpperLabel() string { return anchorLabel("Upper", s.Upper) }

func anchorLabel(which string, a *Anchor) string {
	if a == nil {
		return which + " Rydberg level"
	}
	return fmt.Sprintf("%s Rydberg level: %s  %d%s", which, a.State, a.N, dataset.TermSymbol(a.L))
}

// ExcitationLines lists the excitation path, two lines per step.
func (s Scheme) ExcitationLines() []string {
	out := make([]string, 0, 2*len(s.Excitation))
	for i, st := range s.Excitation {
		out = append(out,
			fmt.Sprintf("Exci path %d: %s", i, st.State),
			fmt.Sprintf("@%s nm (%s)", num(st.Wavelength), num(st.Dipole)),
		)
	}
	return out
}

// SpontaneousLines lists the spontaneous path, two lines per step.
func (s Scheme) SpontaneousLines() []string {
	out := make([]string, 0, 2*len(s.Spontaneous))
	for i, st := range s.Spontaneous {
		out = append(out,
			fmt.Sprintf("Spon path %d: %s", i, st.Key),
			fmt.Sprintf("@%s nm (%s)", num(st.Wavelength), num(st.Rate)),
		)
	}
	return out
}

func num(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
