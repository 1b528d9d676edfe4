package dataset

import (
	"fmt"
	"strconv"
)

// Key identifies a level in the Levels table.
type Key struct {
	N int     `json:"n"`
	L int     `json:"l"`
	J float64 `json:"j"`
}

func (k Key) String() string {
	return fmt.Sprintf("(%d, %d, %s)", k.N, k.L, fmtNum(k.J))
}

// State is a transition endpoint. MJ is only meaningful for absorption rows.
type State struct {
	N  int     `json:"n"`
	L  int     `json:"l"`
	J  float64 `json:"j"`
	MJ float64 `json:"mj"`
}

func (s State) Key() Key { return Key{N: s.N, L: s.L, J: s.J} }

func (s State) String() string {
	return fmt.Sprintf("(%d, %d, %s, %s)", s.N, s.L, fmtNum(s.J), fmtNum(s.MJ))
}

// Level is one row of levels.dat.
type Level struct {
	Key
	Energy   float64 `json:"energy"`   // eV
	Lifetime float64 `json:"lifetime"` // decay rate, 1/s
}

// Absorption is one row of absorption.dat. After normalization Lower is always
// the lower-energy state and Frequency/Wavelength/Dipole carry no sign.
type Absorption struct {
	Lower      State   `json:"lower"`
	Upper      State   `json:"upper"`
	Frequency  float64 `json:"frequency"`  // THz
	Wavelength float64 `json:"wavelength"` // nm
	Dipole     float64 `json:"dipole"`
}

// Spontaneous is one row of spontaneous.dat: a decay from Upper to Lower.
type Spontaneous struct {
	Upper      Key     `json:"upper"`
	Lower      Key     `json:"lower"`
	Frequency  float64 `json:"frequency"`  // THz
	Wavelength float64 `json:"wavelength"` // nm
	Rate       float64 `json:"rate"`       // 1/s
}

// Tables holds the raw tables as read from disk or from the SQLite cache.
// Absorption rows are not normalized yet.
type Tables struct {
	Levels      []Level
	Absorption  []Absorption
	Spontaneous []Spontaneous
}

var termLetters = []string{"s", "p", "d", "f", "g", "h", "i", "k"}

// TermSymbol returns the spectroscopic letter for an orbital quantum number.
func TermSymbol(l int) string {
	if l >= 0 && l < len(termLetters) {
		return termLetters[l]
	}
	return "l=" + strconv.Itoa(l)
}

func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
