package query

import (
	"math"
	"strconv"

	"rydscheme/internal/dataset"
)

type Kind int

const (
	KindTHz Kind = iota
	KindExcitation
	KindSpontaneous
)

func (k Kind) String() string {
	switch k {
	case KindTHz:
		return "thz"
	case KindExcitation:
		return "excitation"
	case KindSpontaneous:
		return "spontaneous"
	default:
		return "unknown"
	}
}

var (
	thzHeaders         = []string{"n_lower", "l_lower", "j_lower", "mj_lower", "n_upper", "l_upper", "j_upper", "mj_upper", "Freq. (THz)", "dipole"}
	excitationHeaders  = []string{"n_lower", "l_lower", "j_lower", "mj_lower", "n_upper", "l_upper", "j_upper", "mj_upper", "λ (nm)", "dipole"}
	spontaneousHeaders = []string{"n_upper", "l_upper", "j_upper", "n_lower", "l_lower", "j_lower", "λ (nm)", "rate"}
)

// Selection is a filtered candidate set. Display position i always maps to
// the full row at index i of Absorption or Spontaneous, including the
// column the display drops.
type Selection struct {
	Kind        Kind
	Absorption  []dataset.Absorption
	Spontaneous []dataset.Spontaneous
}

func (s Selection) Len() int {
	if s.Kind == KindSpontaneous {
		return len(s.Spontaneous)
	}
	return len(s.Absorption)
}

func (s Selection) Headers() []string {
	switch s.Kind {
	case KindExcitation:
		return excitationHeaders
	case KindSpontaneous:
		return spontaneousHeaders
	default:
		return thzHeaders
	}
}

// Cells renders display row i.
func (s Selection) Cells(i int) []string {
	switch s.Kind {
	case KindSpontaneous:
		r := s.Spontaneous[i]
		return []string{
			itoa(r.Upper.N), itoa(r.Upper.L), ftoa(r.Upper.J),
			itoa(r.Lower.N), itoa(r.Lower.L), ftoa(r.Lower.J),
			ftoa(r.Wavelength), ftoa(r.Rate),
		}
	case KindExcitation:
		r := s.Absorption[i]
		return append(stateCells(r), ftoa(r.Wavelength), ftoa(r.Dipole))
	default:
		r := s.Absorption[i]
		return append(stateCells(r), ftoa(r.Frequency), ftoa(r.Dipole))
	}
}

// THz selects absorption rows whose |frequency| lies strictly inside r.
func THz(d *dataset.Dataset, r Range) Selection {
	sel := Selection{Kind: KindTHz, Absorption: []dataset.Absorption{}}
	for _, row := range d.Absorption() {
		if r.Contains(math.Abs(row.Frequency)) {
			sel.Absorption = append(sel.Absorption, row)
		}
	}
	return sel
}

// Excitation selects absorption rows starting from src.
func Excitation(d *dataset.Dataset, src dataset.State) Selection {
	sel := Selection{Kind: KindExcitation, Absorption: []dataset.Absorption{}}
	for _, row := range d.Absorption() {
		if row.Lower == src {
			sel.Absorption = append(sel.Absorption, row)
		}
	}
	return sel
}

// Spontaneous selects decays out of src.
func Spontaneous(d *dataset.Dataset, src dataset.Key) Selection {
	sel := Selection{Kind: KindSpontaneous, Spontaneous: []dataset.Spontaneous{}}
	for _, row := range d.Spontaneous() {
		if row.Upper == src {
			sel.Spontaneous = append(sel.Spontaneous, row)
		}
	}
	return sel
}

func stateCells(r dataset.Absorption) []string {
	return []string{
		itoa(r.Lower.N), itoa(r.Lower.L), ftoa(r.Lower.J), ftoa(r.Lower.MJ),
		itoa(r.Upper.N), itoa(r.Upper.L), ftoa(r.Upper.J), ftoa(r.Upper.MJ),
	}
}

func itoa(v int) string { return strconv.Itoa(v) }

func ftoa(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
