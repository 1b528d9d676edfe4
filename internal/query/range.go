package query

import (
	"fmt"
	"strconv"
	"strings"
)

// Range is an open THz interval: both bounds are excluded.
type Range struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

func (r Range) Contains(freq float64) bool {
	return freq > r.Lower && freq < r.Upper
}

// ParseError reports a range field that is not a number.
type ParseError struct {
	Field string
	Text  string
}

func (e ParseError) Error() string {
	if strings.TrimSpace(e.Text) == "" {
		return fmt.Sprintf("%s frequency is empty", e.Field)
	}
	return fmt.Sprintf("%s frequency %q is not a number", e.Field, e.Text)
}

// ParseRange parses the two range fields. An inverted range is accepted and
// simply matches nothing.
func ParseRange(lower, upper string) (Range, error) {
	lo, err := strconv.ParseFloat(strings.TrimSpace(lower), 64)
	if err != nil {
		return Range{}, ParseError{Field: "lower", Text: lower}
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(upper), 64)
	if err != nil {
		return Range{}, ParseError{Field: "upper", Text: upper}
	}
	return Range{Lower: lo, Upper: hi}, nil
}
