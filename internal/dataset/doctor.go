package dataset

import (
	"errors"
	"fmt"
	"sort"
)

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

var ErrDoctorIssuesFound = errors.New("dataset doctor found errors")

type DoctorIssue struct {
	Level   DoctorIssueLevel `json:"level"`
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Table   string           `json:"table,omitempty"`
	Row     int              `json:"row,omitempty"` // 1-based
}

type DoctorReport struct {
	Levels      int           `json:"levels"`
	Absorption  int           `json:"absorption"`
	Spontaneous int           `json:"spontaneous"`
	Issues      []DoctorIssue `json:"issues"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

// Doctor checks the invariants the interactive session relies on: level keys
// are unique, every transition endpoint resolves, and every normalized
// absorption row goes from lower to higher energy.
func Doctor(d *Dataset) DoctorReport {
	rep := DoctorReport{
		Levels:      len(d.levels),
		Absorption:  len(d.absorption),
		Spontaneous: len(d.spontaneous),
		Issues:      []DoctorIssue{},
	}

	dups := make([]Key, 0)
	for k, rows := range d.index {
		if len(rows) > 1 {
			dups = append(dups, k)
		}
	}
	sort.Slice(dups, func(i, j int) bool { return d.index[dups[i]][0] < d.index[dups[j]][0] })
	for _, k := range dups {
		rep.Issues = append(rep.Issues, DoctorIssue{
			Level:   DoctorIssueLevelError,
			Code:    "level_ambiguous",
			Message: AmbiguousError{Key: k, Count: len(d.index[k])}.Error(),
			Table:   LevelsFile,
			Row:     d.index[k][1] + 1,
		})
	}

	energy := func(k Key) (float64, error) {
		lv, err := d.Lookup(k)
		return lv.Energy, err
	}

	for i, r := range d.absorption {
		lo, errLo := energy(r.Lower.Key())
		hi, errHi := energy(r.Upper.Key())
		if issues, failed := endpointIssues(AbsorptionFile, i, errLo, errHi); failed {
			rep.Issues = append(rep.Issues, issues...)
			continue
		}
		if lo >= hi {
			rep.Issues = append(rep.Issues, DoctorIssue{
				Level:   DoctorIssueLevelError,
				Code:    "absorption_order",
				Message: fmt.Sprintf("lower state %s (%g eV) is not below upper state %s (%g eV)", r.Lower, lo, r.Upper, hi),
				Table:   AbsorptionFile,
				Row:     i + 1,
			})
		}
	}

	for i, r := range d.spontaneous {
		hi, errHi := energy(r.Upper)
		lo, errLo := energy(r.Lower)
		if issues, failed := endpointIssues(SpontaneousFile, i, errHi, errLo); failed {
			rep.Issues = append(rep.Issues, issues...)
			continue
		}
		if lo >= hi {
			rep.Issues = append(rep.Issues, DoctorIssue{
				Level:   DoctorIssueLevelWarn,
				Code:    "spontaneous_order",
				Message: fmt.Sprintf("decay %s -> %s does not lower the energy", r.Upper, r.Lower),
				Table:   SpontaneousFile,
				Row:     i + 1,
			})
		}
	}
	return rep
}

// endpointIssues reports unresolved endpoints. Ambiguous keys were already
// reported once from the levels table and are not repeated per row.
func endpointIssues(table string, i int, errs ...error) ([]DoctorIssue, bool) {
	var issues []DoctorIssue
	failed := false
	for _, err := range errs {
		if err == nil {
			continue
		}
		failed = true
		var nf NotFoundError
		if errors.As(err, &nf) {
			issues = append(issues, DoctorIssue{
				Level:   DoctorIssueLevelError,
				Code:    "level_missing",
				Message: nf.Error(),
				Table:   table,
				Row:     i + 1,
			})
		}
	}
	return issues, failed
}
