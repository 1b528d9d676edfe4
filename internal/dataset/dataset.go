package dataset

// Normalize returns a copy of rows in which every row with a negative
// frequency has its frequency, wavelength and dipole negated and its two
// endpoint states swapped. Afterwards Lower always denotes the lower-energy
// state. The input slice is not modified.
func Normalize(rows []Absorption) []Absorption {
	out := make([]Absorption, len(rows))
	for i, r := range rows {
		if r.Frequency < 0 {
			r.Frequency = -r.Frequency
			r.Wavelength = -r.Wavelength
			r.Dipole = -r.Dipole
			r.Lower, r.Upper = r.Upper, r.Lower
		}
		out[i] = r
	}
	return out
}

// Dataset is the immutable, normalized view every query runs against.
type Dataset struct {
	levels      []Level
	index       map[Key][]int
	absorption  []Absorption
	spontaneous []Spontaneous
}

// New normalizes the absorption table and indexes the levels.
func New(t Tables) *Dataset {
	d := &Dataset{
		levels:      append([]Level(nil), t.Levels...),
		index:       make(map[Key][]int, len(t.Levels)),
		absorption:  Normalize(t.Absorption),
		spontaneous: append([]Spontaneous(nil), t.Spontaneous...),
	}
	for i, lv := range d.levels {
		d.index[lv.Key] = append(d.index[lv.Key], i)
	}
	return d
}

// Lookup returns the single level for k. Duplicate keys are reported as an
// AmbiguousError rather than resolved to the first row.
func (d *Dataset) Lookup(k Key) (Level, error) {
	rows := d.index[k]
	switch len(rows) {
	case 0:
		return Level{}, NotFoundError{Key: k}
	case 1:
		return d.levels[rows[0]], nil
	default:
		return Level{}, AmbiguousError{Key: k, Count: len(rows)}
	}
}

func (d *Dataset) Levels() []Level { return d.levels }

// Absorption returns the normalized absorption rows. Callers must not modify them.
func (d *Dataset) Absorption() []Absorption { return d.absorption }

func (d *Dataset) Spontaneous() []Spontaneous { return d.spontaneous }
