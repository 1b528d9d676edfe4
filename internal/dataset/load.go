package dataset

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	LevelsFile      = "levels.dat"
	AbsorptionFile  = "absorption.dat"
	SpontaneousFile = "spontaneous.dat"
)

const (
	levelCols       = 5
	absorptionCols  = 11
	spontaneousCols = 9
)

// LoadDir reads the three data files from dir.
func LoadDir(dir string) (Tables, error) {
	var t Tables
	var err error
	if t.Levels, err = readFile(filepath.Join(dir, LevelsFile), ReadLevels); err != nil {
		return Tables{}, err
	}
	if t.Absorption, err = readFile(filepath.Join(dir, AbsorptionFile), ReadAbsorption); err != nil {
		return Tables{}, err
	}
	if t.Spontaneous, err = readFile(filepath.Join(dir, SpontaneousFile), ReadSpontaneous); err != nil {
		return Tables{}, err
	}
	return t, nil
}

func readFile[T any](path string, read func(io.Reader, string) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return read(f, filepath.Base(path))
}

// ReadLevels parses rows of [n, l, j, energy, lifetime].
func ReadLevels(r io.Reader, name string) ([]Level, error) {
	var out []Level
	err := scanRows(r, name, levelCols, func(v []float64) error {
		n, l, err := quantumNumbers(v[0], v[1])
		if err != nil {
			return err
		}
		out = append(out, Level{Key: Key{N: n, L: l, J: v[2]}, Energy: v[3], Lifetime: v[4]})
		return nil
	})
	return out, err
}

// ReadAbsorption parses rows of [n1, l1, j1, mj1, n2, l2, j2, mj2, freq, wavelength, dipole].
// Rows are returned as stored; see Normalize.
func ReadAbsorption(r io.Reader, name string) ([]Absorption, error) {
	var out []Absorption
	err := scanRows(r, name, absorptionCols, func(v []float64) error {
		n1, l1, err := quantumNumbers(v[0], v[1])
		if err != nil {
			return err
		}
		n2, l2, err := quantumNumbers(v[4], v[5])
		if err != nil {
			return err
		}
		out = append(out, Absorption{
			Lower:      State{N: n1, L: l1, J: v[2], MJ: v[3]},
			Upper:      State{N: n2, L: l2, J: v[6], MJ: v[7]},
			Frequency:  v[8],
			Wavelength: v[9],
			Dipole:     v[10],
		})
		return nil
	})
	return out, err
}

// ReadSpontaneous parses rows of [n_u, l_u, j_u, n_l, l_l, j_l, freq, wavelength, rate].
func ReadSpontaneous(r io.Reader, name string) ([]Spontaneous, error) {
	var out []Spontaneous
	err := scanRows(r, name, spontaneousCols, func(v []float64) error {
		nu, lu, err := quantumNumbers(v[0], v[1])
		if err != nil {
			return err
		}
		nl, ll, err := quantumNumbers(v[3], v[4])
		if err != nil {
			return err
		}
		out = append(out, Spontaneous{
			Upper:      Key{N: nu, L: lu, J: v[2]},
			Lower:      Key{N: nl, L: ll, J: v[5]},
			Frequency:  v[6],
			Wavelength: v[7],
			Rate:       v[8],
		})
		return nil
	})
	return out, err
}

// scanRows feeds every non-blank, non-comment line to fn as exactly cols numbers.
func scanRows(r io.Reader, name string, cols int, fn func([]float64) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	vals := make([]float64, cols)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != cols {
			return ParseError{File: name, Line: line, Err: fmt.Errorf("expected %d columns, got %d", cols, len(fields))}
		}
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return ParseError{File: name, Line: line, Err: fmt.Errorf("column %d: %w", i+1, err)}
			}
			vals[i] = v
		}
		if err := fn(vals); err != nil {
			return ParseError{File: name, Line: line, Err: err}
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	return nil
}

func quantumNumbers(n, l float64) (int, int, error) {
	if n != math.Trunc(n) || l != math.Trunc(l) {
		return 0, 0, fmt.Errorf("non-integer quantum numbers n=%v l=%v", n, l)
	}
	return int(n), int(l), nil
}
