// Package pae reads predicted aligned error (PAE) matrices.
//
// Cell (i, j) of a matrix is the expected position error of residue j+1 when
// the structure is aligned on residue i+1. The raw values are directional;
// Pairwise is the symmetric view used for residue pairs.
package pae

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/tikz/alphasense/errs"
	"github.com/tikz/alphasense/input"
)

// Matrix is a square PAE matrix. It is immutable once built.
type Matrix struct {
	Path string

	dense    *mat.Dense
	maxError float64
}

// entry holds every matrix layout published by AlphaFold DB and ColabFold.
type entry struct {
	PAE      [][]float64 `json:"predicted_aligned_error"`
	ShortPAE [][]float64 `json:"pae"`
	MaxPAE   *float64    `json:"max_predicted_aligned_error"`

	// AlphaFold DB v1 and v2 flattened layout, 1-based.
	Residue1 []int     `json:"residue1"`
	Residue2 []int     `json:"residue2"`
	Distance []float64 `json:"distance"`
}

// ReadFile reads the PAE JSON file at path. Files ending in ".gz" are
// decompressed. A missing file is reported as errs.ErrNotFound.
func ReadFile(path string) (*Matrix, error) {
	f, err := input.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open PAE: %w", err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	m.Path = path
	return m, nil
}

// Parse decodes a PAE JSON payload. Both the AlphaFold DB list form
// ([{"predicted_aligned_error": ...}]) and a bare object are accepted.
func Parse(r io.Reader) (*Matrix, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var e entry
	switch trimmed := bytes.TrimSpace(raw); {
	case len(trimmed) == 0:
		return nil, fmt.Errorf("%w: empty PAE payload", errs.ErrParse)
	case trimmed[0] == '[':
		var entries []entry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("%w: unmarshal: %v", errs.ErrParse, err)
		}
		if len(entries) == 0 {
			return nil, fmt.Errorf("%w: empty PAE list", errs.ErrParse)
		}
		e = entries[0]
	default:
		if err := json.Unmarshal(trimmed, &e); err != nil {
			return nil, fmt.Errorf("%w: unmarshal: %v", errs.ErrParse, err)
		}
	}

	rows, err := e.rows()
	if err != nil {
		return nil, err
	}

	m, err := New(rows)
	if err != nil {
		return nil, err
	}
	if e.MaxPAE != nil {
		m.maxError = *e.MaxPAE
	}
	return m, nil
}

func (e *entry) rows() ([][]float64, error) {
	switch {
	case e.PAE != nil:
		return e.PAE, nil
	case e.ShortPAE != nil:
		return e.ShortPAE, nil
	case e.Residue1 != nil:
		return e.unflatten()
	}
	return nil, fmt.Errorf("%w: no predicted_aligned_error field", errs.ErrParse)
}

// unflatten rebuilds the matrix from the v1 residue1/residue2/distance arrays.
func (e *entry) unflatten() ([][]float64, error) {
	n := len(e.Residue1)
	if len(e.Residue2) != n || len(e.Distance) != n {
		return nil, fmt.Errorf("%w: residue1, residue2 and distance differ in length", errs.ErrParse)
	}

	dim := 0
	for i := 0; i < n; i++ {
		if e.Residue1[i] > dim {
			dim = e.Residue1[i]
		}
	}
	if dim*dim != n {
		return nil, fmt.Errorf("%w: %d values do not fill a %dx%d matrix", errs.ErrParse, n, dim, dim)
	}

	rows := make([][]float64, dim)
	for i := range rows {
		rows[i] = make([]float64, dim)
	}
	for k := 0; k < n; k++ {
		i, j := e.Residue1[k], e.Residue2[k]
		if i < 1 || j < 1 || i > dim || j > dim {
			return nil, fmt.Errorf("%w: residue pair (%d, %d) outside %dx%d", errs.ErrParse, i, j, dim, dim)
		}
		rows[i-1][j-1] = e.Distance[k]
	}
	return rows, nil
}

// New builds a matrix from rows. The rows must form a non-empty square table.
func New(rows [][]float64) (*Matrix, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty PAE matrix", errs.ErrParse)
	}

	data := make([]float64, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d values, expected %d", errs.ErrParse, i+1, len(row), n)
		}
		data = append(data, row...)
	}

	return &Matrix{
		dense:    mat.NewDense(n, n, data),
		maxError: floats.Max(data),
	}, nil
}

// Dim returns the number of residues covered by the matrix.
func (m *Matrix) Dim() int {
	r, _ := m.dense.Dims()
	return r
}

// MaxError returns the maximum error the predictor can report, as stated in
// the payload, or the largest value in the matrix when it is not stated.
func (m *Matrix) MaxError() float64 {
	return m.maxError
}

func (m *Matrix) checkRange(pos int) error {
	if pos < 1 || pos > m.Dim() {
		return fmt.Errorf("%w: residue %d: PAE matrix is %dx%d", errs.ErrRange, pos, m.Dim(), m.Dim())
	}
	return nil
}

// directional returns the raw error of residue j when aligned on residue i,
// both 1-based.
func (m *Matrix) directional(i, j int) (float64, error) {
	if err := m.checkRange(i); err != nil {
		return 0, err
	}
	if err := m.checkRange(j); err != nil {
		return 0, err
	}
	return m.dense.At(i-1, j-1), nil
}

// Pairwise returns the error of a residue pair as the mean of both directions.
// Positions are 1-based.
func (m *Matrix) Pairwise(i, j int) (float64, error) {
	if err := m.checkRange(i); err != nil {
		return 0, err
	}
	if err := m.checkRange(j); err != nil {
		return 0, err
	}
	return (m.dense.At(i-1, j-1) + m.dense.At(j-1, i-1)) / 2, nil
}

// Symmetric returns the symmetrized matrix, (M + Mᵀ) / 2.
func (m *Matrix) Symmetric() *mat.SymDense {
	n := m.Dim()
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, (m.dense.At(i, j)+m.dense.At(j, i))/2)
		}
	}
	return sym
}
