// Package alphafold combines a predicted structure with its predicted aligned
// error matrix and derives per-residue confidence and local error metrics.
package alphafold

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat"

	"github.com/tikz/alphasense/errs"
	"github.com/tikz/alphasense/pae"
	"github.com/tikz/alphasense/pdb"
)

const (
	// DefaultThreshold is the pLDDT above which a residue is considered confident.
	DefaultThreshold = 70.0

	// DefaultWindow is the default pLDDT sliding window, in residues.
	DefaultWindow = 5

	// DefaultRadius is the default neighbourhood radius, in Å.
	DefaultRadius = 5.0

	// NoValue is returned by error metrics when there is no residue pair to
	// measure.
	NoValue = -1.0

	decimals = 3
)

// Model is an AlphaFold prediction: a structure and its PAE matrix of the
// same size. It is immutable once built and safe for concurrent readers.
type Model struct {
	structure *pdb.Model
	matrix    *pae.Matrix
	log       *slog.Logger
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger for diagnostics. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		m.log = l
	}
}

// New builds a model from a parsed structure and PAE matrix. It fails with
// errs.ErrDimension when their residue counts differ.
func New(structure *pdb.Model, matrix *pae.Matrix, opts ...Option) (*Model, error) {
	if structure.Length != matrix.Dim() {
		return nil, fmt.Errorf("%w: %s has %d residues, PAE matrix %s is %dx%d",
			errs.ErrDimension, structure, structure.Length, matrix.Path, matrix.Dim(), matrix.Dim())
	}

	m := &Model{
		structure: structure,
		matrix:    matrix,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.With(slog.String("model", structure.String()))

	return m, nil
}

// Load reads a PDB model file and a PAE JSON file and builds the model.
func Load(pdbPath, paePath string, opts ...Option) (*Model, error) {
	structure, err := pdb.ReadFile(pdbPath)
	if err != nil {
		return nil, err
	}

	matrix, err := pae.ReadFile(paePath)
	if err != nil {
		return nil, err
	}

	return New(structure, matrix, opts...)
}

// Structure returns the parsed structure.
func (m *Model) Structure() *pdb.Model {
	return m.structure
}

// PAE returns the aligned error matrix.
func (m *Model) PAE() *pae.Matrix {
	return m.matrix
}

// Length returns the number of residues.
func (m *Model) Length() int {
	return m.structure.Length
}

// Sequence returns the one letter sequence.
func (m *Model) Sequence() string {
	return m.structure.Sequence
}

func (m *Model) String() string {
	return m.structure.String()
}

func round(v float64) float64 {
	return scalar.Round(v, decimals)
}

func mean(vs []float64) float64 {
	return round(stat.Mean(vs, nil))
}
