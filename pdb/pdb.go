package pdb

import (
	"fmt"

	"github.com/tikz/alphasense/errs"
	"github.com/tikz/alphasense/spatial"
)

// Model represents a single predicted structure read from a PDB file.
// It is immutable once parsed and safe for concurrent readers.
type Model struct {
	Path      string `json:"-"`         // file the model was read from
	Accession string `json:"accession"` // DBREF database accession (UniProt)
	Name      string `json:"name"`      // DBREF database entry name
	Length    int    `json:"length"`    // number of residues
	Sequence  string `json:"sequence"`  // one letter sequence, position i+1 at index i

	Residues []*Residue `json:"-"` // residues in sequence order, position i+1 at index i
	Atoms    []Atom     `json:"-"` // ATOM records in file order

	index *spatial.Index // over Atoms, by slice position
}

// String returns the model name and accession, e.g. "P53_HUMAN (P04637)".
func (m *Model) String() string {
	switch {
	case m.Name != "" && m.Accession != "":
		return fmt.Sprintf("%s (%s)", m.Name, m.Accession)
	case m.Accession != "":
		return m.Accession
	}
	return m.Path
}

func (m *Model) checkRange(pos int) error {
	if pos < 1 || pos > m.Length {
		return fmt.Errorf("%w: residue %d: %s is %daa long", errs.ErrRange, pos, m, m.Length)
	}
	return nil
}

// Residue returns the residue at a 1-based position.
func (m *Model) Residue(position int) (*Residue, error) {
	if err := m.checkRange(position); err != nil {
		return nil, err
	}
	return m.Residues[position-1], nil
}

// ResidueAt returns the residues at the given 1-based positions, in the same
// order and with duplicates kept.
func (m *Model) ResidueAt(positions ...int) ([]*Residue, error) {
	residues := make([]*Residue, len(positions))
	for i, pos := range positions {
		res, err := m.Residue(pos)
		if err != nil {
			return nil, err
		}
		residues[i] = res
	}
	return residues, nil
}

// Confidence returns the pLDDT of the residue at position.
func (m *Model) Confidence(position int) (float64, error) {
	res, err := m.Residue(position)
	if err != nil {
		return 0, err
	}
	return res.Confidence(), nil
}

// Centroid returns the mean atom coordinate of the residue at position.
func (m *Model) Centroid(position int) (spatial.Point, error) {
	res, err := m.Residue(position)
	if err != nil {
		return spatial.Point{}, err
	}
	return res.Centroid, nil
}

// Chains returns the chain identifiers in file order.
func (m *Model) Chains() []string {
	var chains []string
	for _, res := range m.Residues {
		if len(chains) == 0 || chains[len(chains)-1] != res.Chain {
			chains = append(chains, res.Chain)
		}
	}
	return chains
}
