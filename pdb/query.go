package pdb

import (
	"fmt"
	"math"
	"sort"

	"github.com/tikz/alphasense/errs"
	"github.com/tikz/alphasense/spatial"
)

// Query is the origin of a neighbour search: a PointQuery, an AtomQuery or a
// ResidueQuery.
type Query interface {
	query()
}

// PointQuery searches around a raw coordinate.
type PointQuery spatial.Point

// AtomQuery searches around an atom, given as its index in Model.Atoms.
type AtomQuery int

// ResidueQuery searches around a residue, given as its 1-based position.
type ResidueQuery int

func (PointQuery) query()   {}
func (AtomQuery) query()    {}
func (ResidueQuery) query() {}

// ResiduesWithin returns the positions, ascending and without repeats, of the
// residues having at least one atom at a distance of radius or less from the
// query.
//
// For a ResidueQuery, fromCenter searches from the residue centroid; otherwise
// every atom of the residue is an origin and the matches are merged. fromCenter
// is ignored for the other query kinds.
func (m *Model) ResiduesWithin(q Query, radius float64, fromCenter bool) ([]int, error) {
	if radius < 0 || math.IsNaN(radius) {
		return nil, fmt.Errorf("%w: radius %v", errs.ErrQuery, radius)
	}

	var origins []spatial.Point
	switch q := q.(type) {
	case PointQuery:
		origins = []spatial.Point{spatial.Point(q)}
	case AtomQuery:
		if q < 0 || int(q) >= len(m.Atoms) {
			return nil, fmt.Errorf("%w: atom %d: %s has %d atoms", errs.ErrQuery, q, m, len(m.Atoms))
		}
		origins = []spatial.Point{m.Atoms[q].Point()}
	case ResidueQuery:
		res, err := m.Residue(int(q))
		if err != nil {
			return nil, err
		}
		if fromCenter {
			origins = []spatial.Point{res.Centroid}
		} else {
			for i := range res.Atoms {
				origins = append(origins, res.Atoms[i].Point())
			}
		}
	default:
		return nil, fmt.Errorf("%w: %T, expected a PointQuery, AtomQuery or ResidueQuery", errs.ErrQuery, q)
	}

	found := make(map[int]bool)
	for _, o := range origins {
		for _, i := range m.index.Within(o, radius) {
			found[m.Atoms[i].ResidueNumber] = true
		}
	}

	positions := make([]int, 0, len(found))
	for pos := range found {
		positions = append(positions, pos)
	}
	sort.Ints(positions)

	return positions, nil
}
