// Package interaction finds residue contacts in a structure.
package interaction

import (
	"github.com/tikz/alphasense/pdb"
)

// Contact is a pair of residues with atoms at most a cutoff distance apart.
// I is always less than J.
type Contact struct {
	I, J     int
	Distance float64 // closest atom pair
}

// Contacts receives a structure and a cutoff distance, and returns every pair
// of distinct residues in contact, ordered by I then J.
func Contacts(m *pdb.Model, distance float64) ([]Contact, error) {
	return contacts(m, distance, func(r1, r2 *pdb.Residue) bool { return true })
}

// InterChain is Contacts restricted to residues in different chains.
func InterChain(m *pdb.Model, distance float64) ([]Contact, error) {
	return contacts(m, distance, func(r1, r2 *pdb.Residue) bool { return r1.Chain != r2.Chain })
}

// Neighbours returns, for each residue in contacts, the residues it touches.
func Neighbours(contacts []Contact) map[int][]int {
	near := make(map[int][]int)
	for _, c := range contacts {
		near[c.I] = append(near[c.I], c.J)
		near[c.J] = append(near[c.J], c.I)
	}
	return near
}

func contacts(m *pdb.Model, distance float64, keep func(r1, r2 *pdb.Residue) bool) ([]Contact, error) {
	var found []Contact
	for _, res1 := range m.Residues {
		near, err := m.ResiduesWithin(pdb.ResidueQuery(res1.Position), distance, false)
		if err != nil {
			return nil, err
		}

		for _, pos := range near {
			if pos <= res1.Position {
				continue
			}
			res2 := m.Residues[pos-1]
			if !keep(res1, res2) {
				continue
			}
			found = append(found, Contact{
				I:        res1.Position,
				J:        res2.Position,
				Distance: pdb.ResiduesDistance(res1, res2),
			})
		}
	}
	return found, nil
}
