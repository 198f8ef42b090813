package pdb

import (
	"github.com/tikz/alphasense/spatial"
)

// Distance returns the distance between a pair of atoms
func Distance(atom1 *Atom, atom2 *Atom) float64 {
	return spatial.Distance(atom1.Point(), atom2.Point())
}

// ResiduesDistance returns the distance between residues, of the closest pair of atoms.
func ResiduesDistance(res1 *Residue, res2 *Residue) float64 {
	minDist := Distance(&res1.Atoms[0], &res2.Atoms[0])
	for i := range res1.Atoms {
		for j := range res2.Atoms {
			dist := Distance(&res1.Atoms[i], &res2.Atoms[j])
			if dist < minDist {
				minDist = dist
			}
		}
	}

	return minDist
}
