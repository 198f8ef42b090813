package pdb

import (
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat"

	"github.com/tikz/alphasense/spatial"
)

var residueNames = [...][3]string{
	{"Alanine", "Ala", "A"},
	{"Arginine", "Arg", "R"},
	{"Asparagine", "Asn", "N"},
	{"Aspartic acid", "Asp", "D"},
	{"Cysteine", "Cys", "C"},
	{"Glutamic acid", "Glu", "E"},
	{"Glutamine", "Gln", "Q"},
	{"Glycine", "Gly", "G"},
	{"Histidine", "His", "H"},
	{"Isoleucine", "Ile", "I"},
	{"Leucine", "Leu", "L"},
	{"Lysine", "Lys", "K"},
	{"Methionine", "Met", "M"},
	{"Phenylalanine", "Phe", "F"},
	{"Proline", "Pro", "P"},
	{"Serine", "Ser", "S"},
	{"Threonine", "Thr", "T"},
	{"Tryptophan", "Trp", "W"},
	{"Tyrosine", "Tyr", "Y"},
	{"Valine", "Val", "V"},
}

// threeToOne maps upper case three letter codes, as written in PDB records,
// to one letter codes.
var threeToOne = map[string]string{}

func init() {
	for _, res := range residueNames {
		threeToOne[strings.ToUpper(res[1])] = res[2]
	}
}

// centroidDecimals is the precision of residue centroids, matching the
// coordinate precision of PDB files.
const centroidDecimals = 3

// Residue represents a single residue from the structure.
type Residue struct {
	Chain    string        `json:"chain"`
	Position int           `json:"position"`
	Name     string        `json:"-"`
	Name1    string        `json:"name1"`
	Name3    string        `json:"-"`
	Atoms    []Atom        `json:"-"`
	Centroid spatial.Point `json:"centroid"`
}

// AminoacidNames receives a name and returns all the possible representations:
// full name, three and one letter abbreviations. The input is case-insensitive.
// ok is false for anything outside the 20 standard aminoacids.
func AminoacidNames(input string) (name, abbrv3, abbrv1 string, ok bool) {
	s := strings.ToLower(input)
	for _, res := range residueNames {
		for _, n := range res {
			if strings.ToLower(n) == s {
				return res[0], res[1], res[2], true
			}
		}
	}

	return input, "Unk", "X", false
}

// NewResidue constructs a new residue given a chain, position and aminoacid name.
func NewResidue(chain string, pos int, input string) *Residue {
	name, abbrv3, abbrv1, _ := AminoacidNames(input)

	return &Residue{
		Chain:    chain,
		Position: pos,
		Name:     name,
		Name1:    abbrv1,
		Name3:    abbrv3,
	}
}

// ID returns the residue label, one letter code followed by the position (e.g. "M1").
func (r *Residue) ID() string {
	return r.Name1 + strconv.Itoa(r.Position)
}

// Confidence returns the pLDDT of the residue. AlphaFold writes the same value
// in every atom of a residue, the first one is used.
func (r *Residue) Confidence() float64 {
	return r.Atoms[0].BFactor
}

// centroid returns the mean coordinate of the atoms.
func centroid(atoms []Atom) spatial.Point {
	xs := make([]float64, len(atoms))
	ys := make([]float64, len(atoms))
	zs := make([]float64, len(atoms))
	for i, a := range atoms {
		xs[i], ys[i], zs[i] = a.X, a.Y, a.Z
	}

	return spatial.Point{
		scalar.Round(stat.Mean(xs, nil), centroidDecimals),
		scalar.Round(stat.Mean(ys, nil), centroidDecimals),
		scalar.Round(stat.Mean(zs, nil), centroidDecimals),
	}
}
