package pdb

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tikz/alphasense/spatial"
)

// Atom represents a single atom in the structure.
// It contains the columns of an ATOM record in a PDB file.
type Atom struct {
	// PDB columns for the ATOM tag
	Number        int
	Name          string
	AltLoc        string
	Residue       string
	Chain         string
	ResidueNumber int
	X             float64
	Y             float64
	Z             float64
	Occupancy     float64
	BFactor       float64 // per-residue pLDDT in AlphaFold models
	Element       string
	Charge        string
}

// Point returns the atom coordinates.
func (a *Atom) Point() spatial.Point {
	return spatial.Point{a.X, a.Y, a.Z}
}

// parseAtom reads an ATOM record line.
// https://www.wwpdb.org/documentation/file-format-content/format33/sect9.html#ATOM
func parseAtom(line string) (*Atom, error) {
	var atom Atom
	var err error

	if atom.Number, err = intField(line, 6, 11, "serial"); err != nil {
		return nil, err
	}
	atom.Name = strings.TrimSpace(column(line, 12, 16))
	atom.AltLoc = strings.TrimSpace(column(line, 16, 17))
	atom.Residue = strings.TrimSpace(column(line, 17, 20))
	atom.Chain = strings.TrimSpace(column(line, 21, 22))
	if atom.ResidueNumber, err = intField(line, 22, 26, "residue number"); err != nil {
		return nil, err
	}
	if atom.X, err = floatField(line, 30, 38, "x"); err != nil {
		return nil, err
	}
	if atom.Y, err = floatField(line, 38, 46, "y"); err != nil {
		return nil, err
	}
	if atom.Z, err = floatField(line, 46, 54, "z"); err != nil {
		return nil, err
	}
	if atom.Occupancy, err = floatField(line, 54, 60, "occupancy"); err != nil {
		return nil, err
	}
	if atom.BFactor, err = floatField(line, 60, 66, "B-factor"); err != nil {
		return nil, err
	}
	atom.Element = strings.TrimSpace(column(line, 76, 78))
	atom.Charge = strings.TrimSpace(column(line, 78, 80))

	if _, ok := threeToOne[atom.Residue]; !ok {
		return nil, fmt.Errorf("unknown residue %q in atom %d", atom.Residue, atom.Number)
	}

	return &atom, nil
}

// column returns line[start:end], clipped to the line length.
func column(line string, start, end int) string {
	if start >= len(line) {
		return ""
	}
	if end > len(line) {
		end = len(line)
	}
	return line[start:end]
}

func intField(line string, start, end int, name string) (int, error) {
	s := strings.TrimSpace(column(line, start, end))
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s %q: not an integer", name, s)
	}
	return v, nil
}

func floatField(line string, start, end int, name string) (float64, error) {
	s := strings.TrimSpace(column(line, start, end))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q: not a number", name, s)
	}
	return v, nil
}
