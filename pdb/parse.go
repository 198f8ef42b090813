package pdb

import (
	"fmt"
	"io"

	"github.com/tikz/alphasense/errs"
	"github.com/tikz/alphasense/input"
	"github.com/tikz/alphasense/spatial"
)

// ReadFile parses the PDB file at path. Files ending in ".gz" are decompressed.
// A missing file is reported as errs.ErrNotFound.
func ReadFile(path string) (*Model, error) {
	f, err := input.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model: %w", err)
	}
	defer f.Close()

	m, err := Parse(f, path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return m, nil
}

// Parse reads a PDB file in one pass and builds the model with its spatial index.
// Only the first model of an ensemble is read.
func Parse(r io.Reader, path string) (*Model, error) {
	b := &builder{m: &Model{Path: path}}

	s := NewScanner(r)
	for !b.done && s.Scan() {
		if err := b.add(s.Record()); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", errs.ErrParse, s.Line(), err)
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	if err := b.finish(); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrParse, err)
	}

	return b.m, nil
}

// builder groups atoms into residues as they are read.
type builder struct {
	m *Model

	seqres   []byte
	hasDBRef bool
	done     bool

	open      *Residue
	openStart int
	current   int
	spans     [][2]int
}

func (b *builder) add(rec Record) error {
	switch rec := rec.(type) {
	case DBRef:
		if !b.hasDBRef {
			b.m.Accession = rec.Accession
			b.m.Name = rec.Name
			b.hasDBRef = true
		}
	case SeqRes:
		b.seqres = append(b.seqres, rec.Sequence...)
	case *Atom:
		return b.addAtom(rec)
	case Ter:
		b.closeResidue()
	case EndModel:
		b.closeResidue()
		b.done = true
	}
	return nil
}

func (b *builder) addAtom(atom *Atom) error {
	pos := atom.ResidueNumber

	if b.open != nil && pos == b.open.Position {
		if name := threeToOne[atom.Residue]; name != b.open.Name1 {
			return fmt.Errorf("residue %d: atom %d is %s, residue is %s",
				pos, atom.Number, atom.Residue, b.open.Name3)
		}
		b.m.Atoms = append(b.m.Atoms, *atom)
		return nil
	}

	if pos <= b.current {
		return fmt.Errorf("residue %d after residue %d: residue numbers must increase", pos, b.current)
	}

	b.closeResidue()
	if want := len(b.m.Residues) + 1; pos != want {
		return fmt.Errorf("residue %d: expected residue %d, numbering must be contiguous from 1", pos, want)
	}

	b.open = NewResidue(atom.Chain, pos, atom.Residue)
	b.openStart = len(b.m.Atoms)
	b.current = pos
	b.m.Atoms = append(b.m.Atoms, *atom)
	return nil
}

// closeResidue finalizes the open residue, if any.
func (b *builder) closeResidue() {
	if b.open == nil {
		return
	}

	end := len(b.m.Atoms)
	b.open.Centroid = centroid(b.m.Atoms[b.openStart:end])
	b.m.Residues = append(b.m.Residues, b.open)
	b.spans = append(b.spans, [2]int{b.openStart, end})
	b.open = nil
}

func (b *builder) finish() error {
	b.closeResidue()

	m := b.m
	if len(m.Residues) == 0 {
		return fmt.Errorf("no ATOM records")
	}

	// The atom arena is complete, residues can now share it.
	for i, res := range m.Residues {
		s := b.spans[i]
		res.Atoms = m.Atoms[s[0]:s[1]:s[1]]
	}

	seq := make([]byte, len(m.Residues))
	for i, res := range m.Residues {
		seq[i] = res.Name1[0]
	}

	if len(b.seqres) > 0 {
		if len(b.seqres) != len(seq) {
			return fmt.Errorf("SEQRES has %d residues, ATOM records have %d", len(b.seqres), len(seq))
		}
		for i := range seq {
			if seq[i] != b.seqres[i] {
				return fmt.Errorf("residue %d is %c in SEQRES and %c in ATOM records", i+1, b.seqres[i], seq[i])
			}
		}
	}

	m.Sequence = string(seq)
	m.Length = len(seq)

	points := make([]spatial.Point, len(m.Atoms))
	for i := range m.Atoms {
		points[i] = m.Atoms[i].Point()
	}
	m.index = spatial.NewIndex(points)

	return nil
}
