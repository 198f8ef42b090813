package pdb

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/tikz/alphasense/errs"
)

// Record is a parsed line of a PDB file: DBRef, SeqRes, *Atom, Ter or EndModel.
type Record interface {
	record()
}

// DBRef is a DBREF record, the reference of the chain to a sequence database.
type DBRef struct {
	IDCode    string
	Chain     string
	Database  string
	Accession string
	Name      string
}

// SeqRes is a SEQRES record, a run of up to 13 residues of the primary sequence.
type SeqRes struct {
	Serial   int
	Chain    string
	Residues []string // three letter codes as written
	Sequence string   // one letter codes
}

// Ter is a TER record, closing a chain.
type Ter struct{}

// EndModel is an ENDMDL record, closing a model of an ensemble.
type EndModel struct{}

func (DBRef) record()    {}
func (SeqRes) record()   {}
func (*Atom) record()    {}
func (Ter) record()      {}
func (EndModel) record() {}

// Scanner reads the records of a PDB file one line at a time.
// Lines with other record names are skipped.
type Scanner struct {
	s    *bufio.Scanner
	rec  Record
	err  error
	line int
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 128), 1<<20)
	return &Scanner{s: s}
}

// Scan advances to the next record. It returns false at the end of the input
// or on the first malformed record; Err tells them apart.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}

	for s.s.Scan() {
		s.line++
		rec, err := parseRecord(s.s.Text())
		if err != nil {
			s.err = fmt.Errorf("%w: line %d: %v", errs.ErrParse, s.line, err)
			return false
		}
		if rec != nil {
			s.rec = rec
			return true
		}
	}

	if err := s.s.Err(); err != nil {
		s.err = fmt.Errorf("%w: line %d: %v", errs.ErrParse, s.line+1, err)
	}
	return false
}

// Record returns the record read by the last call to Scan.
func (s *Scanner) Record() Record {
	return s.rec
}

// Line returns the line number of the current record.
func (s *Scanner) Line() int {
	return s.line
}

// Err returns the first error found by the Scanner.
func (s *Scanner) Err() error {
	return s.err
}

func parseRecord(line string) (Record, error) {
	// The record name is always in the first six columns.
	switch strings.TrimSpace(column(line, 0, 6)) {
	case "DBREF":
		return parseDBRef(line), nil
	case "SEQRES":
		rec, err := parseSeqRes(line)
		if err != nil {
			return nil, err
		}
		return rec, nil
	case "ATOM":
		atom, err := parseAtom(line)
		if err != nil {
			return nil, err
		}
		return atom, nil
	case "TER":
		return Ter{}, nil
	case "ENDMDL":
		return EndModel{}, nil
	}

	return nil, nil
}

// https://www.wwpdb.org/documentation/file-format-content/format33/sect3.html#DBREF
func parseDBRef(line string) DBRef {
	return DBRef{
		IDCode:    strings.TrimSpace(column(line, 7, 11)),
		Chain:     strings.TrimSpace(column(line, 12, 13)),
		Database:  strings.TrimSpace(column(line, 26, 32)),
		Accession: strings.TrimSpace(column(line, 33, 41)),
		Name:      strings.TrimSpace(column(line, 42, 54)),
	}
}

// https://www.wwpdb.org/documentation/file-format-content/format33/sect3.html#SEQRES
func parseSeqRes(line string) (SeqRes, error) {
	var rec SeqRes
	var err error

	if rec.Serial, err = intField(line, 7, 10, "SEQRES serial"); err != nil {
		return rec, err
	}
	rec.Chain = strings.TrimSpace(column(line, 11, 12))

	// Residues are in columns 20-22, 24-26, ..., 68-70
	var seq strings.Builder
	for i := 19; i < len(line); i += 4 {
		name := strings.TrimSpace(column(line, i, i+3))
		if name == "" {
			continue
		}
		one, ok := threeToOne[strings.ToUpper(name)]
		if !ok {
			return rec, fmt.Errorf("unknown residue %q in SEQRES", name)
		}
		rec.Residues = append(rec.Residues, name)
		seq.WriteString(one)
	}
	rec.Sequence = seq.String()

	return rec, nil
}
