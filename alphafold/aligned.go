package alphafold

import (
	"log/slog"
	"sort"
)

// PairError is the symmetric aligned error of a residue pair.
type PairError struct {
	I     int     `json:"i"`
	J     int     `json:"j"`
	Label string  `json:"label"` // e.g. "C2-E4"
	Error float64 `json:"error"`
}

// PairwiseErrors returns the aligned error of residue pairs taken from
// positions. With queryOnly, only the pairs of positions[0] with each other
// position are measured; otherwise every unordered pair is, in input order.
//
// Fewer than two positions yields no pairs and no error; use AvgPairwiseError
// to get NoValue in that case. positions is not modified.
func (m *Model) PairwiseErrors(positions []int, queryOnly bool) ([]PairError, error) {
	residues, err := m.structure.ResidueAt(positions...)
	if err != nil {
		return nil, err
	}

	if len(positions) < 2 {
		m.log.Debug("no residue pairs to measure", slog.Any("positions", positions))
		return nil, nil
	}

	var pairs [][2]int
	if queryOnly {
		for b := 1; b < len(positions); b++ {
			pairs = append(pairs, [2]int{0, b})
		}
	} else {
		for a := 0; a < len(positions); a++ {
			for b := a + 1; b < len(positions); b++ {
				pairs = append(pairs, [2]int{a, b})
			}
		}
	}

	errors := make([]PairError, 0, len(pairs))
	for _, p := range pairs {
		r1, r2 := residues[p[0]], residues[p[1]]
		v, err := m.matrix.Pairwise(r1.Position, r2.Position)
		if err != nil {
			return nil, err
		}
		errors = append(errors, PairError{
			I:     r1.Position,
			J:     r2.Position,
			Label: r1.ID() + "-" + r2.ID(),
			Error: v,
		})
	}

	return errors, nil
}

// AvgPairwiseError returns the mean aligned error of the pairs measured by
// PairwiseErrors, or NoValue when there are none.
func (m *Model) AvgPairwiseError(positions []int, queryOnly bool) (float64, error) {
	pairs, err := m.PairwiseErrors(positions, queryOnly)
	if err != nil {
		return 0, err
	}

	return meanError(pairs), nil
}

// meanError sums in ascending order so the mean does not depend on the order
// the pairs were measured in.
func meanError(pairs []PairError) float64 {
	if len(pairs) == 0 {
		return NoValue
	}

	vs := make([]float64, len(pairs))
	for i, p := range pairs {
		vs[i] = p.Error
	}
	sort.Float64s(vs)

	return mean(vs)
}
