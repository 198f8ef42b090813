package alphafold

import (
	"fmt"

	"github.com/tikz/alphasense/errs"
)

// Plddt returns the pLDDT of the residue at position and whether it reaches
// threshold.
func (m *Model) Plddt(position int, threshold float64) (float64, bool, error) {
	score, err := m.structure.Confidence(position)
	if err != nil {
		return 0, false, err
	}

	return score, score >= threshold, nil
}

// PlddtWindow returns the mean pLDDT of a window of residues centered on
// position, and whether it reaches threshold. The window is clipped at both
// ends of the sequence; window must be a positive odd number.
func (m *Model) PlddtWindow(position, window int, threshold float64) (float64, bool, error) {
	if window <= 0 || window%2 == 0 {
		return 0, false, fmt.Errorf("%w: window %d: needs to be a positive odd integer", errs.ErrQuery, window)
	}
	if _, err := m.structure.Residue(position); err != nil {
		return 0, false, err
	}

	left := max(1, position-window/2)
	right := min(m.Length(), position+window/2)

	scores := make([]float64, 0, right-left+1)
	for _, res := range m.structure.Residues[left-1 : right] {
		scores = append(scores, res.Confidence())
	}

	avg := mean(scores)
	return avg, avg >= threshold, nil
}
