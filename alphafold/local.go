package alphafold

import (
	"log/slog"

	"github.com/tikz/alphasense/pdb"
)

// ResidueConfidence is the pLDDT of one residue.
type ResidueConfidence struct {
	Position   int     `json:"position"`
	Label      string  `json:"label"` // e.g. "D3"
	Confidence float64 `json:"confidence"`
}

// Neighbourhood returns the query position followed, in ascending order, by
// the other residues within radius of it. See pdb.Model.ResiduesWithin for
// fromCenter.
func (m *Model) Neighbourhood(position int, radius float64, fromCenter bool) ([]int, error) {
	found, err := m.structure.ResiduesWithin(pdb.ResidueQuery(position), radius, fromCenter)
	if err != nil {
		return nil, err
	}

	positions := make([]int, 1, len(found)+1)
	positions[0] = position
	for _, pos := range found {
		if pos != position {
			positions = append(positions, pos)
		}
	}
	return positions, nil
}

// LocalError returns the mean aligned error between the residues of the
// neighbourhood of position, or NoValue when the neighbourhood is the query
// alone. queryOnly restricts the pairs to those involving the query.
func (m *Model) LocalError(position int, radius float64, fromCenter, queryOnly bool) (float64, error) {
	pairs, err := m.LocalPairErrors(position, radius, fromCenter, queryOnly)
	if err != nil {
		return 0, err
	}

	return meanError(pairs), nil
}

// LocalPairErrors is LocalError without averaging: one entry per measured pair,
// none when the neighbourhood is the query alone.
func (m *Model) LocalPairErrors(position int, radius float64, fromCenter, queryOnly bool) ([]PairError, error) {
	positions, err := m.Neighbourhood(position, radius, fromCenter)
	if err != nil {
		return nil, err
	}

	if len(positions) <= 1 {
		m.log.Debug("no neighbours to measure local PAE",
			slog.Int("position", position),
			slog.Float64("radius", radius),
			slog.Bool("fromCenter", fromCenter))
		return nil, nil
	}

	return m.PairwiseErrors(positions, queryOnly)
}

// LocalConfidence returns the mean pLDDT of the neighbourhood of position.
// A neighbourhood of the query alone gives the query pLDDT.
func (m *Model) LocalConfidence(position int, radius float64, fromCenter bool) (float64, error) {
	scores, err := m.LocalConfidences(position, radius, fromCenter)
	if err != nil {
		return 0, err
	}

	vs := make([]float64, len(scores))
	for i, s := range scores {
		vs[i] = s.Confidence
	}
	return mean(vs), nil
}

// LocalConfidences returns the pLDDT of every residue in the neighbourhood of
// position, query first.
func (m *Model) LocalConfidences(position int, radius float64, fromCenter bool) ([]ResidueConfidence, error) {
	positions, err := m.Neighbourhood(position, radius, fromCenter)
	if err != nil {
		return nil, err
	}

	if len(positions) <= 1 {
		m.log.Debug("no neighbours for local pLDDT, using the query residue",
			slog.Int("position", position),
			slog.Float64("radius", radius),
			slog.Bool("fromCenter", fromCenter))
	}

	residues, err := m.structure.ResidueAt(positions...)
	if err != nil {
		return nil, err
	}

	scores := make([]ResidueConfidence, len(residues))
	for i, res := range residues {
		scores[i] = ResidueConfidence{
			Position:   res.Position,
			Label:      res.ID(),
			Confidence: round(res.Confidence()),
		}
	}
	return scores, nil
}
