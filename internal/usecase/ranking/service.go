// Package ranking sorts scored candidates, applies the viability floor
// and tie-break rules, and derives tiered human-readable explanations
// from the already-computed factor breakdown.
package ranking

import (
	"sort"

	"github.com/kailas-cloud/matchdex/internal/domain"
	"github.com/kailas-cloud/matchdex/internal/domain/complexity"
	"github.com/kailas-cloud/matchdex/internal/domain/session"
	"github.com/kailas-cloud/matchdex/internal/domain/weights"
)

// DefaultViabilityFloor excludes candidates below this overall score
// rather than padding the list with poor matches.
const DefaultViabilityFloor = 0.10

// Service ranks scored candidates. Safe for concurrent use.
type Service struct {
	floor float64
}

// New creates a ranking service. A non-positive floor selects the default.
func New(floor float64) *Service {
	if floor <= 0 {
		floor = DefaultViabilityFloor
	}
	return &Service{floor: floor}
}

// Rank orders candidates by overall score and returns up to optionCount
// recommendations. Ties break by confidence descending, then by
// manufacturer ID ascending so identical inputs always produce identical
// output. Returns domain.ErrNoViableCandidate when fewer than two
// candidates clear the viability floor; the caller surfaces that as a
// no-strong-match outcome, not a failure.
func (s *Service) Rank(
	candidates []session.ScoredCandidate,
	cx complexity.Result,
	w weights.Vector,
	optionCount int,
) ([]session.Recommendation, error) {
	viable := make([]session.ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Overall() >= s.floor {
			viable = append(viable, c)
		}
	}

	if len(viable) < 2 {
		return nil, domain.ErrNoViableCandidate
	}

	sort.SliceStable(viable, func(i, j int) bool {
		a, b := viable[i], viable[j]
		if a.Overall() != b.Overall() {
			return a.Overall() > b.Overall()
		}
		if a.Confidence() != b.Confidence() {
			return a.Confidence() > b.Confidence()
		}
		return a.ManufacturerID() < b.ManufacturerID()
	})

	if optionCount > 0 && len(viable) > optionCount {
		viable = viable[:optionCount]
	}

	recs := make([]session.Recommendation, len(viable))
	for i, c := range viable {
		recs[i] = session.Recommendation{
			Candidate:   c,
			Rank:        i + 1,
			Explanation: explain(c, cx, w),
		}
	}
	return recs, nil
}
