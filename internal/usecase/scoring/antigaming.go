package scoring

import "github.com/kailas-cloud/matchdex/internal/domain/manufacturer"

// Capability declarations are cheap to inflate; completed orders are not.
// consistencyPenalty returns a multiplicative penalty on the capability
// sub-score when declared breadth is statistically inconsistent with the
// historical sample, applied before weighting so keyword stuffing cannot
// dominate the ranking.
func consistencyPenalty(p *manufacturer.Profile) (float64, bool) {
	breadth := p.DeclaredBreadth()
	switch {
	case p.CompletedOrders() == 0 && breadth > 8:
		return 0.5, true
	case breadth > 5 && p.CompletedOrders() < 2*breadth:
		return 0.75, true
	default:
		return 1.0, false
	}
}
