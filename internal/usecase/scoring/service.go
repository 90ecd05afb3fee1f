// Package scoring computes per-factor sub-scores for one (order,
// manufacturer) pair and combines them into an overall score using a
// weight vector. Scoring is a pure function of its inputs and never
// mutates shared state, so candidates can be scored concurrently.
package scoring

import (
	"time"

	"github.com/kailas-cloud/matchdex/internal/domain/complexity"
	"github.com/kailas-cloud/matchdex/internal/domain/factor"
	"github.com/kailas-cloud/matchdex/internal/domain/manufacturer"
	"github.com/kailas-cloud/matchdex/internal/domain/order"
	"github.com/kailas-cloud/matchdex/internal/domain/segment"
	"github.com/kailas-cloud/matchdex/internal/domain/session"
	"github.com/kailas-cloud/matchdex/internal/domain/weights"
)

// Enhanced combination shares, applied only when personalization is
// active for the request's segment.
const (
	baseShare          = 0.70
	complexityShare    = 0.15
	personalShare      = 0.10
	marketShare        = 0.05
	flaggedConfPenalty = 0.15
	noHistoryPenalty   = 0.20
)

// Input carries the per-request scoring configuration. It is immutable
// for the duration of the request so concurrent requests with different
// weight sets cannot interfere.
type Input struct {
	Weights      weights.Vector
	Segment      segment.Segment
	Personalized bool
	Complexity   complexity.Result
}

// Service scores candidates. Safe for concurrent use.
type Service struct {
	resolver TermResolver
	now      func() time.Time
}

// New creates a candidate scorer.
func New(resolver TermResolver) *Service {
	return &Service{resolver: resolver, now: time.Now}
}

// NewWithClock creates a scorer with a fixed clock for tests.
func NewWithClock(resolver TermResolver, now func() time.Time) *Service {
	return &Service{resolver: resolver, now: now}
}

// Score evaluates one manufacturer against one order under the given
// configuration.
func (s *Service) Score(o *order.Order, p *manufacturer.Profile, in Input) session.ScoredCandidate {
	w := in.Weights
	if w.IsZero() {
		w = weights.Default()
	}

	capScore, termMatches := s.capability(o, p)
	penalty, flagged := consistencyPenalty(p)
	capScore *= penalty

	now := s.now()
	factors := map[factor.Factor]float64{
		factor.Capability:     capScore,
		factor.Performance:    performanceScore(p),
		factor.Proximity:      proximityScore(o, p),
		factor.Quality:        qualityScore(p),
		factor.Cost:           costScore(p),
		factor.Availability:   availabilityScore(now, o, p),
		factor.Specialization: s.specializationScore(o, p),
		factor.History:        historyScore(p),
	}

	base := 0.0
	for _, f := range factor.All() {
		base += w.Get(f) * factors[f]
	}
	// A candidate maxing every factor must score exactly 1.0 even though
	// the weight sum only holds to within tolerance.
	if base > 1-weights.SumTolerance {
		base = 1
	}

	overall := base
	if in.Personalized {
		overall = baseShare*base +
			complexityShare*complexityAdjustment(in.Complexity.Level(), factors) +
			personalShare*personalBoost(in.Segment, factors) +
			marketShare*marketContext(p, factors)
	}

	confidence := in.Complexity.Confidence()
	if p.CompletedOrders() == 0 {
		confidence -= noHistoryPenalty
	}
	if flagged {
		confidence -= flaggedConfPenalty
	}

	return session.NewScoredCandidate(
		p.ID(), factors, overall, confidence, termMatches, flagged,
	)
}

// complexityAdjustment rewards manufacturers whose strengths match the
// order's difficulty: demanding orders lean on capability and quality,
// simple ones on availability and price.
func complexityAdjustment(level complexity.Level, factors map[factor.Factor]float64) float64 {
	switch level {
	case complexity.Critical:
		return 0.5*factors[factor.Capability] +
			0.3*factors[factor.Quality] +
			0.2*factors[factor.Performance]
	case complexity.High:
		return 0.6*factors[factor.Capability] + 0.4*factors[factor.Quality]
	case complexity.Moderate:
		return 0.7*factors[factor.Capability] + 0.3*factors[factor.Availability]
	default:
		return 0.5*factors[factor.Availability] + 0.5*factors[factor.Cost]
	}
}

// personalBoost emphasizes the factor a segment cares about most.
func personalBoost(seg segment.Segment, factors map[factor.Factor]float64) float64 {
	switch seg {
	case segment.LocalPreference:
		return clamp01(factors[factor.Proximity] * 1.08)
	case segment.QualityFocused:
		return clamp01(factors[factor.Quality] * 1.06)
	case segment.PriceSensitive:
		return clamp01(factors[factor.Cost] * 1.06)
	case segment.SpeedPriority:
		return clamp01(factors[factor.Availability] * 1.05)
	case segment.PremiumBuyer:
		return clamp01(0.5*factors[factor.Quality] + 0.5*factors[factor.Cost])
	default:
		return clamp01(0.5*factors[factor.Capability] + 0.5*factors[factor.Performance])
	}
}

// marketContext reflects current supply conditions: free capacity and
// competitive pricing.
func marketContext(p *manufacturer.Profile, factors map[factor.Factor]float64) float64 {
	return clamp01(0.5*(1-p.CapacityLoad()) + 0.5*factors[factor.Cost])
}
