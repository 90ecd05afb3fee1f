// Package session defines the ephemeral result of one matching request:
// scored candidates, ranked recommendations, and their explanations.
// A session is created per request and never shared across requests.
package session

import (
	"time"

	"github.com/kailas-cloud/matchdex/internal/domain/complexity"
	"github.com/kailas-cloud/matchdex/internal/domain/factor"
	"github.com/kailas-cloud/matchdex/internal/domain/segment"
)

// TermMatch records how one order requirement resolved against a
// manufacturer's declared set.
type TermMatch struct {
	Requirement string
	BestMatch   string
	Score       float64
}

// ScoredCandidate is the per-manufacturer scoring result within a session.
type ScoredCandidate struct {
	manufacturerID string
	factors        map[factor.Factor]float64
	overall        float64
	confidence     float64
	termMatches    []TermMatch
	flagged        bool
}

// NewScoredCandidate creates a ScoredCandidate. Sub-scores and the overall
// score are clamped to [0,1].
func NewScoredCandidate(
	manufacturerID string, factors map[factor.Factor]float64,
	overall, confidence float64, termMatches []TermMatch, flagged bool,
) ScoredCandidate {
	fs := make(map[factor.Factor]float64, len(factors))
	for k, v := range factors {
		fs[k] = clamp01(v)
	}
	return ScoredCandidate{
		manufacturerID: manufacturerID,
		factors:        fs,
		overall:        clamp01(overall),
		confidence:     clamp01(confidence),
		termMatches:    append([]TermMatch(nil), termMatches...),
		flagged:        flagged,
	}
}

// ManufacturerID returns the candidate's manufacturer identifier.
func (c ScoredCandidate) ManufacturerID() string { return c.manufacturerID }

// Factor returns one factor sub-score.
func (c ScoredCandidate) Factor(f factor.Factor) float64 { return c.factors[f] }

// Factors returns a copy of all factor sub-scores.
func (c ScoredCandidate) Factors() map[factor.Factor]float64 {
	fs := make(map[factor.Factor]float64, len(c.factors))
	for k, v := range c.factors {
		fs[k] = v
	}
	return fs
}

// Overall returns the combined score in [0,1].
func (c ScoredCandidate) Overall() float64 { return c.overall }

// Confidence returns the scoring confidence in [0,1].
func (c ScoredCandidate) Confidence() float64 { return c.confidence }

// TermMatches returns per-requirement resolver outcomes for the
// capability factor.
func (c ScoredCandidate) TermMatches() []TermMatch {
	return append([]TermMatch(nil), c.termMatches...)
}

// Flagged reports whether the capability consistency check penalized
// this candidate.
func (c ScoredCandidate) Flagged() bool { return c.flagged }

// Summary is the first explanation tier: what a buyer sees at a glance.
type Summary struct {
	Label         string
	TopFactors    []factor.Factor
	ConfidencePct int
	Strength      string
	Concern       string
}

// Detailed is the second explanation tier.
type Detailed struct {
	Breakdown     map[factor.Factor]float64
	Alignment     string
	Risks         []string
	Opportunities []string
}

// Expert is the third explanation tier: raw inputs for an analyst.
type Expert struct {
	WeightsUsed  map[factor.Factor]float64
	TermMatches  []TermMatch
	IntervalLow  float64
	IntervalHigh float64
}

// Explanation bundles the requested tiers. Detailed and Expert are nil
// when not requested.
type Explanation struct {
	Summary  Summary
	Detailed *Detailed
	Expert   *Expert
}

// Recommendation is one ranked entry in the session output.
type Recommendation struct {
	Candidate   ScoredCandidate
	Rank        int
	Explanation Explanation
}

// Session is the ephemeral record of one matching request.
type Session struct {
	id              string
	orderID         string
	segment         segment.Segment
	complexity      complexity.Result
	optionCount     int
	recommendations []Recommendation
	createdAt       time.Time
}

// New creates a Session.
func New(
	id, orderID string, seg segment.Segment, cx complexity.Result,
	optionCount int, recs []Recommendation, createdAt time.Time,
) Session {
	return Session{
		id:              id,
		orderID:         orderID,
		segment:         seg,
		complexity:      cx,
		optionCount:     optionCount,
		recommendations: append([]Recommendation(nil), recs...),
		createdAt:       createdAt,
	}
}

// ID returns the session identifier.
func (s Session) ID() string { return s.id }

// OrderID returns the matched order's identifier.
func (s Session) OrderID() string { return s.orderID }

// Segment returns the customer segment the session was scored under.
func (s Session) Segment() segment.Segment { return s.segment }

// Complexity returns the order complexity analysis.
func (s Session) Complexity() complexity.Result { return s.complexity }

// OptionCount returns how many candidates the policy decided to surface.
func (s Session) OptionCount() int { return s.optionCount }

// Recommendations returns the ranked recommendation list.
func (s Session) Recommendations() []Recommendation {
	return append([]Recommendation(nil), s.recommendations...)
}

// CreatedAt returns the session creation time.
func (s Session) CreatedAt() time.Time { return s.createdAt }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
