// Package segment defines customer segments and the per-segment learning
// state maintained by the feedback loop.
package segment

import (
	"fmt"

	"github.com/kailas-cloud/matchdex/internal/domain"
)

// Segment classifies a customer for weight personalization.
type Segment string

const (
	PriceSensitive  Segment = "price_sensitive"
	QualityFocused  Segment = "quality_focused"
	SpeedPriority   Segment = "speed_priority"
	LocalPreference Segment = "local_preference"
	PremiumBuyer    Segment = "premium_buyer"
	// Balanced is the cold-start default when no preference dominates.
	Balanced Segment = "balanced"
)

// All returns every segment in canonical order.
func All() []Segment {
	return []Segment{
		PriceSensitive, QualityFocused, SpeedPriority,
		LocalPreference, PremiumBuyer, Balanced,
	}
}

// Parse validates a segment name.
func Parse(s string) (Segment, error) {
	seg := Segment(s)
	for _, known := range All() {
		if seg == known {
			return seg, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrSegmentUnknown, s)
}

// String returns the segment name.
func (s Segment) String() string { return string(s) }

// Hints are optional customer preference flags supplied by the host.
type Hints struct {
	PriceSensitive bool
	QualityFocused bool
	PrefersLocal   bool
	SpeedPriority  bool
}

// Classify maps preference hints to a segment. Precedence resolves
// conflicting flags deterministically; quality plus price signals a
// premium buyer (willing to pay for quality, attentive to value).
// No flags at all maps to Balanced.
func Classify(h Hints) Segment {
	switch {
	case h.QualityFocused && h.PriceSensitive:
		return PremiumBuyer
	case h.QualityFocused:
		return QualityFocused
	case h.PriceSensitive:
		return PriceSensitive
	case h.SpeedPriority:
		return SpeedPriority
	case h.PrefersLocal:
		return LocalPreference
	default:
		return Balanced
	}
}

// State is the per-segment learning metadata (immutable value object).
// Mutated only through the feedback learning loop.
type State struct {
	interactions int64
	successes    int64
	confidence   float64
	velocity     float64
}

// NewState validates and creates a State.
func NewState(interactions, successes int64, confidence, velocity float64) (State, error) {
	if interactions < 0 || successes < 0 {
		return State{}, fmt.Errorf("interaction counters must be non-negative")
	}
	if successes > interactions {
		return State{}, fmt.Errorf("successes %d exceed interactions %d", successes, interactions)
	}
	if confidence < 0 || confidence > 1 {
		return State{}, fmt.Errorf("confidence must be in [0,1], got %v", confidence)
	}
	if velocity < 0 {
		return State{}, fmt.Errorf("velocity must be non-negative")
	}
	return State{
		interactions: interactions,
		successes:    successes,
		confidence:   confidence,
		velocity:     velocity,
	}, nil
}

// Interactions returns the total recorded choices for the segment.
func (s State) Interactions() int64 { return s.interactions }

// Successes returns choices where the picked candidate ranked 1st or 2nd.
func (s State) Successes() int64 { return s.successes }

// Confidence returns how much the learned weights are trusted, in [0,1].
func (s State) Confidence() float64 { return s.confidence }

// Velocity returns the effective learning rate of the last update.
func (s State) Velocity() float64 { return s.velocity }
