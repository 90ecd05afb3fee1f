// Package choice defines the immutable customer choice event consumed by
// the feedback learning loop. Events are append-only and deduplicated by
// session ID.
package choice

import (
	"fmt"

	"github.com/kailas-cloud/matchdex/internal/domain/factor"
	"github.com/kailas-cloud/matchdex/internal/domain/segment"
)

// Satisfaction is the customer's stated outcome signal.
type Satisfaction string

const (
	SatisfactionUnknown      Satisfaction = ""
	SatisfactionSatisfied    Satisfaction = "satisfied"
	SatisfactionDissatisfied Satisfaction = "dissatisfied"
)

// Event records one resolved matching session (immutable value object).
type Event struct {
	sessionID        string
	segment          segment.Segment
	chosenID         string
	chosenRank       int
	presentedCount   int
	importantFactors []factor.Factor
	satisfaction     Satisfaction
}

// New validates and creates an Event. Rank is 1-based among the
// presented options. Unknown important factors are rejected so malformed
// feedback cannot silently skew learning.
func New(
	sessionID string, seg segment.Segment, chosenID string,
	chosenRank, presentedCount int,
	importantFactors []string, satisfaction Satisfaction,
) (Event, error) {
	if sessionID == "" {
		return Event{}, fmt.Errorf("session ID is required")
	}
	if chosenID == "" {
		return Event{}, fmt.Errorf("chosen manufacturer ID is required")
	}
	if presentedCount < 1 {
		return Event{}, fmt.Errorf("presented count must be positive, got %d", presentedCount)
	}
	if chosenRank < 1 || chosenRank > presentedCount {
		return Event{}, fmt.Errorf("chosen rank %d outside presented range 1..%d",
			chosenRank, presentedCount)
	}
	switch satisfaction {
	case SatisfactionUnknown, SatisfactionSatisfied, SatisfactionDissatisfied:
	default:
		return Event{}, fmt.Errorf("unknown satisfaction signal %q", satisfaction)
	}
	fs := make([]factor.Factor, 0, len(importantFactors))
	for _, name := range importantFactors {
		f, err := factor.Parse(name)
		if err != nil {
			return Event{}, fmt.Errorf("important factor: %w", err)
		}
		fs = append(fs, f)
	}
	return Event{
		sessionID:        sessionID,
		segment:          seg,
		chosenID:         chosenID,
		chosenRank:       chosenRank,
		presentedCount:   presentedCount,
		importantFactors: fs,
		satisfaction:     satisfaction,
	}, nil
}

// SessionID returns the resolved session's identifier.
func (e Event) SessionID() string { return e.sessionID }

// Segment returns the customer segment the session was scored under.
func (e Event) Segment() segment.Segment { return e.segment }

// ChosenID returns the picked manufacturer's identifier.
func (e Event) ChosenID() string { return e.chosenID }

// ChosenRank returns the picked candidate's 1-based rank.
func (e Event) ChosenRank() int { return e.chosenRank }

// PresentedCount returns how many options were shown.
func (e Event) PresentedCount() int { return e.presentedCount }

// ImportantFactors returns the factors the customer said mattered.
func (e Event) ImportantFactors() []factor.Factor {
	return append([]factor.Factor(nil), e.importantFactors...)
}

// Satisfaction returns the stated outcome signal.
func (e Event) Satisfaction() Satisfaction { return e.satisfaction }

// Successful reports whether the engine's ranking agreed with the
// customer: the chosen candidate was ranked 1st or 2nd.
func (e Event) Successful() bool { return e.chosenRank <= 2 }

// Poor reports an outcome that should decay segment confidence: the
// customer picked the last-ranked option or reported dissatisfaction.
func (e Event) Poor() bool {
	return e.chosenRank == e.presentedCount && e.presentedCount > 1 ||
		e.satisfaction == SatisfactionDissatisfied
}
