package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoViableCandidate signals that fewer than two candidates cleared
	// the viability floor. A valid matching outcome, not a failure.
	ErrNoViableCandidate = errors.New("no viable candidate")
	// ErrInvalidWeights signals a weight vector that fails validation.
	ErrInvalidWeights = errors.New("invalid weight vector")
	// ErrWeightConflict signals an optimistic locking conflict on a
	// segment's stored weights.
	ErrWeightConflict = errors.New("weight revision conflict")
	// ErrDuplicateChoice signals a choice event whose session was already
	// recorded. Idempotent ingestion treats this as success.
	ErrDuplicateChoice = errors.New("choice already recorded")
	// ErrSegmentUnknown signals an unrecognized customer segment name.
	ErrSegmentUnknown = errors.New("unknown customer segment")
	// ErrInvalidOrder signals an order record that cannot be matched at all.
	ErrInvalidOrder = errors.New("invalid order")
	// ErrNoCandidates signals an empty candidate list.
	ErrNoCandidates = errors.New("no candidates supplied")
)

// WeightConflictError wraps ErrWeightConflict with the revision currently
// stored for the segment.
type WeightConflictError struct {
	Segment         string
	CurrentRevision int64
}

func (e *WeightConflictError) Error() string {
	return fmt.Sprintf("%s: segment %s is at revision %d",
		ErrWeightConflict.Error(), e.Segment, e.CurrentRevision)
}

func (e *WeightConflictError) Unwrap() error { return ErrWeightConflict }

// NewWeightConflict creates a weight revision conflict error.
func NewWeightConflict(segment string, currentRevision int64) error {
	return &WeightConflictError{Segment: segment, CurrentRevision: currentRevision}
}

// KeyPrefix namespaces all engine keys in the backing store.
const KeyPrefix = "matchdex:"
