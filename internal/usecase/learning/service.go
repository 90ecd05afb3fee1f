// Package learning consumes recorded customer choices and updates the
// relevant segment's weight vector under bounded-adjustment rules.
package learning

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/matchdex/internal/domain"
	"github.com/kailas-cloud/matchdex/internal/domain/choice"
	"github.com/kailas-cloud/matchdex/internal/domain/segment"
	"github.com/kailas-cloud/matchdex/internal/domain/weights"
	"github.com/kailas-cloud/matchdex/internal/metrics"
)

// Outcome reports how a choice event was processed.
type Outcome string

const (
	OutcomeApplied   Outcome = "applied"
	OutcomeDuplicate Outcome = "duplicate"
)

// Ack is the learning-update acknowledgment returned to the caller.
type Ack struct {
	Outcome Outcome
	Segment segment.Segment
}

// Config bounds the learning behavior.
type Config struct {
	// BaseRate is the learning rate before decay, default 0.1.
	BaseRate float64
	// SaveRetries bounds retry attempts on revision conflicts, default 3.
	SaveRetries int
	// ClaimTTL is the dedup window for session claims, default 24h.
	ClaimTTL time.Duration
}

func (c *Config) applyDefaults() {
	if c.BaseRate <= 0 {
		c.BaseRate = 0.1
	}
	if c.SaveRetries <= 0 {
		c.SaveRetries = 3
	}
	if c.ClaimTTL <= 0 {
		c.ClaimTTL = 24 * time.Hour
	}
}

// Confidence update steps per outcome.
const (
	confidenceGain  = 0.05
	confidenceDecay = 0.95
	// rateDecayScale decays the effective learning rate as interactions
	// grow: rate = base * scale / (scale + n). Late-stage updates stay
	// small so a mature segment cannot be destabilized by a few events.
	rateDecayScale = 20.0
)

// Service is the feedback learning loop. Safe for concurrent use;
// concurrent updates for the same segment serialize through the store's
// revision check.
type Service struct {
	store WeightStore
	cfg   Config
	log   *zap.Logger
}

// New creates a learning service.
func New(store WeightStore, cfg Config, log *zap.Logger) *Service {
	cfg.applyDefaults()
	return &Service{store: store, cfg: cfg, log: log}
}

// RecordChoice ingests one customer choice event. Idempotent per session
// ID: a session that was already recorded acknowledges as a duplicate
// without touching the weights. Revision conflicts with concurrent
// updates for the same segment are retried up to the configured bound,
// then surfaced as domain.ErrWeightConflict. A claim that did not end in
// an applied update is released, so redelivering the failed event later
// processes it instead of acknowledging a duplicate.
func (s *Service) RecordChoice(ctx context.Context, ev choice.Event) (Ack, error) {
	seg := ev.Segment()

	claimed, err := s.store.ClaimChoice(ctx, ev.SessionID(), s.cfg.ClaimTTL)
	if err != nil {
		return Ack{}, fmt.Errorf("claim choice: %w", err)
	}
	if !claimed {
		metrics.LearningUpdatesTotal.WithLabelValues(seg.String(), "duplicate").Inc()
		return Ack{Outcome: OutcomeDuplicate, Segment: seg}, nil
	}

	var lastErr error
	for attempt := 0; attempt < s.cfg.SaveRetries; attempt++ {
		vec, state, revision, err := s.store.Get(ctx, seg)
		switch {
		case errors.Is(err, domain.ErrInvalidWeights):
			// A corrupt stored vector must not block learning: restart the
			// segment from the global default and log for offline review.
			s.log.Error("stored weight vector invalid, resetting to default",
				zap.String("segment", seg.String()),
				zap.Error(err),
			)
			vec = weights.Default()
		case err != nil:
			s.releaseClaim(ctx, ev.SessionID())
			return Ack{}, fmt.Errorf("load segment %s: %w", seg, err)
		}
		if vec.IsZero() {
			vec = weights.Default()
		}

		rate := s.cfg.BaseRate * rateDecayScale / (rateDecayScale + float64(state.Interactions()))
		updatedVec := vec.Adjusted(ev.ImportantFactors(), rate)
		updatedState, err := nextState(state, ev, rate)
		if err != nil {
			s.releaseClaim(ctx, ev.SessionID())
			return Ack{}, fmt.Errorf("segment %s state update: %w", seg, err)
		}

		err = s.store.Save(ctx, seg, updatedVec, updatedState, revision)
		if err == nil {
			metrics.LearningUpdatesTotal.WithLabelValues(seg.String(), "applied").Inc()
			return Ack{Outcome: OutcomeApplied, Segment: seg}, nil
		}
		if !errors.Is(err, domain.ErrWeightConflict) {
			s.releaseClaim(ctx, ev.SessionID())
			return Ack{}, fmt.Errorf("save segment %s: %w", seg, err)
		}

		metrics.WeightConflictsTotal.Inc()
		lastErr = err
	}

	s.releaseClaim(ctx, ev.SessionID())
	metrics.LearningUpdatesTotal.WithLabelValues(seg.String(), "conflict").Inc()
	return Ack{}, fmt.Errorf("record choice for %s: retries exhausted: %w", seg, lastErr)
}

// releaseClaim drops the session claim after a failed update. Release is
// best effort: if it fails the claim key still expires with its TTL, so
// the event is delayed rather than lost.
func (s *Service) releaseClaim(ctx context.Context, sessionID string) {
	if err := s.store.ReleaseChoice(ctx, sessionID); err != nil {
		s.log.Warn("choice claim release failed",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
	}
}

// nextState advances the segment's learning metadata for one event.
// Confidence rises asymptotically on successful matches and decays
// multiplicatively on poor outcomes.
func nextState(state segment.State, ev choice.Event, rate float64) (segment.State, error) {
	interactions := state.Interactions() + 1
	successes := state.Successes()
	confidence := state.Confidence()

	if ev.Successful() {
		successes++
		confidence += confidenceGain * (1 - confidence)
	}
	if ev.Poor() {
		confidence *= confidenceDecay
	}

	return segment.NewState(interactions, successes, confidence, rate)
}
