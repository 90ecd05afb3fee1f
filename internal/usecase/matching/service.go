// Package matching orchestrates one matching request: segment
// classification, weight selection, complexity analysis, concurrent
// candidate scoring, and ranked recommendation assembly.
package matching

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/matchdex/internal/domain"
	"github.com/kailas-cloud/matchdex/internal/domain/complexity"
	"github.com/kailas-cloud/matchdex/internal/domain/manufacturer"
	"github.com/kailas-cloud/matchdex/internal/domain/order"
	"github.com/kailas-cloud/matchdex/internal/domain/segment"
	"github.com/kailas-cloud/matchdex/internal/domain/session"
	"github.com/kailas-cloud/matchdex/internal/domain/weights"
	"github.com/kailas-cloud/matchdex/internal/metrics"
	"github.com/kailas-cloud/matchdex/internal/usecase/ranking"
	"github.com/kailas-cloud/matchdex/internal/usecase/scoring"
)

// Timeline pressure at or above this counts as urgent for the
// option-count policy.
const urgencyThreshold = 0.8

// Config bounds personalization and scoring parallelism per request.
type Config struct {
	// MinConfidence below which learned weights are ignored, default 0.5.
	MinConfidence float64
	// MinSamples of recorded choices before learned weights apply,
	// default 20.
	MinSamples int64
	// MaxConcurrent caps parallel candidate scoring, 0 = one goroutine
	// per candidate.
	MaxConcurrent int
}

func (c *Config) applyDefaults() {
	if c.MinConfidence <= 0 {
		c.MinConfidence = 0.5
	}
	if c.MinSamples <= 0 {
		c.MinSamples = 20
	}
}

// Service runs matching sessions. Safe for concurrent use; sessions
// share nothing but the read-only weight store.
type Service struct {
	analyzer Analyzer
	scorer   Scorer
	ranker   Ranker
	store    WeightReader
	cfg      Config
	log      *zap.Logger
	now      func() time.Time
	newID    func() string
}

// New creates a matching service.
func New(
	analyzer Analyzer, scorer Scorer, ranker Ranker, store WeightReader,
	cfg Config, log *zap.Logger,
) *Service {
	cfg.applyDefaults()
	return &Service{
		analyzer: analyzer,
		scorer:   scorer,
		ranker:   ranker,
		store:    store,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// WithClock overrides the session clock and ID source, for tests.
func (s *Service) WithClock(now func() time.Time, newID func() string) *Service {
	s.now = now
	s.newID = newID
	return s
}

// Match scores every candidate against the order and returns a session
// with ranked recommendations. A session with zero recommendations is
// the no-strong-match outcome: fewer than two candidates cleared the
// viability floor. That is a valid result, not an error.
func (s *Service) Match(
	ctx context.Context, o *order.Order,
	candidates []*manufacturer.Profile, hints segment.Hints,
) (session.Session, error) {
	if len(candidates) == 0 {
		return session.Session{}, domain.ErrNoCandidates
	}

	seg := segment.Classify(hints)
	vec, personalized := s.selectWeights(ctx, seg)
	cx := s.analyzer.Analyze(o)

	urgent := cx.Breakdown()[complexity.DimTimeline] >= urgencyThreshold
	optionCount := ranking.OptionCount(cx.Level(), urgent, o.HighPrecision())

	in := scoring.Input{
		Weights:      vec,
		Segment:      seg,
		Personalized: personalized,
		Complexity:   cx,
	}

	start := s.now()
	scored := s.scoreAll(o, candidates, in)
	metrics.MatchScoringDuration.Observe(time.Since(start).Seconds())
	metrics.MatchCandidatesScored.Observe(float64(len(scored)))
	metrics.MatchSessionsTotal.WithLabelValues(seg.String(), string(cx.Level())).Inc()

	recs, err := s.ranker.Rank(scored, cx, vec, optionCount)
	if err != nil {
		if !errors.Is(err, domain.ErrNoViableCandidate) {
			return session.Session{}, fmt.Errorf("rank candidates: %w", err)
		}
		metrics.MatchNoStrongMatchTotal.Inc()
		s.log.Info("no strong match",
			zap.String("order_id", o.ID()),
			zap.Int("candidates", len(candidates)),
		)
		recs = nil
	}

	return session.New(s.newID(), o.ID(), seg, cx, optionCount, recs, s.now()), nil
}

// Analyze exposes the complexity analysis without running full matching.
func (s *Service) Analyze(o *order.Order) complexity.Result {
	return s.analyzer.Analyze(o)
}

// selectWeights loads the segment's learned weights, falling back to the
// global default until the segment has enough validated data. The read
// happens once per session; scoring reuses the resulting vector.
func (s *Service) selectWeights(ctx context.Context, seg segment.Segment) (weights.Vector, bool) {
	vec, state, _, err := s.store.Get(ctx, seg)
	if err != nil {
		// A failed or invalid read degrades to defaults; it never fails
		// the matching request.
		s.log.Warn("weight store read failed, using default weights",
			zap.String("segment", seg.String()),
			zap.Error(err),
		)
		return weights.Default(), false
	}
	if vec.IsZero() ||
		state.Confidence() < s.cfg.MinConfidence ||
		state.Interactions() < s.cfg.MinSamples {
		return weights.Default(), false
	}
	return vec, true
}

// scoreAll scores candidates concurrently. Scoring is pure per
// candidate, so results slot into the output by index with no shared
// mutable state. A nil profile is skipped rather than aborting the
// batch.
func (s *Service) scoreAll(
	o *order.Order, candidates []*manufacturer.Profile, in scoring.Input,
) []session.ScoredCandidate {
	results := make([]session.ScoredCandidate, len(candidates))
	valid := make([]bool, len(candidates))

	limit := s.cfg.MaxConcurrent
	if limit <= 0 || limit > len(candidates) {
		limit = len(candidates)
	}
	sem := make(chan struct{}, limit)

	var wg sync.WaitGroup
	for i, p := range candidates {
		if p == nil {
			continue
		}
		wg.Add(1)
		go func(i int, p *manufacturer.Profile) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = s.scorer.Score(o, p, in)
			valid[i] = true
		}(i, p)
	}
	wg.Wait()

	out := make([]session.ScoredCandidate, 0, len(candidates))
	for i, ok := range valid {
		if ok {
			out = append(out, results[i])
		}
	}
	return out
}
