// Package matchdex is an embeddable manufacturer-order matching and
// recommendation engine: multi-factor candidate scoring, complexity-aware
// option counts, tiered explanations, and a feedback learning loop that
// adapts per-segment factor weights.
package matchdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/matchdex/internal/db"
	dbRedis "github.com/kailas-cloud/matchdex/internal/db/redis"
	"github.com/kailas-cloud/matchdex/internal/domain/manufacturer"
	"github.com/kailas-cloud/matchdex/internal/domain/segment"
	weightsrepo "github.com/kailas-cloud/matchdex/internal/repository/weights"
	complexityuc "github.com/kailas-cloud/matchdex/internal/usecase/complexity"
	learninguc "github.com/kailas-cloud/matchdex/internal/usecase/learning"
	matchinguc "github.com/kailas-cloud/matchdex/internal/usecase/matching"
	rankinguc "github.com/kailas-cloud/matchdex/internal/usecase/ranking"
	scoringuc "github.com/kailas-cloud/matchdex/internal/usecase/scoring"
	similarityuc "github.com/kailas-cloud/matchdex/internal/usecase/similarity"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the matchdex SDK entry point.
type Client struct {
	store    db.Store
	matching *matchinguc.Service
	learning *learninguc.Service
	weights  *weightsrepo.Store
	analyzer *complexityuc.Service
}

// New creates a matchdex Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		readinessTimeout: defaultReadinessTimeout,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("matchdex: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
		DB:       cfg.db,
	})
	if err != nil {
		return nil, fmt.Errorf("matchdex: create redis store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("matchdex: database not ready: %w", err)
	}

	return wireClient(store, cfg), nil
}

func wireClient(store db.Store, cfg *clientConfig) *Client {
	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	weightsRepo := weightsrepo.New(store)
	analyzer := complexityuc.New()

	matching := matchinguc.New(
		analyzer,
		scoringuc.New(similarityuc.New(logger)),
		rankinguc.New(cfg.viabilityFloor),
		weightsRepo,
		matchinguc.Config{
			MinConfidence: cfg.minConfidence,
			MinSamples:    cfg.minSamples,
			MaxConcurrent: cfg.maxConcurrent,
		},
		logger,
	)

	learning := learninguc.New(
		weightsRepo,
		learninguc.Config{
			BaseRate:    cfg.learningRate,
			SaveRetries: cfg.saveRetries,
			ClaimTTL:    cfg.claimTTL,
		},
		logger,
	)

	return &Client{
		store:    store,
		matching: matching,
		learning: learning,
		weights:  weightsRepo,
		analyzer: analyzer,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Match scores the candidates against the order and returns ranked
// recommendations. A result with NoStrongMatch set and zero
// recommendations is a valid outcome, not an error.
func (c *Client) Match(
	ctx context.Context, order Order, candidates []Manufacturer, prefs Preferences,
) (MatchResult, error) {
	o, err := toDomainOrder(order)
	if err != nil {
		return MatchResult{}, fmt.Errorf("matchdex: %w", err)
	}

	profiles := make([]*manufacturer.Profile, 0, len(candidates))
	for _, m := range candidates {
		p, err := toDomainProfile(m)
		if err != nil {
			return MatchResult{}, fmt.Errorf("matchdex: candidate %s: %w", m.ID, err)
		}
		profiles = append(profiles, &p)
	}

	sess, err := c.matching.Match(ctx, &o, profiles, toDomainHints(prefs))
	if err != nil {
		return MatchResult{}, fmt.Errorf("matchdex: %w", err)
	}

	return fromDomainSession(sess), nil
}

// Analyze runs the standalone complexity analysis for an order.
func (c *Client) Analyze(order Order) (Complexity, error) {
	o, err := toDomainOrder(order)
	if err != nil {
		return Complexity{}, fmt.Errorf("matchdex: %w", err)
	}
	return fromDomainComplexity(c.analyzer.Analyze(&o)), nil
}

// RecordChoice reports a resolved session back to the learning loop.
// Idempotent per session ID: repeats acknowledge as duplicates.
func (c *Client) RecordChoice(ctx context.Context, choice Choice) (Ack, error) {
	ev, err := toDomainChoice(choice)
	if err != nil {
		return Ack{}, fmt.Errorf("matchdex: %w", err)
	}

	ack, err := c.learning.RecordChoice(ctx, ev)
	if err != nil {
		return Ack{}, fmt.Errorf("matchdex: %w", err)
	}

	return Ack{Outcome: string(ack.Outcome), Segment: ack.Segment.String()}, nil
}

// SegmentWeights returns a segment's effective weight vector and
// learning state.
func (c *Client) SegmentWeights(ctx context.Context, seg string) (SegmentWeights, error) {
	s, err := segment.Parse(seg)
	if err != nil {
		return SegmentWeights{}, fmt.Errorf("matchdex: %w", err)
	}

	vec, state, revision, err := c.weights.Get(ctx, s)
	if err != nil {
		return SegmentWeights{}, fmt.Errorf("matchdex: %w", err)
	}

	return fromDomainWeights(s, vec, state, revision), nil
}
