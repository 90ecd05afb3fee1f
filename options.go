package matchdex

import (
	"time"

	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs    []string
	username string
	password string
	db       int

	readinessTimeout time.Duration

	viabilityFloor float64
	learningRate   float64
	minConfidence  float64
	minSamples     int64
	saveRetries    int
	claimTTL       time.Duration
	maxConcurrent  int

	logger *zap.Logger
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedisCluster configures the client with a set of cluster seed
// addresses.
func WithRedisCluster(addrs []string, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = append([]string(nil), addrs...)
		c.password = password
	})
}

// WithUsername sets the Redis ACL username.
func WithUsername(username string) Option {
	return optionFunc(func(c *clientConfig) {
		c.username = username
	})
}

// WithDB selects a logical Redis database.
func WithDB(db int) Option {
	return optionFunc(func(c *clientConfig) {
		c.db = db
	})
}

// WithReadinessTimeout bounds the initial connection wait. Default: 10s.
func WithReadinessTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.readinessTimeout = d
	})
}

// WithViabilityFloor sets the minimum overall score a candidate needs to
// be recommended. Default: 0.10.
func WithViabilityFloor(floor float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.viabilityFloor = floor
	})
}

// WithLearningRate sets the base weight adjustment rate applied per
// recorded choice, before interaction-count decay. Default: 0.1.
func WithLearningRate(rate float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.learningRate = rate
	})
}

// WithPersonalizationGate sets the confidence and sample thresholds a
// segment must reach before its learned weights replace the defaults.
// Defaults: 0.5 confidence, 20 samples.
func WithPersonalizationGate(minConfidence float64, minSamples int64) Option {
	return optionFunc(func(c *clientConfig) {
		c.minConfidence = minConfidence
		c.minSamples = minSamples
	})
}

// WithSaveRetries bounds retry attempts on concurrent weight update
// conflicts. Default: 3.
func WithSaveRetries(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.saveRetries = n
	})
}

// WithChoiceClaimTTL sets the deduplication window for recorded choice
// sessions. Default: 24h.
func WithChoiceClaimTTL(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.claimTTL = d
	})
}

// WithScoringConcurrency caps parallel candidate scoring per session.
// Default: one goroutine per candidate.
func WithScoringConcurrency(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxConcurrent = n
	})
}

// WithLogger enables structured logging for engine operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}
