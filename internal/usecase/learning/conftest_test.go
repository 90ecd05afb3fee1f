package learning

import (
	"context"
	"time"

	"github.com/kailas-cloud/matchdex/internal/domain/segment"
	"github.com/kailas-cloud/matchdex/internal/domain/weights"
)

// mockWeightStore implements WeightStore for tests.
type mockWeightStore struct {
	getFn     func(ctx context.Context, seg segment.Segment) (weights.Vector, segment.State, int64, error)
	saveFn    func(ctx context.Context, seg segment.Segment, vec weights.Vector, state segment.State, rev int64) error
	claimFn   func(ctx context.Context, sessionID string, ttl time.Duration) (bool, error)
	releaseFn func(ctx context.Context, sessionID string) error

	getCalls     int
	saveCalls    int
	claimCalls   int
	releaseCalls int
}

func (m *mockWeightStore) Get(ctx context.Context, seg segment.Segment) (weights.Vector, segment.State, int64, error) {
	m.getCalls++
	if m.getFn != nil {
		return m.getFn(ctx, seg)
	}
	return weights.Vector{}, segment.State{}, 0, nil
}

func (m *mockWeightStore) Save(ctx context.Context, seg segment.Segment, vec weights.Vector, state segment.State, rev int64) error {
	m.saveCalls++
	if m.saveFn != nil {
		return m.saveFn(ctx, seg, vec, state, rev)
	}
	return nil
}

func (m *mockWeightStore) ClaimChoice(ctx context.Context, sessionID string, ttl time.Duration) (bool, error) {
	m.claimCalls++
	if m.claimFn != nil {
		return m.claimFn(ctx, sessionID, ttl)
	}
	return true, nil
}

func (m *mockWeightStore) ReleaseChoice(ctx context.Context, sessionID string) error {
	m.releaseCalls++
	if m.releaseFn != nil {
		return m.releaseFn(ctx, sessionID)
	}
	return nil
}
