package learning

import (
	"context"
	"time"

	"github.com/kailas-cloud/matchdex/internal/domain/segment"
	"github.com/kailas-cloud/matchdex/internal/domain/weights"
)

// WeightStore is the consumer interface for segment weight persistence.
type WeightStore interface {
	Get(ctx context.Context, seg segment.Segment) (weights.Vector, segment.State, int64, error)
	Save(ctx context.Context, seg segment.Segment, vec weights.Vector, state segment.State, expectedRevision int64) error
	ClaimChoice(ctx context.Context, sessionID string, ttl time.Duration) (bool, error)
	ReleaseChoice(ctx context.Context, sessionID string) error
}
