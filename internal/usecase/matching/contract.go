package matching

import (
	"context"

	"github.com/kailas-cloud/matchdex/internal/domain/complexity"
	"github.com/kailas-cloud/matchdex/internal/domain/manufacturer"
	"github.com/kailas-cloud/matchdex/internal/domain/order"
	"github.com/kailas-cloud/matchdex/internal/domain/segment"
	"github.com/kailas-cloud/matchdex/internal/domain/session"
	"github.com/kailas-cloud/matchdex/internal/domain/weights"
	"github.com/kailas-cloud/matchdex/internal/usecase/scoring"
)

// Analyzer derives order complexity.
type Analyzer interface {
	Analyze(o *order.Order) complexity.Result
}

// Scorer evaluates one candidate against an order.
type Scorer interface {
	Score(o *order.Order, p *manufacturer.Profile, in scoring.Input) session.ScoredCandidate
}

// Ranker sorts and explains scored candidates.
type Ranker interface {
	Rank(candidates []session.ScoredCandidate, cx complexity.Result, w weights.Vector, optionCount int) ([]session.Recommendation, error)
}

// WeightReader is the read side of the personalization store.
type WeightReader interface {
	Get(ctx context.Context, seg segment.Segment) (weights.Vector, segment.State, int64, error)
}
