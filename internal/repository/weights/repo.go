// Package weights persists per-segment weight vectors and learning state
// in a hash per segment, with optimistic revision checks for concurrent
// updates and a session-claim key for idempotent choice ingestion.
package weights

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/matchdex/internal/domain"
	"github.com/kailas-cloud/matchdex/internal/domain/segment"
	domweights "github.com/kailas-cloud/matchdex/internal/domain/weights"
)

var (
	segmentKeyPrefix = domain.KeyPrefix + "segment:"
	choiceKeyPrefix  = domain.KeyPrefix + "choice:"
)

// saveScript compares the stored revision with the expected one and
// writes all fields atomically on match. Returns 1 on success, the
// current revision plus 2 on mismatch (so 0 never collides with a
// legitimate revision).
const saveScript = `
local rev = redis.call('HGET', KEYS[1], 'revision')
local cur = 0
if rev then cur = tonumber(rev) end
if cur ~= tonumber(ARGV[1]) then
  return cur + 2
end
redis.call('HSET', KEYS[1],
  'weights', ARGV[2],
  'revision', tostring(cur + 1),
  'interactions', ARGV[3],
  'successes', ARGV[4],
  'confidence', ARGV[5],
  'velocity', ARGV[6],
  'updated_at', ARGV[7])
return 1
`

// store is the consumer interface for segment persistence (ISP).
type store interface {
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	Del(ctx context.Context, key string) error
	Eval(ctx context.Context, script string, keys, args []string) (int64, error)
}

// Store implements the personalization weight store on a hash per segment.
type Store struct {
	store store
	now   func() time.Time
}

// New creates a weight store.
func New(s store) *Store {
	return &Store{store: s, now: time.Now}
}

// Get loads a segment's weights, learning state, and revision. A segment
// that has never been written returns a zero vector, zero state, and
// revision 0 with no error; a stored vector that fails validation returns
// domain.ErrInvalidWeights so the caller can fall back to defaults.
func (s *Store) Get(ctx context.Context, seg segment.Segment) (domweights.Vector, segment.State, int64, error) {
	fields, err := s.store.HGetAll(ctx, segmentKeyPrefix+seg.String())
	if err != nil {
		return domweights.Vector{}, segment.State{}, 0, fmt.Errorf("weights HGETALL %s: %w", seg, err)
	}
	if len(fields) == 0 {
		return domweights.Vector{}, segment.State{}, 0, nil
	}

	revision, err := parseInt(fields[fieldRevision])
	if err != nil {
		return domweights.Vector{}, segment.State{}, 0, fmt.Errorf("segment %s revision: %w", seg, err)
	}

	state, err := decodeState(fields)
	if err != nil {
		return domweights.Vector{}, segment.State{}, revision, fmt.Errorf("segment %s state: %w", seg, err)
	}

	// The revision is returned alongside a decode failure so a caller
	// can still overwrite the corrupt vector under the revision check.
	vec, err := decodeWeights(fields[fieldWeights])
	if err != nil {
		return domweights.Vector{}, state, revision, fmt.Errorf("segment %s: %w", seg, err)
	}

	return vec, state, revision, nil
}

// Save writes a segment record if the stored revision still matches
// expectedRevision, bumping the revision by one. A concurrent update
// surfaces as domain.WeightConflictError.
func (s *Store) Save(
	ctx context.Context, seg segment.Segment,
	vec domweights.Vector, state segment.State, expectedRevision int64,
) error {
	encoded, err := encodeWeights(vec)
	if err != nil {
		return fmt.Errorf("segment %s: %w", seg, err)
	}

	res, err := s.store.Eval(ctx, saveScript,
		[]string{segmentKeyPrefix + seg.String()},
		[]string{
			strconv.FormatInt(expectedRevision, 10),
			encoded,
			strconv.FormatInt(state.Interactions(), 10),
			strconv.FormatInt(state.Successes(), 10),
			formatFloat(state.Confidence()),
			formatFloat(state.Velocity()),
			formatTime(s.now()),
		},
	)
	if err != nil {
		return fmt.Errorf("weights save %s: %w", seg, err)
	}
	if res != 1 {
		return domain.NewWeightConflict(seg.String(), res-2)
	}
	return nil
}

// ClaimChoice marks a session's choice as recorded. Returns false when
// the session was already claimed, making choice ingestion idempotent
// under at-least-once delivery.
func (s *Store) ClaimChoice(ctx context.Context, sessionID string, ttl time.Duration) (bool, error) {
	claimed, err := s.store.SetNX(ctx, choiceKeyPrefix+sessionID, []byte("1"), ttl)
	if err != nil {
		return false, fmt.Errorf("choice claim %s: %w", sessionID, err)
	}
	return claimed, nil
}

// ReleaseChoice drops a session's claim so a later redelivery of the
// same event is processed instead of acknowledged as a duplicate. Called
// when a claimed choice could not be applied.
func (s *Store) ReleaseChoice(ctx context.Context, sessionID string) error {
	if err := s.store.Del(ctx, choiceKeyPrefix+sessionID); err != nil {
		return fmt.Errorf("choice release %s: %w", sessionID, err)
	}
	return nil
}
