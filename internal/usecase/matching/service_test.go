package matching

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/matchdex/internal/domain"
	"github.com/kailas-cloud/matchdex/internal/domain/complexity"
	"github.com/kailas-cloud/matchdex/internal/domain/factor"
	"github.com/kailas-cloud/matchdex/internal/domain/manufacturer"
	"github.com/kailas-cloud/matchdex/internal/domain/order"
	"github.com/kailas-cloud/matchdex/internal/domain/segment"
	"github.com/kailas-cloud/matchdex/internal/domain/weights"
	cxusecase "github.com/kailas-cloud/matchdex/internal/usecase/complexity"
	"github.com/kailas-cloud/matchdex/internal/usecase/ranking"
	"github.com/kailas-cloud/matchdex/internal/usecase/scoring"
	"github.com/kailas-cloud/matchdex/internal/usecase/similarity"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// mockWeightReader implements WeightReader for tests.
type mockWeightReader struct {
	getFn func(ctx context.Context, seg segment.Segment) (weights.Vector, segment.State, int64, error)
}

func (m *mockWeightReader) Get(ctx context.Context, seg segment.Segment) (weights.Vector, segment.State, int64, error) {
	if m.getFn != nil {
		return m.getFn(ctx, seg)
	}
	return weights.Vector{}, segment.State{}, 0, nil
}

func newTestEngine(store WeightReader) *Service {
	log := zap.NewNop()
	clock := func() time.Time { return testNow }
	ids := 0
	newID := func() string {
		ids++
		return fmt.Sprintf("sess-%d", ids)
	}
	return New(
		cxusecase.NewWithClock(clock),
		scoring.NewWithClock(similarity.New(log), clock),
		ranking.New(0),
		store,
		Config{},
		log,
	).WithClock(clock, newID)
}

func e2eOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.New(
		"ord-e2e", "CNC Machining", "Aluminum 6061",
		100, 10000, testNow.AddDate(0, 0, 10), 0.02,
		[]string{"AS9100", "ISO 9001"},
		"deburred edges, laser-etched part numbers, bagged individually",
		"DE",
	)
	if err != nil {
		t.Fatalf("failed to build order: %v", err)
	}
	return &o
}

func mustProfile(t *testing.T, p manufacturer.Profile, err error) *manufacturer.Profile {
	t.Helper()
	if err != nil {
		t.Fatalf("failed to build profile: %v", err)
	}
	return &p
}

func e2eCandidates(t *testing.T) []*manufacturer.Profile {
	t.Helper()
	exactP, exactErr := manufacturer.New(
		"mfg-a", "Exact Works",
		[]string{"CNC Machining"}, []string{"Aluminum 6061"},
		[]string{"AS9100", "ISO 9001"},
		"DE", 1, 0, 0.98, 0.01, 200, 5.0, 0.8, 7, 0.1,
	)
	exact := mustProfile(t, exactP, exactErr)
	nearP, nearErr := manufacturer.New(
		"mfg-b", "Near Synonym GmbH",
		[]string{"Precision Machining"}, []string{"Aluminum 6061"},
		[]string{"ISO 9001"},
		"DE", 1, 0, 0.90, 0.05, 100, 3.5, 1.0, 12, 0.3,
	)
	near := mustProfile(t, nearP, nearErr)
	unrelatedP, unrelatedErr := manufacturer.New(
		"mfg-c", "Carvings & Co",
		[]string{"Wood Carving"}, []string{"Oak"},
		nil,
		"DE", 1, 0, 0.95, 0.02, 150, 4.0, 0.9, 5, 0.2,
	)
	unrelated := mustProfile(t, unrelatedP, unrelatedErr)
	return []*manufacturer.Profile{unrelated, exact, near}
}

func TestMatch_EndToEndScenario(t *testing.T) {
	s := newTestEngine(&mockWeightReader{})

	sess, err := s.Match(context.Background(), e2eOrder(t), e2eCandidates(t), segment.Hints{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sess.Complexity().Level() != complexity.High {
		t.Errorf("expected high complexity, got %s (score %.2f)",
			sess.Complexity().Level(), sess.Complexity().Score())
	}
	if sess.Segment() != segment.Balanced {
		t.Errorf("expected balanced segment without hints, got %s", sess.Segment())
	}

	recs := sess.Recommendations()
	if len(recs) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(recs))
	}

	ids := []string{"mfg-a", "mfg-b", "mfg-c"}
	for i, rec := range recs {
		if rec.Candidate.ManufacturerID() != ids[i] {
			t.Errorf("rank %d: got %s, want %s", i+1, rec.Candidate.ManufacturerID(), ids[i])
		}
	}

	if got := recs[0].Candidate.Overall(); got < 0.85 {
		t.Errorf("exact-match candidate overall = %f, want >= 0.85", got)
	}
	if got := recs[2].Candidate.Factor(factor.Capability); got != 0.0 {
		t.Errorf("unrelated candidate capability = %f, want exactly 0.0", got)
	}
}

func TestMatch_Deterministic(t *testing.T) {
	s := newTestEngine(&mockWeightReader{})

	first, err := s.Match(context.Background(), e2eOrder(t), e2eCandidates(t), segment.Hints{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for run := 0; run < 5; run++ {
		again, err := s.Match(context.Background(), e2eOrder(t), e2eCandidates(t), segment.Hints{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		fr, ar := first.Recommendations(), again.Recommendations()
		if len(fr) != len(ar) {
			t.Fatalf("run %d: recommendation count differs", run)
		}
		for i := range fr {
			if fr[i].Candidate.ManufacturerID() != ar[i].Candidate.ManufacturerID() {
				t.Fatalf("run %d: ordering differs at rank %d", run, i+1)
			}
			if fr[i].Candidate.Overall() != ar[i].Candidate.Overall() {
				t.Fatalf("run %d: score differs at rank %d", run, i+1)
			}
		}
	}
}

func TestMatch_ColdStartUsesDefaultWeights(t *testing.T) {
	// Brand-new segment: nothing stored yet.
	fresh := &mockWeightReader{}

	// Segment with a learned vector but no validated sample base.
	skewed, err := weights.New(map[factor.Factor]float64{
		factor.Capability:     0.05,
		factor.Performance:    0.05,
		factor.Proximity:      0.05,
		factor.Quality:        0.50,
		factor.Cost:           0.05,
		factor.Availability:   0.10,
		factor.Specialization: 0.10,
		factor.History:        0.10,
	})
	if err != nil {
		t.Fatal(err)
	}
	unproven := &mockWeightReader{
		getFn: func(_ context.Context, _ segment.Segment) (weights.Vector, segment.State, int64, error) {
			state, err := segment.NewState(5, 4, 0.9, 0.1) // too few samples
			if err != nil {
				return weights.Vector{}, segment.State{}, 0, err
			}
			return skewed, state, 1, nil
		},
	}

	var overall [2]float64
	for i, store := range []WeightReader{fresh, unproven} {
		s := newTestEngine(store)
		sess, err := s.Match(context.Background(), e2eOrder(t), e2eCandidates(t), segment.Hints{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		recs := sess.Recommendations()
		if len(recs) == 0 {
			t.Fatal("expected recommendations")
		}
		overall[i] = recs[0].Candidate.Overall()
	}

	if overall[0] != overall[1] {
		t.Errorf("unvalidated learned weights leaked into scoring: %f != %f", overall[0], overall[1])
	}
}

func TestMatch_PersonalizedWeightsApplyPastThresholds(t *testing.T) {
	state, err := segment.NewState(50, 40, 0.9, 0.05)
	if err != nil {
		t.Fatal(err)
	}
	proven := &mockWeightReader{
		getFn: func(_ context.Context, _ segment.Segment) (weights.Vector, segment.State, int64, error) {
			return weights.Default(), state, 3, nil
		},
	}

	base := newTestEngine(&mockWeightReader{})
	personalized := newTestEngine(proven)

	o := e2eOrder(t)
	hints := segment.Hints{QualityFocused: true}

	baseSess, err := base.Match(context.Background(), o, e2eCandidates(t), hints)
	if err != nil {
		t.Fatal(err)
	}
	persSess, err := personalized.Match(context.Background(), o, e2eCandidates(t), hints)
	if err != nil {
		t.Fatal(err)
	}

	if baseSess.Segment() != segment.QualityFocused {
		t.Errorf("expected quality_focused segment, got %s", baseSess.Segment())
	}

	baseTop := baseSess.Recommendations()[0].Candidate.Overall()
	persTop := persSess.Recommendations()[0].Candidate.Overall()
	if baseTop == persTop {
		t.Error("expected the personalized combination to change the top score")
	}
}

func TestMatch_WeightStoreFailureDegradesToDefaults(t *testing.T) {
	broken := &mockWeightReader{
		getFn: func(_ context.Context, _ segment.Segment) (weights.Vector, segment.State, int64, error) {
			return weights.Vector{}, segment.State{}, 0, errors.New("store unavailable")
		},
	}

	s := newTestEngine(broken)
	sess, err := s.Match(context.Background(), e2eOrder(t), e2eCandidates(t), segment.Hints{})
	if err != nil {
		t.Fatalf("weight store failure must not fail the request: %v", err)
	}
	if len(sess.Recommendations()) == 0 {
		t.Error("expected recommendations under default weights")
	}
}

func TestMatch_NoStrongMatch(t *testing.T) {
	poor := func(id string) *manufacturer.Profile {
		p, err := manufacturer.New(
			id, id,
			[]string{"Glass Blowing"}, []string{"Glass"}, nil,
			"CN", 1, 0, 0.0, 1.0, 0, 0.0, 1.5, 60, 1.0,
		)
		return mustProfile(t, p, err)
	}

	s := newTestEngine(&mockWeightReader{})
	sess, err := s.Match(context.Background(), e2eOrder(t),
		[]*manufacturer.Profile{poor("mfg-x"), poor("mfg-y")}, segment.Hints{})
	if err != nil {
		t.Fatalf("no strong match is a valid outcome, not an error: %v", err)
	}
	if len(sess.Recommendations()) != 0 {
		t.Errorf("expected zero recommendations, got %d", len(sess.Recommendations()))
	}
	if sess.ID() == "" {
		t.Error("expected a session to be created for audit")
	}
}

func TestMatch_NoCandidates(t *testing.T) {
	s := newTestEngine(&mockWeightReader{})

	_, err := s.Match(context.Background(), e2eOrder(t), nil, segment.Hints{})
	if !errors.Is(err, domain.ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates, got %v", err)
	}
}

func TestMatch_NilCandidateIsolated(t *testing.T) {
	s := newTestEngine(&mockWeightReader{})

	cands := e2eCandidates(t)
	cands = append(cands, nil)

	sess, err := s.Match(context.Background(), e2eOrder(t), cands, segment.Hints{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sess.Recommendations()) != 3 {
		t.Errorf("expected 3 recommendations, got %d", len(sess.Recommendations()))
	}
}

func TestMatch_OptionCountInBounds(t *testing.T) {
	s := newTestEngine(&mockWeightReader{})

	sess, err := s.Match(context.Background(), e2eOrder(t), e2eCandidates(t), segment.Hints{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.OptionCount() < ranking.MinOptions || sess.OptionCount() > ranking.MaxOptions {
		t.Errorf("option count %d out of [2,5]", sess.OptionCount())
	}
}
