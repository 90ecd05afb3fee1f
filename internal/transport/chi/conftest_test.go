package chi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/matchdex/internal/domain/choice"
	"github.com/kailas-cloud/matchdex/internal/domain/complexity"
	"github.com/kailas-cloud/matchdex/internal/domain/factor"
	"github.com/kailas-cloud/matchdex/internal/domain/manufacturer"
	"github.com/kailas-cloud/matchdex/internal/domain/order"
	"github.com/kailas-cloud/matchdex/internal/domain/segment"
	"github.com/kailas-cloud/matchdex/internal/domain/session"
	"github.com/kailas-cloud/matchdex/internal/domain/weights"
	healthuc "github.com/kailas-cloud/matchdex/internal/usecase/health"
	learninguc "github.com/kailas-cloud/matchdex/internal/usecase/learning"
)

type mockMatcher struct {
	matchFn   func(ctx context.Context, o *order.Order, candidates []*manufacturer.Profile, hints segment.Hints) (session.Session, error)
	analyzeFn func(o *order.Order) complexity.Result
}

func (m *mockMatcher) Match(
	ctx context.Context, o *order.Order,
	candidates []*manufacturer.Profile, hints segment.Hints,
) (session.Session, error) {
	if m.matchFn != nil {
		return m.matchFn(ctx, o, candidates, hints)
	}
	return session.Session{}, nil
}

func (m *mockMatcher) Analyze(o *order.Order) complexity.Result {
	if m.analyzeFn != nil {
		return m.analyzeFn(o)
	}
	return complexity.Result{}
}

type mockChoiceRecorder struct {
	recordFn func(ctx context.Context, ev choice.Event) (learninguc.Ack, error)
}

func (m *mockChoiceRecorder) RecordChoice(ctx context.Context, ev choice.Event) (learninguc.Ack, error) {
	if m.recordFn != nil {
		return m.recordFn(ctx, ev)
	}
	return learninguc.Ack{Outcome: learninguc.OutcomeApplied, Segment: ev.Segment()}, nil
}

type mockWeightReader struct {
	getFn func(ctx context.Context, seg segment.Segment) (weights.Vector, segment.State, int64, error)
}

func (m *mockWeightReader) Get(
	ctx context.Context, seg segment.Segment,
) (weights.Vector, segment.State, int64, error) {
	if m.getFn != nil {
		return m.getFn(ctx, seg)
	}
	return weights.Vector{}, segment.State{}, 0, nil
}

type mockHealthChecker struct {
	checkFn func(ctx context.Context) healthuc.Report
}

func (m *mockHealthChecker) Check(ctx context.Context) healthuc.Report {
	if m.checkFn != nil {
		return m.checkFn(ctx)
	}
	return healthuc.Report{
		Status: healthuc.Healthy,
		Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckOK},
	}
}

func newTestServer(
	matcher *mockMatcher,
	choices *mockChoiceRecorder,
	reader *mockWeightReader,
	checker *mockHealthChecker,
) *httptest.Server {
	if matcher == nil {
		matcher = &mockMatcher{}
	}
	if choices == nil {
		choices = &mockChoiceRecorder{}
	}
	if reader == nil {
		reader = &mockWeightReader{}
	}
	if checker == nil {
		checker = &mockHealthChecker{}
	}

	srv := NewServer(matcher, choices, reader, checker, zap.NewNop())
	r := chi.NewRouter()
	srv.Routes(r)
	return httptest.NewServer(r)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func testSession(recs int) session.Session {
	cx := complexity.NewResult(5.0, map[complexity.Dimension]float64{
		complexity.DimProcess: 0.5,
	}, 1.0, nil)

	list := make([]session.Recommendation, 0, recs)
	for i := 0; i < recs; i++ {
		c := session.NewScoredCandidate(
			"mfg-1",
			map[factor.Factor]float64{factor.Capability: 1.0},
			0.9, 0.8, nil, false,
		)
		list = append(list, session.Recommendation{
			Candidate: c,
			Rank:      i + 1,
			Explanation: session.Explanation{
				Summary: session.Summary{Label: "excellent match", ConfidencePct: 80},
			},
		})
	}

	return session.New(
		"sess-1", "ord-1", segment.Balanced, cx, 3, list,
		time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	)
}
