package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/kailas-cloud/matchdex/internal/domain"
	"github.com/kailas-cloud/matchdex/internal/domain/choice"
	"github.com/kailas-cloud/matchdex/internal/domain/complexity"
	"github.com/kailas-cloud/matchdex/internal/domain/manufacturer"
	"github.com/kailas-cloud/matchdex/internal/domain/order"
	"github.com/kailas-cloud/matchdex/internal/domain/segment"
	"github.com/kailas-cloud/matchdex/internal/domain/session"
	healthuc "github.com/kailas-cloud/matchdex/internal/usecase/health"
	learninguc "github.com/kailas-cloud/matchdex/internal/usecase/learning"
)

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	return out
}

func validMatchBody() matchRequest {
	return matchRequest{
		Order: orderRequest{
			ID:         "ord-1",
			Technology: "CNC Machining",
			Material:   "Aluminum 6061",
			Quantity:   100,
		},
		Candidates: []candidateRequest{{
			ID:            "mfg-1",
			Capabilities:  []string{"CNC Machining"},
			OnTimeRate:    0.95,
			QualityRating: 4.5,
			CostIndex:     1.0,
		}},
	}
}

func TestHandleMatch_OK(t *testing.T) {
	matcher := &mockMatcher{
		matchFn: func(_ context.Context, o *order.Order,
			candidates []*manufacturer.Profile, _ segment.Hints) (session.Session, error) {
			if o.ID() != "ord-1" {
				t.Errorf("order ID = %s", o.ID())
			}
			if len(candidates) != 1 {
				t.Errorf("candidate count = %d", len(candidates))
			}
			return testSession(2), nil
		},
	}
	ts := newTestServer(matcher, nil, nil, nil)
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/api/v1/match", validMatchBody())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	body := decodeBody[matchResponse](t, resp)
	if body.SessionID != "sess-1" {
		t.Errorf("session_id = %s", body.SessionID)
	}
	if body.NoStrongMatch {
		t.Error("no_strong_match should be false with recommendations present")
	}
	if len(body.Recommendations) != 2 {
		t.Errorf("recommendations = %d", len(body.Recommendations))
	}
	if body.Recommendations[0].Rank != 1 {
		t.Errorf("rank = %d", body.Recommendations[0].Rank)
	}
}

func TestHandleMatch_NoStrongMatch(t *testing.T) {
	matcher := &mockMatcher{
		matchFn: func(_ context.Context, _ *order.Order,
			_ []*manufacturer.Profile, _ segment.Hints) (session.Session, error) {
			return testSession(0), nil
		},
	}
	ts := newTestServer(matcher, nil, nil, nil)
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/api/v1/match", validMatchBody())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	body := decodeBody[matchResponse](t, resp)
	if !body.NoStrongMatch {
		t.Error("expected no_strong_match flag")
	}
	if len(body.Recommendations) != 0 {
		t.Errorf("recommendations = %d", len(body.Recommendations))
	}
}

func TestHandleMatch_InvalidBody(t *testing.T) {
	ts := newTestServer(nil, nil, nil, nil)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/v1/match", "application/json",
		bytes.NewReader([]byte("{not json")))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decodeBody[errorResponse](t, resp)
	if body.Code != codeBadRequest {
		t.Errorf("code = %s", body.Code)
	}
}

func TestHandleMatch_InvalidOrder(t *testing.T) {
	ts := newTestServer(nil, nil, nil, nil)
	defer ts.Close()

	req := validMatchBody()
	req.Order.ID = ""
	resp := postJSON(t, ts.URL+"/api/v1/match", req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decodeBody[errorResponse](t, resp)
	if body.Code != codeValidationFailed {
		t.Errorf("code = %s", body.Code)
	}
}

func TestHandleMatch_NoCandidates(t *testing.T) {
	matcher := &mockMatcher{
		matchFn: func(_ context.Context, _ *order.Order,
			_ []*manufacturer.Profile, _ segment.Hints) (session.Session, error) {
			return session.Session{}, domain.ErrNoCandidates
		},
	}
	ts := newTestServer(matcher, nil, nil, nil)
	defer ts.Close()

	req := validMatchBody()
	req.Candidates = nil
	resp := postJSON(t, ts.URL+"/api/v1/match", req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestHandleComplexity_OK(t *testing.T) {
	matcher := &mockMatcher{
		analyzeFn: func(_ *order.Order) complexity.Result {
			return testSession(0).Complexity()
		},
	}
	ts := newTestServer(matcher, nil, nil, nil)
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/api/v1/complexity", validMatchBody().Order)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	body := decodeBody[complexityResponse](t, resp)
	if body.Level != "moderate" {
		t.Errorf("level = %s", body.Level)
	}
	if body.Score != 5.0 {
		t.Errorf("score = %f", body.Score)
	}
}

func validChoiceBody() choiceRequest {
	return choiceRequest{
		SessionID:      "sess-1",
		Segment:        "balanced",
		ChosenID:       "mfg-1",
		ChosenRank:     1,
		PresentedCount: 3,
		Satisfaction:   "satisfied",
	}
}

func TestHandleRecordChoice_Applied(t *testing.T) {
	recorder := &mockChoiceRecorder{
		recordFn: func(_ context.Context, ev choice.Event) (learninguc.Ack, error) {
			if ev.SessionID() != "sess-1" {
				t.Errorf("session ID = %s", ev.SessionID())
			}
			return learninguc.Ack{Outcome: learninguc.OutcomeApplied, Segment: ev.Segment()}, nil
		},
	}
	ts := newTestServer(nil, recorder, nil, nil)
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/api/v1/choices", validChoiceBody())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	body := decodeBody[choiceResponse](t, resp)
	if body.Outcome != "applied" {
		t.Errorf("outcome = %s", body.Outcome)
	}
	if body.Segment != "balanced" {
		t.Errorf("segment = %s", body.Segment)
	}
}

func TestHandleRecordChoice_Duplicate(t *testing.T) {
	recorder := &mockChoiceRecorder{
		recordFn: func(_ context.Context, ev choice.Event) (learninguc.Ack, error) {
			return learninguc.Ack{Outcome: learninguc.OutcomeDuplicate, Segment: ev.Segment()}, nil
		},
	}
	ts := newTestServer(nil, recorder, nil, nil)
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/api/v1/choices", validChoiceBody())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("duplicate must acknowledge, got status %d", resp.StatusCode)
	}

	body := decodeBody[choiceResponse](t, resp)
	if body.Outcome != "duplicate" {
		t.Errorf("outcome = %s", body.Outcome)
	}
}

func TestHandleRecordChoice_UnknownSegment(t *testing.T) {
	ts := newTestServer(nil, nil, nil, nil)
	defer ts.Close()

	req := validChoiceBody()
	req.Segment = "big_spender"
	resp := postJSON(t, ts.URL+"/api/v1/choices", req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decodeBody[errorResponse](t, resp)
	if body.Code != codeSegmentUnknown {
		t.Errorf("code = %s", body.Code)
	}
}

func TestHandleRecordChoice_WeightConflict(t *testing.T) {
	recorder := &mockChoiceRecorder{
		recordFn: func(_ context.Context, _ choice.Event) (learninguc.Ack, error) {
			return learninguc.Ack{}, domain.NewWeightConflict("balanced", 7)
		},
	}
	ts := newTestServer(nil, recorder, nil, nil)
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/api/v1/choices", validChoiceBody())
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decodeBody[errorResponse](t, resp)
	if body.Code != codeWeightConflict {
		t.Errorf("code = %s", body.Code)
	}
}

func TestHandleSegmentWeights_Defaults(t *testing.T) {
	ts := newTestServer(nil, nil, nil, nil)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/segments/quality_focused/weights")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	body := decodeBody[segmentWeightsResponse](t, resp)
	if body.Learned {
		t.Error("expected learned=false for an unwritten segment")
	}
	if body.Weights["capability"] != 0.25 {
		t.Errorf("capability weight = %f", body.Weights["capability"])
	}
	if body.Revision != 0 {
		t.Errorf("revision = %d", body.Revision)
	}
}

func TestHandleSegmentWeights_Unknown(t *testing.T) {
	ts := newTestServer(nil, nil, nil, nil)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/segments/nope/weights")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestHandleHealth(t *testing.T) {
	tests := []struct {
		name       string
		report     healthuc.Report
		wantStatus int
	}{
		{
			name: "healthy",
			report: healthuc.Report{
				Status: healthuc.Healthy,
				Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckOK},
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "unhealthy",
			report: healthuc.Report{
				Status: healthuc.Unhealthy,
				Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckError},
			},
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := &mockHealthChecker{
				checkFn: func(_ context.Context) healthuc.Report { return tt.report },
			}
			ts := newTestServer(nil, nil, nil, checker)
			defer ts.Close()

			resp, err := http.Get(ts.URL + "/health")
			if err != nil {
				t.Fatal(err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}
