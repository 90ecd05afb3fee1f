// Package chi exposes the matching engine over HTTP for hosts that
// prefer a service boundary to embedding the engine directly.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/matchdex/internal/domain"
	"github.com/kailas-cloud/matchdex/internal/domain/choice"
	"github.com/kailas-cloud/matchdex/internal/domain/complexity"
	"github.com/kailas-cloud/matchdex/internal/domain/manufacturer"
	"github.com/kailas-cloud/matchdex/internal/domain/order"
	"github.com/kailas-cloud/matchdex/internal/domain/segment"
	"github.com/kailas-cloud/matchdex/internal/domain/session"
	"github.com/kailas-cloud/matchdex/internal/domain/weights"
	healthuc "github.com/kailas-cloud/matchdex/internal/usecase/health"
	learninguc "github.com/kailas-cloud/matchdex/internal/usecase/learning"
)

// errorCode is the machine-readable error class in error responses.
type errorCode string

const (
	codeBadRequest         errorCode = "bad_request"
	codeValidationFailed   errorCode = "validation_failed"
	codeUnauthorized       errorCode = "unauthorized"
	codeSegmentUnknown     errorCode = "segment_unknown"
	codeWeightConflict     errorCode = "weight_conflict"
	codeInternalError      errorCode = "internal_error"
	codeServiceUnavailable errorCode = "service_unavailable"
)

// errorResponse is the uniform error body.
type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

// Matcher runs matching sessions and standalone complexity analysis.
type Matcher interface {
	Match(ctx context.Context, o *order.Order,
		candidates []*manufacturer.Profile, hints segment.Hints) (session.Session, error)
	Analyze(o *order.Order) complexity.Result
}

// ChoiceRecorder ingests customer choice events.
type ChoiceRecorder interface {
	RecordChoice(ctx context.Context, ev choice.Event) (learninguc.Ack, error)
}

// WeightReader reads a segment's stored weight vector and learning state.
type WeightReader interface {
	Get(ctx context.Context, seg segment.Segment) (weights.Vector, segment.State, int64, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server is the HTTP API server.
type Server struct {
	matcher       Matcher
	choices       ChoiceRecorder
	weights       WeightReader
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	matcher Matcher,
	choices ChoiceRecorder,
	weights WeightReader,
	health HealthChecker,
	logger *zap.Logger,
) *Server {
	s := &Server{
		matcher: matcher,
		choices: choices,
		weights: weights,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidOrder, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrNoCandidates, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrSegmentUnknown, http.StatusBadRequest, codeSegmentUnknown),
		sentinelHandler(domain.ErrWeightConflict, http.StatusServiceUnavailable, codeWeightConflict),
	}
	return s
}

// Routes mounts all API routes on a router.
func (s *Server) Routes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/match", s.handleMatch)
		r.Post("/complexity", s.handleComplexity)
		r.Post("/choices", s.handleRecordChoice)
		r.Get("/segments/{segment}/weights", s.handleSegmentWeights)
	})
	r.Get("/health", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)
}

// handleMatch handles POST /api/v1/match.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	o, err := orderFromRequest(req.Order)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	candidates := make([]*manufacturer.Profile, 0, len(req.Candidates))
	for _, c := range req.Candidates {
		p, err := candidateFromRequest(c)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed,
				"candidate "+c.ID+": "+err.Error())
			return
		}
		candidates = append(candidates, &p)
	}

	sess, err := s.matcher.Match(r.Context(), &o, candidates, hintsFromRequest(req.Preferences))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionToResponse(sess))
}

// handleComplexity handles POST /api/v1/complexity.
func (s *Server) handleComplexity(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	o, err := orderFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, complexityToResponse(s.matcher.Analyze(&o)))
}

// handleRecordChoice handles POST /api/v1/choices.
func (s *Server) handleRecordChoice(w http.ResponseWriter, r *http.Request) {
	var req choiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	ev, err := choiceFromRequest(req)
	if err != nil {
		if errors.Is(err, domain.ErrSegmentUnknown) {
			writeError(w, http.StatusBadRequest, codeSegmentUnknown, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	ack, err := s.choices.RecordChoice(r.Context(), ev)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, choiceResponse{
		Outcome: string(ack.Outcome),
		Segment: ack.Segment.String(),
	})
}

// handleSegmentWeights handles GET /api/v1/segments/{segment}/weights.
func (s *Server) handleSegmentWeights(w http.ResponseWriter, r *http.Request) {
	seg, err := segment.Parse(chi.URLParam(r, "segment"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeSegmentUnknown, err.Error())
		return
	}

	vec, state, revision, err := s.weights.Get(r.Context(), seg)
	if err != nil && !errors.Is(err, domain.ErrInvalidWeights) {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, segmentWeightsToResponse(seg, vec, state, revision))
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	writeJSON(w, status, map[string]any{
		"status": string(report.Status),
		"checks": checks,
	})
}

// handleMetrics handles GET /metrics.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client
// without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidOrder,
		domain.ErrNoCandidates,
		domain.ErrSegmentUnknown,
		domain.ErrWeightConflict,
		domain.ErrDuplicateChoice,
		domain.ErrInvalidWeights,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
