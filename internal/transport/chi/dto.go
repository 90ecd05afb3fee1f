package chi

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/matchdex/internal/domain/choice"
	"github.com/kailas-cloud/matchdex/internal/domain/complexity"
	"github.com/kailas-cloud/matchdex/internal/domain/factor"
	"github.com/kailas-cloud/matchdex/internal/domain/manufacturer"
	"github.com/kailas-cloud/matchdex/internal/domain/order"
	"github.com/kailas-cloud/matchdex/internal/domain/segment"
	"github.com/kailas-cloud/matchdex/internal/domain/session"
	"github.com/kailas-cloud/matchdex/internal/domain/weights"
)

// orderRequest is the wire form of an order to match.
type orderRequest struct {
	ID             string   `json:"id"`
	Technology     string   `json:"technology"`
	Material       string   `json:"material,omitempty"`
	Quantity       int      `json:"quantity,omitempty"`
	Budget         float64  `json:"budget,omitempty"`
	Deadline       string   `json:"deadline,omitempty"`
	ToleranceMM    float64  `json:"tolerance_mm,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	CustomSpecs    string   `json:"custom_specifications,omitempty"`
	Country        string   `json:"country,omitempty"`
}

func orderFromRequest(req orderRequest) (order.Order, error) {
	var deadline time.Time
	if req.Deadline != "" {
		t, err := time.Parse(time.RFC3339, req.Deadline)
		if err != nil {
			return order.Order{}, fmt.Errorf("deadline: %w", err)
		}
		deadline = t
	}
	return order.New(
		req.ID, req.Technology, req.Material,
		req.Quantity, req.Budget, deadline, req.ToleranceMM,
		req.Certifications, req.CustomSpecs, req.Country,
	)
}

// candidateRequest is the wire form of a manufacturer profile.
type candidateRequest struct {
	ID              string   `json:"id"`
	Name            string   `json:"name,omitempty"`
	Capabilities    []string `json:"capabilities,omitempty"`
	Materials       []string `json:"materials,omitempty"`
	Certifications  []string `json:"certifications,omitempty"`
	Country         string   `json:"country,omitempty"`
	MinQuantity     int      `json:"min_quantity,omitempty"`
	MaxQuantity     int      `json:"max_quantity,omitempty"`
	OnTimeRate      float64  `json:"on_time_rate"`
	DefectRate      float64  `json:"defect_rate"`
	CompletedOrders int      `json:"completed_orders"`
	QualityRating   float64  `json:"quality_rating"`
	CostIndex       float64  `json:"cost_index"`
	LeadTimeDays    int      `json:"lead_time_days"`
	CapacityLoad    float64  `json:"capacity_load"`
}

func candidateFromRequest(req candidateRequest) (manufacturer.Profile, error) {
	return manufacturer.New(
		req.ID, req.Name,
		req.Capabilities, req.Materials, req.Certifications,
		req.Country, req.MinQuantity, req.MaxQuantity,
		req.OnTimeRate, req.DefectRate, req.CompletedOrders,
		req.QualityRating, req.CostIndex, req.LeadTimeDays, req.CapacityLoad,
	)
}

// preferencesRequest carries the optional customer preference hints.
type preferencesRequest struct {
	PriceSensitive bool `json:"price_sensitive,omitempty"`
	QualityFocused bool `json:"quality_focused,omitempty"`
	PrefersLocal   bool `json:"prefers_local,omitempty"`
	SpeedPriority  bool `json:"speed_priority,omitempty"`
}

func hintsFromRequest(req preferencesRequest) segment.Hints {
	return segment.Hints{
		PriceSensitive: req.PriceSensitive,
		QualityFocused: req.QualityFocused,
		PrefersLocal:   req.PrefersLocal,
		SpeedPriority:  req.SpeedPriority,
	}
}

// matchRequest is the POST /match body.
type matchRequest struct {
	Order       orderRequest       `json:"order"`
	Candidates  []candidateRequest `json:"candidates"`
	Preferences preferencesRequest `json:"preferences"`
}

// complexityResponse is the wire form of a complexity analysis.
type complexityResponse struct {
	Score      float64            `json:"score"`
	Level      string             `json:"level"`
	Confidence float64            `json:"confidence"`
	Breakdown  map[string]float64 `json:"breakdown"`
	Defaulted  []string           `json:"defaulted_dimensions,omitempty"`
}

func complexityToResponse(r complexity.Result) complexityResponse {
	breakdown := make(map[string]float64, len(r.Breakdown()))
	for dim, v := range r.Breakdown() {
		breakdown[string(dim)] = v
	}
	var defaulted []string
	for _, dim := range r.Defaulted() {
		defaulted = append(defaulted, string(dim))
	}
	return complexityResponse{
		Score:      r.Score(),
		Level:      string(r.Level()),
		Confidence: r.Confidence(),
		Breakdown:  breakdown,
		Defaulted:  defaulted,
	}
}

// termMatchResponse is one capability requirement resolution.
type termMatchResponse struct {
	Requirement string  `json:"requirement"`
	BestMatch   string  `json:"best_match,omitempty"`
	Score       float64 `json:"score"`
}

// summaryResponse is the glance-level explanation tier.
type summaryResponse struct {
	Label         string   `json:"label"`
	TopFactors    []string `json:"top_factors"`
	ConfidencePct int      `json:"confidence_pct"`
	Strength      string   `json:"strength,omitempty"`
	Concern       string   `json:"concern,omitempty"`
}

// detailedResponse is the factor-breakdown explanation tier.
type detailedResponse struct {
	Breakdown     map[string]float64 `json:"breakdown"`
	Alignment     string             `json:"alignment"`
	Risks         []string           `json:"risks,omitempty"`
	Opportunities []string           `json:"opportunities,omitempty"`
}

// expertResponse is the raw-inputs explanation tier.
type expertResponse struct {
	WeightsUsed  map[string]float64  `json:"weights_used"`
	TermMatches  []termMatchResponse `json:"term_matches,omitempty"`
	IntervalLow  float64             `json:"interval_low"`
	IntervalHigh float64             `json:"interval_high"`
}

type explanationResponse struct {
	Summary  summaryResponse   `json:"summary"`
	Detailed *detailedResponse `json:"detailed,omitempty"`
	Expert   *expertResponse   `json:"expert,omitempty"`
}

// recommendationResponse is one ranked entry in the match response.
type recommendationResponse struct {
	ManufacturerID string              `json:"manufacturer_id"`
	Rank           int                 `json:"rank"`
	Score          float64             `json:"score"`
	Confidence     float64             `json:"confidence"`
	Flagged        bool                `json:"flagged,omitempty"`
	Factors        map[string]float64  `json:"factors"`
	Explanation    explanationResponse `json:"explanation"`
}

// matchResponse is the POST /match response body.
type matchResponse struct {
	SessionID       string                   `json:"session_id"`
	OrderID         string                   `json:"order_id"`
	Segment         string                   `json:"segment"`
	Complexity      complexityResponse       `json:"complexity"`
	OptionCount     int                      `json:"option_count"`
	NoStrongMatch   bool                     `json:"no_strong_match,omitempty"`
	Recommendations []recommendationResponse `json:"recommendations"`
	CreatedAt       time.Time                `json:"created_at"`
}

func sessionToResponse(s session.Session) matchResponse {
	recs := make([]recommendationResponse, 0, len(s.Recommendations()))
	for _, rec := range s.Recommendations() {
		recs = append(recs, recommendationToResponse(rec))
	}
	return matchResponse{
		SessionID:       s.ID(),
		OrderID:         s.OrderID(),
		Segment:         s.Segment().String(),
		Complexity:      complexityToResponse(s.Complexity()),
		OptionCount:     s.OptionCount(),
		NoStrongMatch:   len(recs) == 0,
		Recommendations: recs,
		CreatedAt:       s.CreatedAt(),
	}
}

func recommendationToResponse(rec session.Recommendation) recommendationResponse {
	c := rec.Candidate
	return recommendationResponse{
		ManufacturerID: c.ManufacturerID(),
		Rank:           rec.Rank,
		Score:          c.Overall(),
		Confidence:     c.Confidence(),
		Flagged:        c.Flagged(),
		Factors:        factorMapToResponse(c.Factors()),
		Explanation:    explanationToResponse(rec.Explanation),
	}
}

func explanationToResponse(e session.Explanation) explanationResponse {
	top := make([]string, 0, len(e.Summary.TopFactors))
	for _, f := range e.Summary.TopFactors {
		top = append(top, string(f))
	}
	resp := explanationResponse{
		Summary: summaryResponse{
			Label:         e.Summary.Label,
			TopFactors:    top,
			ConfidencePct: e.Summary.ConfidencePct,
			Strength:      e.Summary.Strength,
			Concern:       e.Summary.Concern,
		},
	}
	if e.Detailed != nil {
		resp.Detailed = &detailedResponse{
			Breakdown:     factorMapToResponse(e.Detailed.Breakdown),
			Alignment:     e.Detailed.Alignment,
			Risks:         e.Detailed.Risks,
			Opportunities: e.Detailed.Opportunities,
		}
	}
	if e.Expert != nil {
		matches := make([]termMatchResponse, 0, len(e.Expert.TermMatches))
		for _, m := range e.Expert.TermMatches {
			matches = append(matches, termMatchResponse{
				Requirement: m.Requirement,
				BestMatch:   m.BestMatch,
				Score:       m.Score,
			})
		}
		resp.Expert = &expertResponse{
			WeightsUsed:  factorMapToResponse(e.Expert.WeightsUsed),
			TermMatches:  matches,
			IntervalLow:  e.Expert.IntervalLow,
			IntervalHigh: e.Expert.IntervalHigh,
		}
	}
	return resp
}

func factorMapToResponse(m map[factor.Factor]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for f, v := range m {
		out[string(f)] = v
	}
	return out
}

// choiceRequest is the POST /choices body.
type choiceRequest struct {
	SessionID        string   `json:"session_id"`
	Segment          string   `json:"segment"`
	ChosenID         string   `json:"chosen_manufacturer_id"`
	ChosenRank       int      `json:"chosen_rank"`
	PresentedCount   int      `json:"presented_count"`
	ImportantFactors []string `json:"important_factors,omitempty"`
	Satisfaction     string   `json:"satisfaction,omitempty"`
}

func choiceFromRequest(req choiceRequest) (choice.Event, error) {
	seg, err := segment.Parse(req.Segment)
	if err != nil {
		return choice.Event{}, err
	}
	return choice.New(
		req.SessionID, seg, req.ChosenID,
		req.ChosenRank, req.PresentedCount,
		req.ImportantFactors, choice.Satisfaction(req.Satisfaction),
	)
}

// choiceResponse acknowledges a recorded choice.
type choiceResponse struct {
	Outcome string `json:"outcome"`
	Segment string `json:"segment"`
}

// segmentWeightsResponse is the GET /segments/{segment}/weights body.
type segmentWeightsResponse struct {
	Segment      string             `json:"segment"`
	Weights      map[string]float64 `json:"weights"`
	Learned      bool               `json:"learned"`
	Revision     int64              `json:"revision"`
	Interactions int64              `json:"interactions"`
	Successes    int64              `json:"successes"`
	Confidence   float64            `json:"confidence"`
	Velocity     float64            `json:"velocity"`
}

func segmentWeightsToResponse(
	seg segment.Segment, vec weights.Vector, state segment.State, revision int64,
) segmentWeightsResponse {
	learned := !vec.IsZero()
	if !learned {
		vec = weights.Default()
	}
	return segmentWeightsResponse{
		Segment:      seg.String(),
		Weights:      factorMapToResponse(vec.AsMap()),
		Learned:      learned,
		Revision:     revision,
		Interactions: state.Interactions(),
		Successes:    state.Successes(),
		Confidence:   state.Confidence(),
		Velocity:     state.Velocity(),
	}
}
