package matchdex

import (
	"github.com/kailas-cloud/matchdex/internal/domain/choice"
	"github.com/kailas-cloud/matchdex/internal/domain/complexity"
	"github.com/kailas-cloud/matchdex/internal/domain/factor"
	"github.com/kailas-cloud/matchdex/internal/domain/manufacturer"
	"github.com/kailas-cloud/matchdex/internal/domain/order"
	"github.com/kailas-cloud/matchdex/internal/domain/segment"
	"github.com/kailas-cloud/matchdex/internal/domain/session"
	"github.com/kailas-cloud/matchdex/internal/domain/weights"
)

func toDomainOrder(o Order) (order.Order, error) {
	return order.New(
		o.ID, o.Technology, o.Material,
		o.Quantity, o.Budget, o.Deadline, o.ToleranceMM,
		o.Certifications, o.CustomSpecifications, o.Country,
	)
}

func toDomainProfile(m Manufacturer) (manufacturer.Profile, error) {
	return manufacturer.New(
		m.ID, m.Name,
		m.Capabilities, m.Materials, m.Certifications,
		m.Country, m.MinQuantity, m.MaxQuantity,
		m.OnTimeRate, m.DefectRate, m.CompletedOrders,
		m.QualityRating, m.CostIndex, m.LeadTimeDays, m.CapacityLoad,
	)
}

func toDomainHints(p Preferences) segment.Hints {
	return segment.Hints{
		PriceSensitive: p.PriceSensitive,
		QualityFocused: p.QualityFocused,
		PrefersLocal:   p.PrefersLocal,
		SpeedPriority:  p.SpeedPriority,
	}
}

func toDomainChoice(c Choice) (choice.Event, error) {
	seg, err := segment.Parse(c.Segment)
	if err != nil {
		return choice.Event{}, err
	}
	return choice.New(
		c.SessionID, seg, c.ChosenManufacturerID,
		c.ChosenRank, c.PresentedCount,
		c.ImportantFactors, choice.Satisfaction(c.Satisfaction),
	)
}

func fromDomainComplexity(r complexity.Result) Complexity {
	breakdown := make(map[string]float64, len(r.Breakdown()))
	for dim, v := range r.Breakdown() {
		breakdown[string(dim)] = v
	}
	var defaulted []string
	for _, dim := range r.Defaulted() {
		defaulted = append(defaulted, string(dim))
	}
	return Complexity{
		Score:      r.Score(),
		Level:      string(r.Level()),
		Confidence: r.Confidence(),
		Breakdown:  breakdown,
		Defaulted:  defaulted,
	}
}

func fromDomainSession(s session.Session) MatchResult {
	recs := make([]Recommendation, 0, len(s.Recommendations()))
	for _, rec := range s.Recommendations() {
		recs = append(recs, fromDomainRecommendation(rec))
	}
	return MatchResult{
		SessionID:       s.ID(),
		OrderID:         s.OrderID(),
		Segment:         s.Segment().String(),
		Complexity:      fromDomainComplexity(s.Complexity()),
		OptionCount:     s.OptionCount(),
		NoStrongMatch:   len(recs) == 0,
		Recommendations: recs,
		CreatedAt:       s.CreatedAt(),
	}
}

func fromDomainRecommendation(rec session.Recommendation) Recommendation {
	c := rec.Candidate
	return Recommendation{
		ManufacturerID: c.ManufacturerID(),
		Rank:           rec.Rank,
		Score:          c.Overall(),
		Confidence:     c.Confidence(),
		Flagged:        c.Flagged(),
		Factors:        factorMap(c.Factors()),
		Explanation:    fromDomainExplanation(rec.Explanation),
	}
}

func fromDomainExplanation(e session.Explanation) Explanation {
	top := make([]string, 0, len(e.Summary.TopFactors))
	for _, f := range e.Summary.TopFactors {
		top = append(top, string(f))
	}
	out := Explanation{
		Summary: Summary{
			Label:         e.Summary.Label,
			TopFactors:    top,
			ConfidencePct: e.Summary.ConfidencePct,
			Strength:      e.Summary.Strength,
			Concern:       e.Summary.Concern,
		},
	}
	if e.Detailed != nil {
		out.Detailed = &Detailed{
			Breakdown:     factorMap(e.Detailed.Breakdown),
			Alignment:     e.Detailed.Alignment,
			Risks:         e.Detailed.Risks,
			Opportunities: e.Detailed.Opportunities,
		}
	}
	if e.Expert != nil {
		matches := make([]TermMatch, 0, len(e.Expert.TermMatches))
		for _, m := range e.Expert.TermMatches {
			matches = append(matches, TermMatch{
				Requirement: m.Requirement,
				BestMatch:   m.BestMatch,
				Score:       m.Score,
			})
		}
		out.Expert = &Expert{
			WeightsUsed:  factorMap(e.Expert.WeightsUsed),
			TermMatches:  matches,
			IntervalLow:  e.Expert.IntervalLow,
			IntervalHigh: e.Expert.IntervalHigh,
		}
	}
	return out
}

func fromDomainWeights(
	seg segment.Segment, vec weights.Vector, state segment.State, revision int64,
) SegmentWeights {
	learned := !vec.IsZero()
	if !learned {
		vec = weights.Default()
	}
	return SegmentWeights{
		Segment:      seg.String(),
		Weights:      factorMap(vec.AsMap()),
		Learned:      learned,
		Revision:     revision,
		Interactions: state.Interactions(),
		Successes:    state.Successes(),
		Confidence:   state.Confidence(),
		Velocity:     state.Velocity(),
	}
}

func factorMap(m map[factor.Factor]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for f, v := range m {
		out[string(f)] = v
	}
	return out
}
