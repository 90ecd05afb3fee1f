package scoring

import (
	"strings"
	"time"

	"github.com/kailas-cloud/matchdex/internal/domain/manufacturer"
	"github.com/kailas-cloud/matchdex/internal/domain/order"
	"github.com/kailas-cloud/matchdex/internal/domain/session"
)

// capability aggregates the resolver over every order requirement
// against the manufacturer's matching declared set, best match per
// requirement then averaged. Unrelated declared terms contribute
// exactly zero so a candidate with no overlap scores 0.0, not merely
// low.
func (s *Service) capability(o *order.Order, p *manufacturer.Profile) (float64, []session.TermMatch) {
	type requirement struct {
		term     string
		declared []string
	}

	var reqs []requirement
	for _, proc := range o.Processes() {
		reqs = append(reqs, requirement{proc, p.Capabilities()})
	}
	if o.Material() != "" {
		reqs = append(reqs, requirement{o.Material(), p.Materials()})
	}
	for _, cert := range o.Certifications() {
		reqs = append(reqs, requirement{cert, p.Certifications()})
	}
	if len(reqs) == 0 {
		return 0, nil
	}

	matches := make([]session.TermMatch, 0, len(reqs))
	total := 0.0
	for _, req := range reqs {
		best, score := s.bestRelated(req.term, req.declared)
		matches = append(matches, session.TermMatch{
			Requirement: req.term,
			BestMatch:   best,
			Score:       score,
		})
		total += score
	}
	return total / float64(len(reqs)), matches
}

// bestRelated is BestMatch restricted to terms that actually overlap in
// manufacturing meaning.
func (s *Service) bestRelated(requirement string, declared []string) (string, float64) {
	var (
		best      string
		bestScore float64
	)
	for _, d := range declared {
		if !s.resolver.Related(requirement, d) {
			continue
		}
		if sc := s.resolver.Score(requirement, d); sc > bestScore {
			best, bestScore = d, sc
		}
	}
	return best, bestScore
}

func performanceScore(p *manufacturer.Profile) float64 {
	return clamp01(0.7*p.OnTimeRate() + 0.3*(1-p.DefectRate()))
}

// proximityScore is neutral when the order states no location preference.
func proximityScore(o *order.Order, p *manufacturer.Profile) float64 {
	if o.Country() == "" {
		return 0.5
	}
	if strings.EqualFold(o.Country(), p.Country()) {
		return 1.0
	}
	return 0.25
}

func qualityScore(p *manufacturer.Profile) float64 {
	return clamp01(p.QualityRating() / 5)
}

// costScore maps the relative cost index to [0,1]: half of market price
// or cheaper is maximal, 1.5x market or worse is zero.
func costScore(p *manufacturer.Profile) float64 {
	return clamp01(1.5 - p.CostIndex())
}

func availabilityScore(now time.Time, o *order.Order, p *manufacturer.Profile) float64 {
	qtyFit := 1.0
	if !p.AcceptsQuantity(o.Quantity()) {
		qtyFit = 0.4
	}

	leadFit := 1.0
	if !o.Deadline().IsZero() && p.LeadTimeDays() > 0 {
		daysLeft := o.Deadline().Sub(now).Hours() / 24
		if float64(p.LeadTimeDays()) > daysLeft {
			leadFit = 0.5
		}
	}

	return clamp01(qtyFit * (1 - p.CapacityLoad()) * leadFit)
}

// specializationScore rewards manufacturers focused on the order's
// processes over generalists declaring everything.
func (s *Service) specializationScore(o *order.Order, p *manufacturer.Profile) float64 {
	processes := o.Processes()
	caps := p.Capabilities()
	if len(processes) == 0 || len(caps) == 0 {
		return 0
	}

	total := 0.0
	for _, proc := range processes {
		_, score := s.bestRelated(proc, caps)
		total += score
	}
	avg := total / float64(len(processes))

	focus := float64(len(processes)) / float64(len(caps))
	if focus > 1 {
		focus = 1
	}
	return clamp01(avg * focus)
}

func historyScore(p *manufacturer.Profile) float64 {
	return clamp01(float64(p.CompletedOrders()) / 200)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
