package ranking

import (
	"fmt"
	"sort"

	"github.com/kailas-cloud/matchdex/internal/domain/complexity"
	"github.com/kailas-cloud/matchdex/internal/domain/factor"
	"github.com/kailas-cloud/matchdex/internal/domain/session"
	"github.com/kailas-cloud/matchdex/internal/domain/weights"
)

// Confidence interval half-width per unit of missing confidence.
const intervalScale = 0.15

var factorLabels = map[factor.Factor]string{
	factor.Capability:     "capability match",
	factor.Performance:    "delivery performance",
	factor.Proximity:      "geographic proximity",
	factor.Quality:        "quality rating",
	factor.Cost:           "cost competitiveness",
	factor.Availability:   "current availability",
	factor.Specialization: "process specialization",
	factor.History:        "track record",
}

// explain derives all three explanation tiers from the already-computed
// breakdown. No re-scoring happens here.
func explain(c session.ScoredCandidate, cx complexity.Result, w weights.Vector) session.Explanation {
	if w.IsZero() {
		w = weights.Default()
	}

	top := contributingFactors(c, w)
	strongest, weakest := extremes(c)

	summary := session.Summary{
		Label:         matchLabel(c.Overall()),
		TopFactors:    top,
		ConfidencePct: int(c.Confidence()*100 + 0.5),
		Strength:      fmt.Sprintf("strong %s (%.0f%%)", factorLabels[strongest], c.Factor(strongest)*100),
		Concern:       fmt.Sprintf("weak %s (%.0f%%)", factorLabels[weakest], c.Factor(weakest)*100),
	}

	detailed := &session.Detailed{
		Breakdown:     c.Factors(),
		Alignment:     alignmentNarrative(c, cx),
		Risks:         risks(c),
		Opportunities: opportunities(c),
	}

	halfWidth := (1 - c.Confidence()) * intervalScale
	expert := &session.Expert{
		WeightsUsed:  w.AsMap(),
		TermMatches:  c.TermMatches(),
		IntervalLow:  clamp01(c.Overall() - halfWidth),
		IntervalHigh: clamp01(c.Overall() + halfWidth),
	}

	return session.Explanation{Summary: summary, Detailed: detailed, Expert: expert}
}

func matchLabel(overall float64) string {
	switch {
	case overall >= 0.85:
		return "excellent match"
	case overall >= 0.70:
		return "strong match"
	case overall >= 0.50:
		return "good match"
	case overall >= 0.30:
		return "fair match"
	default:
		return "weak match"
	}
}

// contributingFactors returns the top three factors by weighted
// contribution to the overall score.
func contributingFactors(c session.ScoredCandidate, w weights.Vector) []factor.Factor {
	all := factor.All()
	sort.SliceStable(all, func(i, j int) bool {
		return w.Get(all[i])*c.Factor(all[i]) > w.Get(all[j])*c.Factor(all[j])
	})
	return all[:3]
}

// extremes returns the strongest and weakest raw factor, ties resolved
// by canonical factor order.
func extremes(c session.ScoredCandidate) (strongest, weakest factor.Factor) {
	all := factor.All()
	strongest, weakest = all[0], all[0]
	for _, f := range all[1:] {
		if c.Factor(f) > c.Factor(strongest) {
			strongest = f
		}
		if c.Factor(f) < c.Factor(weakest) {
			weakest = f
		}
	}
	return strongest, weakest
}

func alignmentNarrative(c session.ScoredCandidate, cx complexity.Result) string {
	capScore := c.Factor(factor.Capability)
	switch cx.Level() {
	case complexity.Critical, complexity.High:
		if capScore >= 0.8 && c.Factor(factor.Quality) >= 0.7 {
			return fmt.Sprintf("well equipped for this %s-complexity order: capability and quality both rank high", cx.Level())
		}
		return fmt.Sprintf("this is a %s-complexity order; verify process capability before committing", cx.Level())
	case complexity.Moderate:
		return "a standard-complexity order well within typical production capability"
	default:
		return "a simple order; availability and price matter more than special capability"
	}
}

func risks(c session.ScoredCandidate) []string {
	var out []string
	if c.Flagged() {
		out = append(out, "declared capability breadth is inconsistent with completed-order history")
	}
	if c.Factor(factor.Performance) < 0.5 {
		out = append(out, "below-average delivery performance history")
	}
	if c.Factor(factor.Availability) < 0.3 {
		out = append(out, "limited current production availability")
	}
	if c.Factor(factor.History) < 0.1 {
		out = append(out, "thin track record for this kind of order")
	}
	return out
}

func opportunities(c session.ScoredCandidate) []string {
	var out []string
	if c.Factor(factor.Cost) >= 0.7 {
		out = append(out, "pricing well below market average")
	}
	if c.Factor(factor.Specialization) >= 0.7 {
		out = append(out, "highly specialized in the required processes")
	}
	if c.Factor(factor.Proximity) >= 1.0 {
		out = append(out, "local production simplifies logistics and communication")
	}
	return out
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
