// Package complexity derives a composite 1-10 complexity score for an
// order from its process count, material sophistication, precision,
// timeline pressure, custom specifications, and quality standards.
package complexity

import (
	"strings"
	"time"

	"github.com/kailas-cloud/matchdex/internal/domain/complexity"
	"github.com/kailas-cloud/matchdex/internal/domain/order"
)

// Composite dimension weights.
var dimensionWeights = map[complexity.Dimension]float64{
	complexity.DimProcess:   0.25,
	complexity.DimMaterial:  0.20,
	complexity.DimPrecision: 0.20,
	complexity.DimTimeline:  0.15,
	complexity.DimCustom:    0.10,
	complexity.DimQuality:   0.10,
}

const (
	midpoint          = 0.5  // fallback for missing input
	confidencePenalty = 0.15 // per defaulted dimension
	minConfidence     = 0.3
)

// Service analyzes order complexity. Safe for concurrent use.
type Service struct {
	now func() time.Time
}

// New creates a complexity analyzer.
func New() *Service {
	return &Service{now: time.Now}
}

// NewWithClock creates an analyzer with a fixed clock for tests.
func NewWithClock(now func() time.Time) *Service {
	return &Service{now: now}
}

// Analyze computes the composite complexity of an order. Missing fields
// default their dimension to the midpoint and reduce confidence instead
// of failing the analysis.
func (s *Service) Analyze(o *order.Order) complexity.Result {
	breakdown := make(map[complexity.Dimension]float64, len(dimensionWeights))
	var defaulted []complexity.Dimension

	breakdown[complexity.DimProcess] = processComplexity(o.Processes())

	if o.Material() == "" {
		breakdown[complexity.DimMaterial] = midpoint
		defaulted = append(defaulted, complexity.DimMaterial)
	} else {
		breakdown[complexity.DimMaterial] = materialSophistication(o.Material())
	}

	if o.ToleranceMM() == 0 {
		breakdown[complexity.DimPrecision] = midpoint
		defaulted = append(defaulted, complexity.DimPrecision)
	} else {
		breakdown[complexity.DimPrecision] = precisionDemand(o.ToleranceMM())
	}

	if o.Deadline().IsZero() {
		breakdown[complexity.DimTimeline] = midpoint
		defaulted = append(defaulted, complexity.DimTimeline)
	} else {
		breakdown[complexity.DimTimeline] = timelinePressure(s.now(), o.Deadline())
	}

	breakdown[complexity.DimCustom] = customSpecDemand(o.CustomSpecs())
	breakdown[complexity.DimQuality] = qualityStringency(o.Certifications())

	weighted := 0.0
	for dim, w := range dimensionWeights {
		weighted += breakdown[dim] * w
	}

	score := 1 + 9*weighted
	confidence := 1 - confidencePenalty*float64(len(defaulted))
	if confidence < minConfidence {
		confidence = minConfidence
	}

	return complexity.NewResult(score, breakdown, confidence, defaulted)
}

// advancedProcesses carry an extra complexity bump beyond the raw count.
var advancedProcesses = []string{"5-axis", "edm", "micro", "aerospace", "swiss"}

func processComplexity(processes []string) float64 {
	base := 0.25 * float64(len(processes))
	for _, p := range processes {
		lower := strings.ToLower(p)
		for _, adv := range advancedProcesses {
			if strings.Contains(lower, adv) {
				base += 0.2
				break
			}
		}
	}
	return clamp01(base)
}

// Material tiers by machining and handling difficulty.
var materialTiers = []struct {
	keywords []string
	score    float64
}{
	{[]string{"inconel", "titanium", "peek", "composite", "ceramic", "tungsten"}, 0.9},
	{[]string{"stainless", "tool steel", "hardened", "magnesium"}, 0.7},
	{[]string{"aluminum", "aluminium", "brass", "copper", "steel"}, 0.5},
	{[]string{"abs", "nylon", "pla", "acrylic", "delrin"}, 0.3},
}

func materialSophistication(material string) float64 {
	lower := strings.ToLower(material)
	for _, tier := range materialTiers {
		for _, kw := range tier.keywords {
			if strings.Contains(lower, kw) {
				return tier.score
			}
		}
	}
	// Present but unrecognized material.
	return midpoint
}

func precisionDemand(toleranceMM float64) float64 {
	switch {
	case toleranceMM <= 0.01:
		return 1.0
	case toleranceMM <= 0.05:
		return 0.8
	case toleranceMM <= 0.1:
		return 0.6
	case toleranceMM <= 0.5:
		return 0.4
	default:
		return 0.2
	}
}

// timelinePressure is the inverse of days until deadline, clipped:
// a week or less is maximal pressure, 90 days or more is minimal.
func timelinePressure(now, deadline time.Time) float64 {
	days := deadline.Sub(now).Hours() / 24
	switch {
	case days <= 7:
		return 1.0
	case days >= 90:
		return 0.1
	default:
		return clamp01(1 - (days-7)/(90-7)*0.9)
	}
}

func customSpecDemand(specs string) float64 {
	words := len(strings.Fields(specs))
	if words == 0 {
		return 0
	}
	return clamp01(0.2 + float64(words)/50)
}

// stringentCerts name certification regimes that materially raise
// quality requirements.
var stringentCerts = []string{"as9100", "iso 13485", "itar", "nadcap"}

func qualityStringency(certs []string) float64 {
	if len(certs) == 0 {
		return 0.2
	}
	score := 0.2 + 0.25*float64(len(certs))
	for _, c := range certs {
		lower := strings.ToLower(c)
		for _, strict := range stringentCerts {
			if strings.Contains(lower, strict) {
				score += 0.2
				break
			}
		}
	}
	return clamp01(score)
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
