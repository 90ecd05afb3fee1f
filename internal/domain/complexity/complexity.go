// Package complexity defines the order complexity analysis result.
package complexity

// Level discretizes the 1–10 complexity score. Boundaries are fixed, not
// learned: simple 1–3, moderate 4–6, high 7–8, critical 9–10.
type Level string

const (
	Simple   Level = "simple"
	Moderate Level = "moderate"
	High     Level = "high"
	Critical Level = "critical"
)

// LevelFor maps a composite score to its level.
func LevelFor(score float64) Level {
	switch {
	case score <= 3:
		return Simple
	case score <= 6:
		return Moderate
	case score <= 8:
		return High
	default:
		return Critical
	}
}

// Dimension names one input to the composite complexity score.
type Dimension string

const (
	DimProcess   Dimension = "process_complexity"
	DimMaterial  Dimension = "material_sophistication"
	DimPrecision Dimension = "precision_requirements"
	DimTimeline  Dimension = "timeline_pressure"
	DimCustom    Dimension = "custom_specifications"
	DimQuality   Dimension = "quality_standards"
)

// Dimensions returns all dimensions in canonical order.
func Dimensions() []Dimension {
	return []Dimension{
		DimProcess, DimMaterial, DimPrecision,
		DimTimeline, DimCustom, DimQuality,
	}
}

// Result is the outcome of analyzing one order.
type Result struct {
	score      float64
	level      Level
	breakdown  map[Dimension]float64
	confidence float64
	defaulted  []Dimension
}

// NewResult creates a Result. The breakdown holds each dimension's
// normalized [0,1] contribution before weighting; defaulted lists
// dimensions that fell back to their midpoint due to missing input.
func NewResult(
	score float64, breakdown map[Dimension]float64,
	confidence float64, defaulted []Dimension,
) Result {
	if score < 1 {
		score = 1
	}
	if score > 10 {
		score = 10
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	b := make(map[Dimension]float64, len(breakdown))
	for k, v := range breakdown {
		b[k] = v
	}
	return Result{
		score:      score,
		level:      LevelFor(score),
		breakdown:  b,
		confidence: confidence,
		defaulted:  append([]Dimension(nil), defaulted...),
	}
}

// Score returns the composite complexity score in [1,10].
func (r Result) Score() float64 { return r.score }

// Level returns the discrete complexity level.
func (r Result) Level() Level { return r.level }

// Breakdown returns a copy of the per-dimension normalized factors.
func (r Result) Breakdown() map[Dimension]float64 {
	b := make(map[Dimension]float64, len(r.breakdown))
	for k, v := range r.breakdown {
		b[k] = v
	}
	return b
}

// Confidence returns the analysis confidence in [0,1]; each defaulted
// dimension reduces it.
func (r Result) Confidence() float64 { return r.confidence }

// Defaulted returns dimensions that used the 0.5 midpoint fallback.
func (r Result) Defaulted() []Dimension {
	return append([]Dimension(nil), r.defaulted...)
}
