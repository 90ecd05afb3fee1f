package matchdex

import "time"

// Order describes a manufacturing order to match.
type Order struct {
	ID                   string
	Technology           string
	Material             string
	Quantity             int
	Budget               float64
	Deadline             time.Time
	ToleranceMM          float64
	Certifications       []string
	CustomSpecifications string
	Country              string
}

// Manufacturer describes one candidate manufacturer profile.
type Manufacturer struct {
	ID              string
	Name            string
	Capabilities    []string
	Materials       []string
	Certifications  []string
	Country         string
	MinQuantity     int
	MaxQuantity     int
	OnTimeRate      float64
	DefectRate      float64
	CompletedOrders int
	QualityRating   float64
	CostIndex       float64
	LeadTimeDays    int
	CapacityLoad    float64
}

// Preferences are the optional customer preference hints used for
// segment classification.
type Preferences struct {
	PriceSensitive bool
	QualityFocused bool
	PrefersLocal   bool
	SpeedPriority  bool
}

// Complexity is the order complexity analysis.
type Complexity struct {
	Score      float64
	Level      string
	Confidence float64
	Breakdown  map[string]float64
	Defaulted  []string
}

// TermMatch records how one order requirement resolved against a
// manufacturer's declared capability set.
type TermMatch struct {
	Requirement string
	BestMatch   string
	Score       float64
}

// Summary is the glance-level explanation tier.
type Summary struct {
	Label         string
	TopFactors    []string
	ConfidencePct int
	Strength      string
	Concern       string
}

// Detailed is the factor-breakdown explanation tier.
type Detailed struct {
	Breakdown     map[string]float64
	Alignment     string
	Risks         []string
	Opportunities []string
}

// Expert is the raw-inputs explanation tier.
type Expert struct {
	WeightsUsed  map[string]float64
	TermMatches  []TermMatch
	IntervalLow  float64
	IntervalHigh float64
}

// Explanation bundles the three explanation tiers.
type Explanation struct {
	Summary  Summary
	Detailed *Detailed
	Expert   *Expert
}

// Recommendation is one ranked entry in a match result.
type Recommendation struct {
	ManufacturerID string
	Rank           int
	Score          float64
	Confidence     float64
	Flagged        bool
	Factors        map[string]float64
	Explanation    Explanation
}

// MatchResult is the outcome of one matching session. NoStrongMatch is
// set when fewer than two candidates cleared the viability floor; the
// session is still created for audit.
type MatchResult struct {
	SessionID       string
	OrderID         string
	Segment         string
	Complexity      Complexity
	OptionCount     int
	NoStrongMatch   bool
	Recommendations []Recommendation
	CreatedAt       time.Time
}

// Choice is a resolved matching session reported back for learning.
type Choice struct {
	SessionID            string
	Segment              string
	ChosenManufacturerID string
	ChosenRank           int
	PresentedCount       int
	ImportantFactors     []string
	Satisfaction         string
}

// Ack acknowledges a recorded choice. Outcome is "applied" or
// "duplicate".
type Ack struct {
	Outcome string
	Segment string
}

// SegmentWeights is a segment's effective weight vector and learning
// state. Learned is false when the segment has no stored vector and the
// global defaults are in effect.
type SegmentWeights struct {
	Segment      string
	Weights      map[string]float64
	Learned      bool
	Revision     int64
	Interactions int64
	Successes    int64
	Confidence   float64
	Velocity     float64
}
