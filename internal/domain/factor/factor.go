// Package factor defines the fixed set of scoring factors used by the
// matching engine. Factors are an enumerated key set rather than
// polymorphic types so weight vectors stay plain arithmetic.
package factor

import "fmt"

// Factor identifies one scoring dimension of a candidate manufacturer.
type Factor string

const (
	// Capability measures overlap between required and declared
	// processes, materials, and certifications.
	Capability Factor = "capability"
	// Performance measures historical delivery performance.
	Performance Factor = "performance"
	// Proximity measures geographic closeness to the preferred location.
	Proximity Factor = "proximity"
	// Quality measures the manufacturer quality rating.
	Quality Factor = "quality"
	// Cost measures cost competitiveness relative to budget.
	Cost Factor = "cost"
	// Availability measures free production capacity for the order.
	Availability Factor = "availability"
	// Specialization measures focus on the order's process family.
	Specialization Factor = "specialization"
	// History measures long-run completed-order track record.
	History Factor = "history"
)

// All returns every factor in canonical order. The order is stable and
// used for deterministic iteration over weight vectors.
func All() []Factor {
	return []Factor{
		Capability, Performance, Proximity, Quality,
		Cost, Availability, Specialization, History,
	}
}

// Count is the number of scoring factors.
const Count = 8

// Parse validates a factor name.
func Parse(s string) (Factor, error) {
	f := Factor(s)
	for _, known := range All() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown factor %q", s)
}

// Valid reports whether f is a known factor.
func (f Factor) Valid() bool {
	_, err := Parse(string(f))
	return err == nil
}

// String returns the factor name.
func (f Factor) String() string { return string(f) }
