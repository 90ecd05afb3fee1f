// Package weights defines the factor weight vector used by the candidate
// scorer and adjusted by the feedback learning loop.
package weights

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/matchdex/internal/domain"
	"github.com/kailas-cloud/matchdex/internal/domain/factor"
)

// SumTolerance is the permitted deviation of the weight sum from 1.0.
const SumTolerance = 1e-6

// MaxFactorWeight caps any single factor after learning adjustments so a
// run of one-sided feedback cannot collapse the vector onto one factor.
const MaxFactorWeight = 0.5

// Vector is an immutable mapping of factor to weight. Weights are
// non-negative and sum to 1.0 within SumTolerance.
type Vector struct {
	w map[factor.Factor]float64
}

// New validates and creates a Vector. Every known factor must be present.
func New(w map[factor.Factor]float64) (Vector, error) {
	if len(w) != factor.Count {
		return Vector{}, fmt.Errorf("%w: got %d factors, want %d",
			domain.ErrInvalidWeights, len(w), factor.Count)
	}
	sum := 0.0
	for _, f := range factor.All() {
		v, ok := w[f]
		if !ok {
			return Vector{}, fmt.Errorf("%w: missing factor %s", domain.ErrInvalidWeights, f)
		}
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return Vector{}, fmt.Errorf("%w: factor %s has weight %v", domain.ErrInvalidWeights, f, v)
		}
		sum += v
	}
	if math.Abs(sum-1.0) > SumTolerance {
		return Vector{}, fmt.Errorf("%w: weights sum to %v", domain.ErrInvalidWeights, sum)
	}
	return Vector{w: cloneWeights(w)}, nil
}

// Default returns the global base weight vector used before any segment
// has accumulated enough validated feedback.
func Default() Vector {
	return Vector{w: map[factor.Factor]float64{
		factor.Capability:     0.25,
		factor.Performance:    0.20,
		factor.Proximity:      0.15,
		factor.Quality:        0.15,
		factor.Cost:           0.10,
		factor.Availability:   0.08,
		factor.Specialization: 0.05,
		factor.History:        0.02,
	}}
}

// Get returns the weight for a factor. Unknown factors return 0.
func (v Vector) Get(f factor.Factor) float64 { return v.w[f] }

// Sum returns the total weight, 1.0 for any valid vector.
func (v Vector) Sum() float64 {
	sum := 0.0
	for _, f := range factor.All() {
		sum += v.w[f]
	}
	return sum
}

// IsZero reports whether the vector is uninitialized.
func (v Vector) IsZero() bool { return v.w == nil }

// AsMap returns a copy of the underlying weights.
func (v Vector) AsMap() map[factor.Factor]float64 { return cloneWeights(v.w) }

// Adjusted returns a copy with step added to each given factor, capped at
// MaxFactorWeight, renormalized. Unknown factors are skipped.
func (v Vector) Adjusted(fs []factor.Factor, step float64) Vector {
	if len(fs) == 0 || step <= 0 {
		return Vector{w: cloneWeights(v.w)}
	}
	w := cloneWeights(v.w)
	per := step / float64(len(fs))
	for _, f := range fs {
		if !f.Valid() {
			continue
		}
		w[f] = math.Min(w[f]+per, MaxFactorWeight)
	}
	return normalized(w)
}

// normalized rescales weights to sum to exactly 1.0.
func normalized(w map[factor.Factor]float64) Vector {
	sum := 0.0
	for _, f := range factor.All() {
		sum += w[f]
	}
	if sum <= 0 {
		return Default()
	}
	for f := range w {
		w[f] /= sum
	}
	return Vector{w: w}
}

func cloneWeights(w map[factor.Factor]float64) map[factor.Factor]float64 {
	c := make(map[factor.Factor]float64, len(w))
	for k, v := range w {
		c[k] = v
	}
	return c
}
