package ranking

import "github.com/kailas-cloud/matchdex/internal/domain/complexity"

// Option count bounds.
const (
	MinOptions = 2
	MaxOptions = 5
)

// OptionCount decides how many ranked candidates to surface. Base count
// by complexity level, plus one for high timeline pressure and one for
// high precision, capped at MaxOptions. Deterministic, no learning.
func OptionCount(level complexity.Level, urgent, highPrecision bool) int {
	var count int
	switch level {
	case complexity.Simple:
		count = 2
	case complexity.Moderate:
		count = 3
	case complexity.High, complexity.Critical:
		count = 4
	default:
		count = MinOptions
	}

	if urgent {
		count++
	}
	if highPrecision {
		count++
	}

	if count > MaxOptions {
		count = MaxOptions
	}
	if count < MinOptions {
		count = MinOptions
	}
	return count
}
