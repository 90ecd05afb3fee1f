package weights

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/matchdex/internal/domain"
	"github.com/kailas-cloud/matchdex/internal/domain/factor"
	"github.com/kailas-cloud/matchdex/internal/domain/segment"
	domweights "github.com/kailas-cloud/matchdex/internal/domain/weights"
)

// Hash field names of one segment record.
const (
	fieldWeights      = "weights"
	fieldRevision     = "revision"
	fieldInteractions = "interactions"
	fieldSuccesses    = "successes"
	fieldConfidence   = "confidence"
	fieldVelocity     = "velocity"
	fieldUpdatedAt    = "updated_at"
)

// encodeWeights serializes a weight vector as a JSON object keyed by
// factor name.
func encodeWeights(v domweights.Vector) (string, error) {
	m := make(map[string]float64, factor.Count)
	for f, w := range v.AsMap() {
		m[f.String()] = w
	}
	data, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("marshal weights: %w", err)
	}
	return string(data), nil
}

// decodeWeights parses and validates a stored weight vector. Invalid
// stored vectors surface domain.ErrInvalidWeights so the caller can fall
// back to defaults.
func decodeWeights(raw string) (domweights.Vector, error) {
	var m map[string]float64
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return domweights.Vector{}, fmt.Errorf("%w: %v", domain.ErrInvalidWeights, err)
	}
	w := make(map[factor.Factor]float64, len(m))
	for name, v := range m {
		f, err := factor.Parse(name)
		if err != nil {
			return domweights.Vector{}, fmt.Errorf("%w: %v", domain.ErrInvalidWeights, err)
		}
		w[f] = v
	}
	return domweights.New(w)
}

func decodeState(fields map[string]string) (segment.State, error) {
	interactions, err := parseInt(fields[fieldInteractions])
	if err != nil {
		return segment.State{}, fmt.Errorf("parse interactions: %w", err)
	}
	successes, err := parseInt(fields[fieldSuccesses])
	if err != nil {
		return segment.State{}, fmt.Errorf("parse successes: %w", err)
	}
	confidence, err := parseFloat(fields[fieldConfidence])
	if err != nil {
		return segment.State{}, fmt.Errorf("parse confidence: %w", err)
	}
	velocity, err := parseFloat(fields[fieldVelocity])
	if err != nil {
		return segment.State{}, fmt.Errorf("parse velocity: %w", err)
	}
	return segment.NewState(interactions, successes, confidence, velocity)
}

func parseInt(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
