// Package order defines the read-only order requirement record the engine
// matches against. Orders are supplied by an external store and are
// immutable for the duration of a matching request.
package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/matchdex/internal/domain"
)

// Order is the order requirement aggregate (immutable value object).
// Only the technology is mandatory: missing optional fields degrade the
// analysis confidence instead of failing the request.
type Order struct {
	id             string
	technology     string
	material       string
	quantity       int
	budget         float64
	deadline       time.Time
	toleranceMM    float64
	certifications []string
	customSpecs    string
	country        string
}

// New validates and creates an Order.
func New(
	id, technology, material string,
	quantity int, budget float64, deadline time.Time,
	toleranceMM float64, certifications []string,
	customSpecs, country string,
) (Order, error) {
	if id == "" {
		return Order{}, fmt.Errorf("%w: order ID is required", domain.ErrInvalidOrder)
	}
	if strings.TrimSpace(technology) == "" {
		return Order{}, fmt.Errorf("%w: technology is required", domain.ErrInvalidOrder)
	}
	if quantity < 0 {
		return Order{}, fmt.Errorf("%w: quantity must be non-negative", domain.ErrInvalidOrder)
	}
	if budget < 0 {
		return Order{}, fmt.Errorf("%w: budget must be non-negative", domain.ErrInvalidOrder)
	}
	if toleranceMM < 0 {
		return Order{}, fmt.Errorf("%w: tolerance must be non-negative", domain.ErrInvalidOrder)
	}
	return Order{
		id:             id,
		technology:     strings.TrimSpace(technology),
		material:       strings.TrimSpace(material),
		quantity:       quantity,
		budget:         budget,
		deadline:       deadline,
		toleranceMM:    toleranceMM,
		certifications: cloneStrings(certifications),
		customSpecs:    customSpecs,
		country:        strings.TrimSpace(country),
	}, nil
}

// ID returns the order identifier.
func (o *Order) ID() string { return o.id }

// Technology returns the required process/technology name. Compound
// processes are "+"-separated ("CNC Machining + Anodizing").
func (o *Order) Technology() string { return o.technology }

// Processes splits the technology into individual required processes.
func (o *Order) Processes() []string {
	parts := strings.Split(o.technology, "+")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Material returns the required material, empty if unspecified.
func (o *Order) Material() string { return o.material }

// Quantity returns the order quantity, 0 if unspecified.
func (o *Order) Quantity() int { return o.quantity }

// Budget returns the order budget, 0 if unspecified.
func (o *Order) Budget() float64 { return o.budget }

// Deadline returns the delivery deadline, zero time if unspecified.
func (o *Order) Deadline() time.Time { return o.deadline }

// ToleranceMM returns the precision requirement in millimeters,
// 0 if unspecified.
func (o *Order) ToleranceMM() float64 { return o.toleranceMM }

// HighPrecision reports whether the tolerance is tight enough to count as
// a high precision requirement (strictly below 0.05mm).
func (o *Order) HighPrecision() bool {
	return o.toleranceMM > 0 && o.toleranceMM < 0.05
}

// Certifications returns the required certifications.
func (o *Order) Certifications() []string { return o.certifications }

// CustomSpecs returns free-text custom specifications.
func (o *Order) CustomSpecs() string { return o.customSpecs }

// Country returns the preferred manufacturing country, empty if none.
func (o *Order) Country() string { return o.country }

// MissingFields lists optional fields absent from the record. Each one
// degrades analysis confidence rather than failing the request.
func (o *Order) MissingFields() []string {
	var missing []string
	if o.material == "" {
		missing = append(missing, "material")
	}
	if o.quantity == 0 {
		missing = append(missing, "quantity")
	}
	if o.budget == 0 {
		missing = append(missing, "budget")
	}
	if o.deadline.IsZero() {
		missing = append(missing, "deadline")
	}
	if o.toleranceMM == 0 {
		missing = append(missing, "tolerance")
	}
	return missing
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	c := make([]string, len(s))
	copy(c, s)
	return c
}
