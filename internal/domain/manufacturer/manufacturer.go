// Package manufacturer defines the read-only manufacturer profile record
// evaluated as a candidate against one order.
package manufacturer

import (
	"fmt"
	"strings"
)

// Profile is the manufacturer profile aggregate (immutable value object).
// Rates are fractions in [0,1]; quality rating is on a 0–5 scale;
// cost index is relative to market average (1.0 = par, lower = cheaper).
type Profile struct {
	id              string
	name            string
	capabilities    []string
	materials       []string
	certifications  []string
	country         string
	minQuantity     int
	maxQuantity     int
	onTimeRate      float64
	defectRate      float64
	completedOrders int
	qualityRating   float64
	costIndex       float64
	leadTimeDays    int
	capacityLoad    float64
}

// New validates and creates a Profile.
func New(
	id, name string,
	capabilities, materials, certifications []string,
	country string, minQuantity, maxQuantity int,
	onTimeRate, defectRate float64, completedOrders int,
	qualityRating, costIndex float64, leadTimeDays int, capacityLoad float64,
) (Profile, error) {
	if id == "" {
		return Profile{}, fmt.Errorf("manufacturer ID is required")
	}
	if onTimeRate < 0 || onTimeRate > 1 {
		return Profile{}, fmt.Errorf("on-time rate must be in [0,1], got %v", onTimeRate)
	}
	if defectRate < 0 || defectRate > 1 {
		return Profile{}, fmt.Errorf("defect rate must be in [0,1], got %v", defectRate)
	}
	if completedOrders < 0 {
		return Profile{}, fmt.Errorf("completed orders must be non-negative")
	}
	if qualityRating < 0 || qualityRating > 5 {
		return Profile{}, fmt.Errorf("quality rating must be in [0,5], got %v", qualityRating)
	}
	if costIndex < 0 {
		return Profile{}, fmt.Errorf("cost index must be non-negative")
	}
	if capacityLoad < 0 || capacityLoad > 1 {
		return Profile{}, fmt.Errorf("capacity load must be in [0,1], got %v", capacityLoad)
	}
	if minQuantity > maxQuantity && maxQuantity > 0 {
		return Profile{}, fmt.Errorf("min quantity %d exceeds max quantity %d", minQuantity, maxQuantity)
	}
	return Profile{
		id:              id,
		name:            name,
		capabilities:    trimAll(capabilities),
		materials:       trimAll(materials),
		certifications:  trimAll(certifications),
		country:         strings.TrimSpace(country),
		minQuantity:     minQuantity,
		maxQuantity:     maxQuantity,
		onTimeRate:      onTimeRate,
		defectRate:      defectRate,
		completedOrders: completedOrders,
		qualityRating:   qualityRating,
		costIndex:       costIndex,
		leadTimeDays:    leadTimeDays,
		capacityLoad:    capacityLoad,
	}, nil
}

// ID returns the manufacturer identifier.
func (p *Profile) ID() string { return p.id }

// Name returns the display name.
func (p *Profile) Name() string { return p.name }

// Capabilities returns declared process capabilities.
func (p *Profile) Capabilities() []string { return p.capabilities }

// Materials returns declared material capabilities.
func (p *Profile) Materials() []string { return p.materials }

// Certifications returns held certifications.
func (p *Profile) Certifications() []string { return p.certifications }

// Country returns the manufacturing country.
func (p *Profile) Country() string { return p.country }

// MinQuantity returns the minimum accepted order quantity.
func (p *Profile) MinQuantity() int { return p.minQuantity }

// MaxQuantity returns the maximum production quantity, 0 for unbounded.
func (p *Profile) MaxQuantity() int { return p.maxQuantity }

// OnTimeRate returns the historical on-time delivery fraction.
func (p *Profile) OnTimeRate() float64 { return p.onTimeRate }

// DefectRate returns the historical defect fraction.
func (p *Profile) DefectRate() float64 { return p.defectRate }

// CompletedOrders returns the completed-order count.
func (p *Profile) CompletedOrders() int { return p.completedOrders }

// QualityRating returns the quality rating on a 0–5 scale.
func (p *Profile) QualityRating() float64 { return p.qualityRating }

// CostIndex returns the relative cost index (1.0 = market average).
func (p *Profile) CostIndex() float64 { return p.costIndex }

// LeadTimeDays returns the typical production lead time.
func (p *Profile) LeadTimeDays() int { return p.leadTimeDays }

// CapacityLoad returns the current capacity utilization in [0,1].
func (p *Profile) CapacityLoad() float64 { return p.capacityLoad }

// DeclaredBreadth returns the total count of declared capabilities and
// materials, used by the anti-gaming consistency check.
func (p *Profile) DeclaredBreadth() int {
	return len(p.capabilities) + len(p.materials)
}

// AcceptsQuantity reports whether qty falls in the accepted range.
// Unspecified quantities (0) are treated as acceptable.
func (p *Profile) AcceptsQuantity(qty int) bool {
	if qty == 0 {
		return true
	}
	if qty < p.minQuantity {
		return false
	}
	return p.maxQuantity == 0 || qty <= p.maxQuantity
}

func trimAll(s []string) []string {
	out := make([]string, 0, len(s))
	for _, v := range s {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
