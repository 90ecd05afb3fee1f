package similarity

import "strings"

// Manufacturing-term dictionary backing the technical-term boost.
// Matching is per token so compound names ("cnc precision milling")
// still qualify.
var techDictionary = map[string]struct{}{
	"cnc":         {},
	"machining":   {},
	"milling":     {},
	"turning":     {},
	"drilling":    {},
	"grinding":    {},
	"casting":     {},
	"molding":     {},
	"moulding":    {},
	"forging":     {},
	"stamping":    {},
	"extrusion":   {},
	"welding":     {},
	"brazing":     {},
	"cutting":     {},
	"laser":       {},
	"waterjet":    {},
	"edm":         {},
	"printing":    {},
	"additive":    {},
	"sls":         {},
	"sla":         {},
	"fdm":         {},
	"anodizing":   {},
	"plating":     {},
	"coating":     {},
	"fabrication": {},
	"assembly":    {},
	"injection":   {},
	"aluminum":    {},
	"aluminium":   {},
	"titanium":    {},
	"steel":       {},
	"brass":       {},
	"copper":      {},
	"polymer":     {},
	"nylon":       {},
	"abs":         {},
	"composite":   {},
	"ceramic":     {},
	"tolerance":   {},
	"iso":         {},
	"as9100":      {},
	"itar":        {},
}

// isTechTerm reports whether any token of a normalized term appears
// in the manufacturing dictionary.
func isTechTerm(term string) bool {
	for _, tok := range strings.Fields(term) {
		if _, ok := techDictionary[tok]; ok {
			return true
		}
	}
	return false
}
