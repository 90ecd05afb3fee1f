package scoring

// TermResolver compares manufacturing terms. Implemented by the
// similarity service.
type TermResolver interface {
	Score(a, b string) float64
	BestMatch(requirement string, declared []string) (string, float64)
	Related(a, b string) bool
}
