package complexity

import (
	"math"
	"testing"
	"time"

	"github.com/kailas-cloud/matchdex/internal/domain/complexity"
	"github.com/kailas-cloud/matchdex/internal/domain/order"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService() *Service {
	return NewWithClock(func() time.Time { return testNow })
}

func mustOrder(t *testing.T, technology, material string, tolerance float64, deadline time.Time, certs []string, specs string) *order.Order {
	t.Helper()
	o, err := order.New("ord-1", technology, material, 100, 5000, deadline, tolerance, certs, specs, "DE")
	if err != nil {
		t.Fatalf("failed to build order: %v", err)
	}
	return &o
}

func TestAnalyze_SimpleOrder(t *testing.T) {
	s := newTestService()

	o := mustOrder(t, "CNC Machining", "ABS", 1.0, testNow.AddDate(0, 4, 0), nil, "")
	res := s.Analyze(o)

	if res.Level() != complexity.Simple {
		t.Errorf("expected simple level, got %s (score %.2f)", res.Level(), res.Score())
	}
	if res.Confidence() != 1.0 {
		t.Errorf("expected full confidence, got %f", res.Confidence())
	}
	if len(res.Defaulted()) != 0 {
		t.Errorf("expected no defaulted dimensions, got %v", res.Defaulted())
	}
}

func TestAnalyze_CriticalOrder(t *testing.T) {
	s := newTestService()

	o := mustOrder(t,
		"5-Axis CNC Machining + EDM + Anodizing",
		"Titanium Grade 5",
		0.005,
		testNow.AddDate(0, 0, 5),
		[]string{"AS9100", "ISO 9001"},
		"Flight-critical structural bracket requiring full material traceability, "+
			"first article inspection report, CMM verification of all datum surfaces, "+
			"surface finish Ra 0.4 on sealing faces, and stress relief between operations "+
			"with certified heat treatment records supplied for every production lot",
	)
	res := s.Analyze(o)

	if res.Level() != complexity.Critical {
		t.Errorf("expected critical level, got %s (score %.2f)", res.Level(), res.Score())
	}
	if res.Score() < 9 {
		t.Errorf("expected score >= 9, got %.2f", res.Score())
	}

	breakdown := res.Breakdown()
	if breakdown[complexity.DimProcess] != 1.0 {
		t.Errorf("expected maximal process complexity, got %f", breakdown[complexity.DimProcess])
	}
	if breakdown[complexity.DimPrecision] != 1.0 {
		t.Errorf("expected maximal precision demand, got %f", breakdown[complexity.DimPrecision])
	}
	if breakdown[complexity.DimTimeline] != 1.0 {
		t.Errorf("expected maximal timeline pressure, got %f", breakdown[complexity.DimTimeline])
	}
}

func TestAnalyze_MissingFieldsDefaultToMidpoint(t *testing.T) {
	s := newTestService()

	o, err := order.New("ord-2", "Injection Molding", "", 0, 0, time.Time{}, 0, nil, "", "")
	if err != nil {
		t.Fatalf("failed to build order: %v", err)
	}
	res := s.Analyze(&o)

	breakdown := res.Breakdown()
	for _, dim := range []complexity.Dimension{
		complexity.DimMaterial, complexity.DimPrecision, complexity.DimTimeline,
	} {
		if breakdown[dim] != 0.5 {
			t.Errorf("expected %s to default to 0.5, got %f", dim, breakdown[dim])
		}
	}

	if len(res.Defaulted()) != 3 {
		t.Errorf("expected 3 defaulted dimensions, got %v", res.Defaulted())
	}

	expectedConfidence := 1 - 0.15*3
	if math.Abs(res.Confidence()-expectedConfidence) > 1e-9 {
		t.Errorf("expected confidence %.2f, got %f", expectedConfidence, res.Confidence())
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	s := newTestService()

	o := mustOrder(t, "CNC Machining + Anodizing", "Aluminum 6061", 0.05,
		testNow.AddDate(0, 1, 0), []string{"ISO 9001"}, "anodized matte black")

	first := s.Analyze(o)
	second := s.Analyze(o)

	if first.Score() != second.Score() {
		t.Errorf("scores differ across runs: %f vs %f", first.Score(), second.Score())
	}
	if first.Level() != second.Level() {
		t.Errorf("levels differ across runs: %s vs %s", first.Level(), second.Level())
	}
}

func TestAnalyze_ScoreBounds(t *testing.T) {
	s := newTestService()

	orders := []*order.Order{
		mustOrder(t, "Welding", "", 0, time.Time{}, nil, ""),
		mustOrder(t, "5-Axis CNC + EDM + Micro Machining + Grinding", "Inconel 718", 0.001,
			testNow.AddDate(0, 0, 2), []string{"AS9100", "NADCAP", "ITAR"}, "extensive"),
	}
	for _, o := range orders {
		res := s.Analyze(o)
		if res.Score() < 1 || res.Score() > 10 {
			t.Errorf("score %f out of [1,10]", res.Score())
		}
	}
}

func TestTimelinePressure(t *testing.T) {
	tests := []struct {
		days     int
		expected float64
	}{
		{3, 1.0},
		{7, 1.0},
		{120, 0.1},
	}
	for _, tc := range tests {
		got := timelinePressure(testNow, testNow.AddDate(0, 0, tc.days))
		if got != tc.expected {
			t.Errorf("timelinePressure(%d days) = %f, want %f", tc.days, got, tc.expected)
		}
	}

	// Between the bounds pressure decreases monotonically.
	p30 := timelinePressure(testNow, testNow.AddDate(0, 0, 30))
	p60 := timelinePressure(testNow, testNow.AddDate(0, 0, 60))
	if !(p30 > p60) {
		t.Errorf("expected pressure at 30 days (%f) > 60 days (%f)", p30, p60)
	}
}

func TestMaterialSophistication(t *testing.T) {
	tests := []struct {
		material string
		expected float64
	}{
		{"Titanium Grade 5", 0.9},
		{"Stainless Steel 316", 0.7},
		{"Aluminum 6061", 0.5},
		{"ABS", 0.3},
		{"unobtainium", 0.5},
	}
	for _, tc := range tests {
		if got := materialSophistication(tc.material); got != tc.expected {
			t.Errorf("materialSophistication(%q) = %f, want %f", tc.material, got, tc.expected)
		}
	}
}
