package algorithms

import (
	"math"
	"testing"

	"github.com/dd0wney/lngnet/pkg/graph"
)

// scoresByCountry indexes structural-hole results for assertions
func scoresByCountry(scores []StructuralHoleScores) map[string]StructuralHoleScores {
	m := make(map[string]StructuralHoleScores, len(scores))
	for _, s := range scores {
		m[s.Country] = s
	}
	return m
}

// TestStructuralHoles_Triangle tests the classical equal-weight triangle:
// constraint 1.125, effective size 1.5 for every node
func TestStructuralHoles_Triangle(t *testing.T) {
	g := buildGraph(t, [][3]any{
		{"A", "B", 1.0},
		{"B", "C", 1.0},
		{"C", "A", 1.0},
	})

	scores := scoresByCountry(StructuralHoles(g, graph.ModeBoth))

	for _, c := range []string{"A", "B", "C"} {
		s := scores[c]
		if !s.Valid {
			t.Fatalf("%s should be valid", c)
		}
		if s.Degree != 2 {
			t.Errorf("%s degree = %d, want 2", c, s.Degree)
		}
		if math.Abs(s.Constraint-1.125) > tolerance {
			t.Errorf("%s constraint = %f, want 1.125", c, s.Constraint)
		}
		if math.Abs(s.EffectiveSize-1.5) > tolerance {
			t.Errorf("%s effective size = %f, want 1.5", c, s.EffectiveSize)
		}
		if math.Abs(s.Efficiency-0.75) > tolerance {
			t.Errorf("%s efficiency = %f, want 0.75", c, s.Efficiency)
		}
	}
}

// TestStructuralHoles_SingleTie tests the boundary convention for a dyad
func TestStructuralHoles_SingleTie(t *testing.T) {
	g := buildGraph(t, [][3]any{{"A", "B", 2.0}})

	scores := scoresByCountry(StructuralHoles(g, graph.ModeBoth))

	for _, c := range []string{"A", "B"} {
		s := scores[c]
		if s.Degree != 1 {
			t.Errorf("%s degree = %d, want 1", c, s.Degree)
		}
		if math.Abs(s.EffectiveSize-1.0) > tolerance {
			t.Errorf("%s effective size = %f, want 1 (single neighbor)", c, s.EffectiveSize)
		}
		if math.Abs(s.Constraint-1.0) > tolerance {
			t.Errorf("%s constraint = %f, want 1 (fully constrained dyad)", c, s.Constraint)
		}
	}
}

// TestStructuralHoles_PathBroker tests that the middle of A-B-C spans a
// structural hole: effective size equals degree, constraint is low
func TestStructuralHoles_PathBroker(t *testing.T) {
	g := buildGraph(t, [][3]any{
		{"A", "B", 1.0},
		{"B", "C", 1.0},
	})

	scores := scoresByCountry(StructuralHoles(g, graph.ModeBoth))

	b := scores["B"]
	if math.Abs(b.EffectiveSize-2.0) > tolerance {
		t.Errorf("B effective size = %f, want 2 (no indirect ties, equals degree)", b.EffectiveSize)
	}
	if math.Abs(b.Constraint-0.5) > tolerance {
		t.Errorf("B constraint = %f, want 0.5", b.Constraint)
	}

	a := scores["A"]
	if math.Abs(a.Constraint-1.0) > tolerance {
		t.Errorf("A constraint = %f, want 1", a.Constraint)
	}

	// The broker must be less constrained than its dependents.
	if b.Constraint >= a.Constraint {
		t.Errorf("Broker constraint (%f) should be below dependent constraint (%f)", b.Constraint, a.Constraint)
	}
}

// TestStructuralHoles_IsolatedUnderDirectedMode tests the degree-0 convention:
// a pure sink has no outgoing ties, so outgoing-mode metrics are undefined
func TestStructuralHoles_IsolatedUnderDirectedMode(t *testing.T) {
	g := buildGraph(t, [][3]any{{"A", "B", 1.0}})

	scores := scoresByCountry(StructuralHoles(g, graph.ModeOutgoing))

	b := scores["B"]
	if b.Valid {
		t.Error("Sink node should be invalid under outgoing mode")
	}
	if b.Degree != 0 || b.Constraint != 0 || b.EffectiveSize != 0 {
		t.Errorf("Degree-0 conventions violated: %+v", b)
	}

	a := scores["A"]
	if !a.Valid || a.Degree != 1 {
		t.Errorf("Source node should have one outgoing tie, got %+v", a)
	}
}

// TestStructuralHoles_Deterministic tests stable output ordering
func TestStructuralHoles_Deterministic(t *testing.T) {
	g := buildGraph(t, [][3]any{
		{"Qatar", "Japan", 1.3},
		{"Japan", "Korea", 0.9},
		{"Korea", "Qatar", 1.1},
		{"Australia", "Japan", 0.4},
	})

	first := StructuralHoles(g, graph.ModeBoth)
	second := StructuralHoles(g, graph.ModeBoth)

	if len(first) != len(second) {
		t.Fatalf("Result lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Result %d differs across runs: %+v vs %+v", i, first[i], second[i])
		}
	}

	// Sorted node order
	for i := 1; i < len(first); i++ {
		if first[i-1].Country >= first[i].Country {
			t.Errorf("Results not in sorted country order at %d: %s >= %s",
				i, first[i-1].Country, first[i].Country)
		}
	}
}

// TestStructuralHoles_WeightedTriangle tests an asymmetric triangle where the
// weakly-tied pair constrains its members less
func TestStructuralHoles_WeightedTriangle(t *testing.T) {
	// Strong A-B and A-C, weak B-C: A is the broker.
	g := buildGraph(t, [][3]any{
		{"A", "B", 10.0},
		{"A", "C", 10.0},
		{"B", "C", 1.0},
	})

	scores := scoresByCountry(StructuralHoles(g, graph.ModeBoth))

	if scores["A"].Constraint >= scores["B"].Constraint {
		t.Errorf("Broker A (%f) should be less constrained than B (%f)",
			scores["A"].Constraint, scores["B"].Constraint)
	}
	if scores["A"].EffectiveSize <= scores["B"].EffectiveSize {
		t.Errorf("Broker A effective size (%f) should exceed B (%f)",
			scores["A"].EffectiveSize, scores["B"].EffectiveSize)
	}
}
