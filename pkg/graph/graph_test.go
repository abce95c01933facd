package graph

import (
	"errors"
	"math"
	"testing"

	"github.com/dd0wney/lngnet/pkg/pmi"
)

// edge is a shorthand constructor for weighted test edges
func edge(origin, destination string, weight float64) pmi.WeightedEdge {
	return pmi.WeightedEdge{Year: 2013, Origin: origin, Destination: destination, Weight: weight}
}

// TestBuild_NodeSetIsEdgeEndpoints tests that nodes are exactly the edge endpoints
func TestBuild_NodeSetIsEdgeEndpoints(t *testing.T) {
	g, err := Build(2013, []pmi.WeightedEdge{
		edge("Qatar", "Japan", 1.5),
		edge("Australia", "Japan", 0.8),
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	expected := []string{"Australia", "Japan", "Qatar"}
	nodes := g.Nodes()
	if len(nodes) != len(expected) {
		t.Fatalf("Expected %d nodes, got %d", len(expected), len(nodes))
	}
	for i, c := range expected {
		if nodes[i] != c {
			t.Errorf("Nodes()[%d] = %s, want %s", i, nodes[i], c)
		}
	}
	if g.HasNode("Korea") {
		t.Error("Korea has no surviving edge and must be absent from the graph")
	}
}

// TestBuild_RejectsDuplicateOrderedPair tests the defensive duplicate check
func TestBuild_RejectsDuplicateOrderedPair(t *testing.T) {
	_, err := Build(2013, []pmi.WeightedEdge{
		edge("Qatar", "Japan", 1.5),
		edge("Qatar", "Japan", 0.9),
	})
	if err == nil {
		t.Fatal("Expected DuplicateEdgeError")
	}

	var dup *DuplicateEdgeError
	if !errors.As(err, &dup) {
		t.Fatalf("Expected DuplicateEdgeError, got %T: %v", err, err)
	}
	if dup.Origin != "Qatar" || dup.Destination != "Japan" || dup.Year != 2013 {
		t.Errorf("DuplicateEdgeError should name the pair and year, got %+v", dup)
	}
}

// TestBuild_OppositeDirectionsAllowed tests that i->j and j->i are distinct edges
func TestBuild_OppositeDirectionsAllowed(t *testing.T) {
	g, err := Build(2013, []pmi.WeightedEdge{
		edge("Qatar", "Japan", 1.5),
		edge("Japan", "Qatar", 0.9),
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("Expected 2 edges, got %d", g.EdgeCount())
	}
	if g.Weight("Qatar", "Japan") != 1.5 || g.Weight("Japan", "Qatar") != 0.9 {
		t.Error("Opposite-direction weights must be stored independently")
	}
}

// TestBuild_RejectsSelfLoop tests the self-loop invariant
func TestBuild_RejectsSelfLoop(t *testing.T) {
	_, err := Build(2013, []pmi.WeightedEdge{edge("Qatar", "Qatar", 1.0)})
	if err == nil {
		t.Fatal("Expected SelfLoopError")
	}
	var loop *SelfLoopError
	if !errors.As(err, &loop) {
		t.Fatalf("Expected SelfLoopError, got %T: %v", err, err)
	}
}

// TestGraphEdges_DeterministicOrder tests reproducible edge enumeration
func TestGraphEdges_DeterministicOrder(t *testing.T) {
	g, err := Build(2013, []pmi.WeightedEdge{
		edge("Qatar", "Japan", 1.5),
		edge("Australia", "Korea", 0.7),
		edge("Australia", "Japan", 0.8),
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	edges := g.Edges()
	want := [][2]string{
		{"Australia", "Japan"},
		{"Australia", "Korea"},
		{"Qatar", "Japan"},
	}
	if len(edges) != len(want) {
		t.Fatalf("Expected %d edges, got %d", len(want), len(edges))
	}
	for i, w := range want {
		if edges[i].Origin != w[0] || edges[i].Destination != w[1] {
			t.Errorf("Edges()[%d] = %s->%s, want %s->%s",
				i, edges[i].Origin, edges[i].Destination, w[0], w[1])
		}
	}
}

// TestAdjacencyMatrix_StableIndices tests the dense rendering
func TestAdjacencyMatrix_StableIndices(t *testing.T) {
	g, err := Build(2013, []pmi.WeightedEdge{
		edge("Qatar", "Japan", 1.5),
		edge("Japan", "Australia", 0.4),
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	countries, values := g.AdjacencyMatrix()
	// Sorted: Australia=0, Japan=1, Qatar=2
	if countries[0] != "Australia" || countries[1] != "Japan" || countries[2] != "Qatar" {
		t.Fatalf("Unexpected country order: %v", countries)
	}
	if values[2][1] != 1.5 {
		t.Errorf("Expected Qatar->Japan weight 1.5 at [2][1], got %f", values[2][1])
	}
	if values[1][0] != 0.4 {
		t.Errorf("Expected Japan->Australia weight 0.4 at [1][0], got %f", values[1][0])
	}
	if values[1][2] != 0 {
		t.Errorf("Absent Japan->Qatar edge should render as 0, got %f", values[1][2])
	}
}

// TestTieStrengths_BothSymmetrizes tests the (W_ij + W_ji) / 2 convention
func TestTieStrengths_BothSymmetrizes(t *testing.T) {
	g, err := Build(2013, []pmi.WeightedEdge{
		edge("Qatar", "Japan", 1.0),
		edge("Japan", "Qatar", 0.5),
		edge("Qatar", "Korea", 2.0),
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	ties := g.TieStrengths(ModeBoth)

	if got := ties["Qatar"]["Japan"]; math.Abs(got-0.75) > 1e-12 {
		t.Errorf("Symmetrized Qatar-Japan tie = %f, want 0.75", got)
	}
	if got := ties["Japan"]["Qatar"]; math.Abs(got-0.75) > 1e-12 {
		t.Errorf("Symmetrized Japan-Qatar tie = %f, want 0.75", got)
	}
	if got := ties["Korea"]["Qatar"]; math.Abs(got-1.0) > 1e-12 {
		t.Errorf("One-directional edge should still symmetrize, got %f want 1.0", got)
	}
}

// TestTieStrengths_DirectedModes tests outgoing and incoming views
func TestTieStrengths_DirectedModes(t *testing.T) {
	g, err := Build(2013, []pmi.WeightedEdge{
		edge("Qatar", "Japan", 1.0),
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	out := g.TieStrengths(ModeOutgoing)
	if out["Qatar"]["Japan"] != 1.0 || len(out["Japan"]) != 0 {
		t.Errorf("Outgoing mode wrong: %v", out)
	}

	in := g.TieStrengths(ModeIncoming)
	if in["Japan"]["Qatar"] != 1.0 || len(in["Qatar"]) != 0 {
		t.Errorf("Incoming mode wrong: %v", in)
	}
}
