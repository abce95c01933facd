// Package graph holds the per-year dependency network as an explicit value
// object. Each year's graph is independent and immutable once built; nothing
// here persists across years.
package graph

import (
	"fmt"
	"sort"

	"github.com/dd0wney/lngnet/pkg/pmi"
)

// Edge is a directed weighted tie between two country nodes.
type Edge struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Weight      float64 `json:"weight"`
}

// DuplicateEdgeError indicates an upstream merge bug: more than one edge
// arrived for the same ordered pair in one year.
type DuplicateEdgeError struct {
	Year        int
	Origin      string
	Destination string
}

func (e *DuplicateEdgeError) Error() string {
	return fmt.Sprintf("duplicate edge %s->%s in year %d graph", e.Origin, e.Destination, e.Year)
}

// SelfLoopError indicates an edge whose endpoints coincide reached the
// builder; the trade matrix drops these on insert so this is defensive.
type SelfLoopError struct {
	Year    int
	Country string
}

func (e *SelfLoopError) Error() string {
	return fmt.Sprintf("self-loop on %s in year %d graph", e.Country, e.Year)
}

type pairKey struct {
	origin      string
	destination string
}

// Graph is one year's directed weighted dependency network. The node set is
// exactly the union of surviving edge endpoints; countries with no
// positive-PMI partner are absent, not isolated.
type Graph struct {
	Year int

	nodes   []string
	index   map[string]int
	weights map[pairKey]float64
	out     map[string][]Edge
	in      map[string][]Edge
}

// Build assembles a year's graph from the surviving weighted edges. It
// enforces the no-self-loop and single-edge-per-ordered-pair invariants.
func Build(year int, edges []pmi.WeightedEdge) (*Graph, error) {
	g := &Graph{
		Year:    year,
		index:   make(map[string]int),
		weights: make(map[pairKey]float64, len(edges)),
		out:     make(map[string][]Edge),
		in:      make(map[string][]Edge),
	}

	seen := make(map[string]struct{})
	for _, e := range edges {
		if e.Origin == e.Destination {
			return nil, &SelfLoopError{Year: year, Country: e.Origin}
		}
		key := pairKey{origin: e.Origin, destination: e.Destination}
		if _, dup := g.weights[key]; dup {
			return nil, &DuplicateEdgeError{Year: year, Origin: e.Origin, Destination: e.Destination}
		}

		g.weights[key] = e.Weight
		edge := Edge{Origin: e.Origin, Destination: e.Destination, Weight: e.Weight}
		g.out[e.Origin] = append(g.out[e.Origin], edge)
		g.in[e.Destination] = append(g.in[e.Destination], edge)
		seen[e.Origin] = struct{}{}
		seen[e.Destination] = struct{}{}
	}

	g.nodes = make([]string, 0, len(seen))
	for c := range seen {
		g.nodes = append(g.nodes, c)
	}
	sort.Strings(g.nodes)
	for i, c := range g.nodes {
		g.index[c] = i
	}

	// Stable adjacency ordering so traversals are reproducible
	for _, adj := range g.out {
		sort.Slice(adj, func(i, j int) bool { return adj[i].Destination < adj[j].Destination })
	}
	for _, adj := range g.in {
		sort.Slice(adj, func(i, j int) bool { return adj[i].Origin < adj[j].Origin })
	}

	return g, nil
}

// Nodes returns the sorted node set.
func (g *Graph) Nodes() []string {
	nodes := make([]string, len(g.nodes))
	copy(nodes, g.nodes)
	return nodes
}

// HasNode reports whether a country appears in this year's graph.
func (g *Graph) HasNode(country string) bool {
	_, ok := g.index[country]
	return ok
}

// NodeCount returns the number of country nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of directed edges.
func (g *Graph) EdgeCount() int {
	return len(g.weights)
}

// Weight returns the edge weight for an ordered pair, zero if absent.
func (g *Graph) Weight(origin, destination string) float64 {
	return g.weights[pairKey{origin: origin, destination: destination}]
}

// OutgoingEdges returns the edges originating at a node, ordered by destination.
func (g *Graph) OutgoingEdges(country string) []Edge {
	return g.out[country]
}

// IncomingEdges returns the edges terminating at a node, ordered by origin.
func (g *Graph) IncomingEdges(country string) []Edge {
	return g.in[country]
}

// Edges returns all edges in deterministic (origin, destination) order.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, len(g.weights))
	for _, origin := range g.nodes {
		edges = append(edges, g.out[origin]...)
	}
	return edges
}
