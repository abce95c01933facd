package pmi

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dd0wney/lngnet/pkg/trade"
)

// countryPool keeps generated matrices small enough to stay fast while still
// producing varied topologies.
var countryPool = []string{"Australia", "China", "India", "Japan", "Korea", "Qatar", "Spain", "USA"}

// TestWeightInvariants uses property-based testing to verify the PMI filter.
// These properties should ALWAYS hold for any valid trade matrix.
func TestWeightInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	genFlow := gopter.CombineGens(
		gen.IntRange(0, len(countryPool)-1),
		gen.IntRange(0, len(countryPool)-1),
		gen.Float64Range(0.1, 1000),
	)

	// Property 1: every surviving edge has strictly positive weight
	properties.Property("surviving edges have positive weight", prop.ForAll(
		func(flows [][]any) bool {
			m := matrixFromTuples(flows)
			edges, err := Weight(m)
			if err != nil {
				// Degenerate matrices are a valid outcome
				return true
			}
			for _, e := range edges {
				if e.Weight <= 0 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genFlow),
	))

	// Property 2: no surviving edge is a self-loop
	properties.Property("no self-loops survive weighting", prop.ForAll(
		func(flows [][]any) bool {
			m := matrixFromTuples(flows)
			edges, err := Weight(m)
			if err != nil {
				return true
			}
			for _, e := range edges {
				if e.Origin == e.Destination {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genFlow),
	))

	// Property 3: weighting is a pure function of the matrix
	properties.Property("weighting is deterministic", prop.ForAll(
		func(flows [][]any) bool {
			m := matrixFromTuples(flows)
			first, err1 := Weight(m)
			second, err2 := Weight(m)
			if (err1 == nil) != (err2 == nil) {
				return false
			}
			if err1 != nil {
				return true
			}
			if len(first) != len(second) {
				return false
			}
			for i := range first {
				if first[i] != second[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genFlow),
	))

	properties.TestingRun(t)
}

// matrixFromTuples rebuilds a matrix from generated (origin, destination, volume) tuples
func matrixFromTuples(flows [][]any) *trade.Matrix {
	m := trade.NewMatrix(2013)
	for _, f := range flows {
		m.Add(trade.TradeRecord{
			Year:        2013,
			Origin:      countryPool[f[0].(int)],
			Destination: countryPool[f[1].(int)],
			Volume:      f[2].(float64),
		})
	}
	return m
}
