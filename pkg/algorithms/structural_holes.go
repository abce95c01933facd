package algorithms

import (
	"math"
	"sort"

	"github.com/dd0wney/lngnet/pkg/graph"
)

// strengthEpsilon guards proportional tie strengths against zero totals.
const strengthEpsilon = 1e-12

// StructuralHoleScores carries Burt's structural-hole indicators for one
// country. Valid is false for isolated nodes, whose Constraint and Hierarchy
// are undefined; their numeric fields are zero by convention.
type StructuralHoleScores struct {
	Country       string  `json:"country"`
	Degree        int     `json:"degree"`
	EffectiveSize float64 `json:"effective_size"`
	Efficiency    float64 `json:"efficiency"`
	Constraint    float64 `json:"constraint"`
	Hierarchy     float64 `json:"hierarchy"`
	Valid         bool    `json:"valid"`
}

// StructuralHoles computes Constraint, Effective Size, Efficiency and
// Hierarchy for every node under the given tie-direction mode. Burt's
// formulation assumes an ego network, so the directed graph is read through
// graph.TieStrengths; ModeBoth (the analysis default) symmetrizes weights as
// (W_ij + W_ji) / 2.
//
// Conventions for degenerate nodes, applied in order:
//   - degree 0: EffectiveSize 0, Constraint undefined (Valid false)
//   - exactly one tie: EffectiveSize 1, Constraint 1 (no indirect paths)
//
// Results follow the graph's sorted node order.
func StructuralHoles(g *graph.Graph, mode graph.Mode) []StructuralHoleScores {
	ties := g.TieStrengths(mode)

	// Proportional tie strengths p[i][j] = w_ij / sum_k w_ik
	proportions := make(map[string]map[string]float64, len(ties))
	for i, neighbors := range ties {
		var total float64
		for _, w := range neighbors {
			total += w
		}
		p := make(map[string]float64, len(neighbors))
		if total > strengthEpsilon {
			for j, w := range neighbors {
				p[j] = w / total
			}
		}
		proportions[i] = p
	}

	results := make([]StructuralHoleScores, 0, g.NodeCount())
	for _, i := range g.Nodes() {
		neighbors := sortedNeighbors(ties[i])
		degree := len(neighbors)

		if degree == 0 || len(proportions[i]) == 0 {
			results = append(results, StructuralHoleScores{Country: i, Degree: degree})
			continue
		}

		pi := proportions[i]

		// Constraint: c_ij = (p_ij + sum_q p_iq * p_qj)^2 over q in N(i), q != i,j
		var constraint float64
		components := make(map[string]float64, degree)
		for _, j := range neighbors {
			indirect := 0.0
			for _, q := range neighbors {
				if q == j {
					continue
				}
				indirect += pi[q] * proportions[q][j]
			}
			c := pi[j] + indirect
			c *= c
			components[j] = c
			constraint += c
		}

		// Effective size: degree minus redundancy, redundancy of j being the
		// overlap sum_q p_iq * m_jq with m the proportional strengths of j
		var effectiveSize float64
		for _, j := range neighbors {
			redundancy := 0.0
			for _, q := range neighbors {
				if q == j {
					continue
				}
				redundancy += pi[q] * proportions[j][q]
			}
			effectiveSize += 1.0 - redundancy
		}

		efficiency := effectiveSize / float64(degree)
		hierarchy, hierarchyValid := hierarchyIndex(neighbors, components, constraint)
		if !hierarchyValid {
			hierarchy = 0
		}

		results = append(results, StructuralHoleScores{
			Country:       i,
			Degree:        degree,
			EffectiveSize: effectiveSize,
			Efficiency:    efficiency,
			Constraint:    constraint,
			Hierarchy:     hierarchy,
			Valid:         true,
		})
	}

	return results
}

// hierarchyIndex measures how concentrated the constraint is on few contacts:
// the entropy of the c_ij / C distribution, normalised by ln(n). Undefined
// for fewer than two positive components.
func hierarchyIndex(neighbors []string, components map[string]float64, constraint float64) (float64, bool) {
	if constraint <= strengthEpsilon {
		return 0, false
	}

	sum := 0.0
	positive := 0
	for _, j := range neighbors {
		ratio := components[j] / constraint
		if ratio > 0 {
			sum += ratio * math.Log(ratio)
			positive++
		}
	}
	if positive < 2 || sum >= 0 {
		return 0, false
	}
	return -sum / (float64(positive) * math.Log(float64(positive))), true
}

// sortedNeighbors returns a deterministic neighbor ordering.
func sortedNeighbors(ties map[string]float64) []string {
	neighbors := make([]string, 0, len(ties))
	for j := range ties {
		neighbors = append(neighbors, j)
	}
	sort.Strings(neighbors)
	return neighbors
}
