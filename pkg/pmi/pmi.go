// Package pmi turns a year's merged trade matrix into statistically weighted
// directed edges. Pairwise pointwise mutual information is computed from the
// symmetric trade-intensity marginals; only pairs trading more than expected
// under independence (PMI > 0) survive as edges.
package pmi

import (
	"fmt"
	"math"

	"github.com/dd0wney/lngnet/pkg/trade"
)

// epsilon guards divisions against float underflow in the marginals.
const epsilon = 1e-12

// WeightedEdge is a surviving directed edge. Weight is the raw PMI value
// (log2 base); the positive filter guarantees Weight > 0.
type WeightedEdge struct {
	Year        int     `json:"year"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Weight      float64 `json:"weight"`
	Volume      float64 `json:"volume"`
}

// DegenerateDistributionError reports a year whose trade matrix cannot
// support a probability distribution (empty, or zero marginal mass).
// The pipeline skips the year and continues.
type DegenerateDistributionError struct {
	Year   int
	Reason string
}

func (e *DegenerateDistributionError) Error() string {
	return fmt.Sprintf("degenerate trade distribution for year %d: %s", e.Year, e.Reason)
}

// Score computes the PMI of an ordered pair given precomputed marginals.
// Returns the log2 PMI, or an error when a marginal vanishes for a pair
// that has positive volume (which indicates corrupted intensities).
func Score(pJoint, pOrigin, pDestination float64) (float64, error) {
	if pJoint <= epsilon {
		return 0, fmt.Errorf("joint probability vanished (%g)", pJoint)
	}
	denom := pOrigin * pDestination
	if denom <= epsilon*epsilon {
		return 0, fmt.Errorf("marginal probability vanished (%g * %g)", pOrigin, pDestination)
	}
	return math.Log2(pJoint / denom), nil
}

// Weight computes the surviving weighted edge set for one year's matrix.
// Edges are returned in the matrix's deterministic pair order.
func Weight(m *trade.Matrix) ([]WeightedEdge, error) {
	if m.Len() == 0 {
		return nil, &DegenerateDistributionError{Year: m.Year, Reason: "no trade records"}
	}

	countryIntensity, pairIntensity := m.Intensities()

	var totalCountry, totalPair float64
	for _, v := range countryIntensity {
		totalCountry += v
	}
	for _, v := range pairIntensity {
		totalPair += v
	}
	if totalCountry <= epsilon || totalPair <= epsilon {
		return nil, &DegenerateDistributionError{Year: m.Year, Reason: "zero total trade intensity"}
	}

	edges := make([]WeightedEdge, 0, m.Len())
	for _, p := range m.Pairs() {
		volume := m.Volume(p.Origin, p.Destination)

		pJoint := pairIntensity[trade.NewUnorderedPair(p.Origin, p.Destination)] / totalPair
		pOrigin := countryIntensity[p.Origin] / totalCountry
		pDestination := countryIntensity[p.Destination] / totalCountry

		score, err := Score(pJoint, pOrigin, pDestination)
		if err != nil {
			// T_ij > 0 implies both marginals > 0; reaching here means the
			// intensity bookkeeping is broken for this year.
			return nil, &DegenerateDistributionError{Year: m.Year, Reason: err.Error()}
		}

		// Only above-independence pairs model genuine dependency.
		if score <= 0 {
			continue
		}

		edges = append(edges, WeightedEdge{
			Year:        m.Year,
			Origin:      p.Origin,
			Destination: p.Destination,
			Weight:      score,
			Volume:      volume,
		})
	}

	return edges, nil
}

// Table computes the full raw PMI matrix over the year's country set,
// zero on the diagonal and for pairs that never traded. Row order follows
// the returned country slice (lexical). Consumed by the matrix adapters.
func Table(m *trade.Matrix) ([]string, [][]float64, error) {
	if m.Len() == 0 {
		return nil, nil, &DegenerateDistributionError{Year: m.Year, Reason: "no trade records"}
	}

	countryIntensity, pairIntensity := m.Intensities()

	var totalCountry, totalPair float64
	for _, v := range countryIntensity {
		totalCountry += v
	}
	for _, v := range pairIntensity {
		totalPair += v
	}
	if totalCountry <= epsilon || totalPair <= epsilon {
		return nil, nil, &DegenerateDistributionError{Year: m.Year, Reason: "zero total trade intensity"}
	}

	countries := m.Countries()
	index := make(map[string]int, len(countries))
	for i, c := range countries {
		index[c] = i
	}

	values := make([][]float64, len(countries))
	for i := range values {
		values[i] = make([]float64, len(countries))
	}

	for i, origin := range countries {
		for j, destination := range countries {
			if i == j {
				continue
			}
			co := pairIntensity[trade.NewUnorderedPair(origin, destination)]
			if co <= epsilon {
				continue
			}
			pJoint := co / totalPair
			pOrigin := countryIntensity[origin] / totalCountry
			pDestination := countryIntensity[destination] / totalCountry
			score, err := Score(pJoint, pOrigin, pDestination)
			if err != nil {
				return nil, nil, &DegenerateDistributionError{Year: m.Year, Reason: err.Error()}
			}
			values[i][j] = score
		}
	}

	return countries, values, nil
}
