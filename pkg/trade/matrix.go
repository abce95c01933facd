package trade

import (
	"fmt"
	"sort"
)

// Pair is an ordered (origin, destination) country pair.
type Pair struct {
	Origin      string
	Destination string
}

// UnorderedPair is a country pair with its members in lexical order, used
// to key symmetric co-trading intensity.
type UnorderedPair struct {
	A string
	B string
}

// NewUnorderedPair returns the canonical unordered form of (a, b).
func NewUnorderedPair(a, b string) UnorderedPair {
	if b < a {
		a, b = b, a
	}
	return UnorderedPair{A: a, B: b}
}

// Matrix is one year's merged trade matrix. Duplicate records for the same
// ordered pair are summed on insert; self-loops and non-positive volumes are
// dropped and counted, never stored.
type Matrix struct {
	Year    int
	volumes map[Pair]float64

	// Insert statistics for the run summary
	Accepted        int
	DroppedSelfLoop int
	DroppedVolume   int
}

// NewMatrix creates an empty trade matrix for one year.
func NewMatrix(year int) *Matrix {
	return &Matrix{
		Year:    year,
		volumes: make(map[Pair]float64),
	}
}

// Add merges a record into the matrix. Records for other years are rejected;
// self-loops and non-positive volumes are silently dropped (counted).
func (m *Matrix) Add(rec TradeRecord) error {
	rec.Normalize()
	if err := rec.Validate(); err != nil {
		return err
	}
	if rec.Year != m.Year {
		return fmt.Errorf("record year %d does not match matrix year %d", rec.Year, m.Year)
	}
	if rec.Origin == rec.Destination {
		m.DroppedSelfLoop++
		return nil
	}
	if rec.Volume <= 0 {
		m.DroppedVolume++
		return nil
	}

	m.volumes[Pair{Origin: rec.Origin, Destination: rec.Destination}] += rec.Volume
	m.Accepted++
	return nil
}

// Volume returns the merged volume for an ordered pair, zero if absent.
func (m *Matrix) Volume(origin, destination string) float64 {
	return m.volumes[Pair{Origin: origin, Destination: destination}]
}

// Pairs returns all ordered pairs with positive volume, sorted for
// deterministic iteration.
func (m *Matrix) Pairs() []Pair {
	pairs := make([]Pair, 0, len(m.volumes))
	for p := range m.volumes {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Origin != pairs[j].Origin {
			return pairs[i].Origin < pairs[j].Origin
		}
		return pairs[i].Destination < pairs[j].Destination
	})
	return pairs
}

// Countries returns the sorted set of countries appearing in the matrix.
func (m *Matrix) Countries() []string {
	seen := make(map[string]struct{}, len(m.volumes)*2)
	for p := range m.volumes {
		seen[p.Origin] = struct{}{}
		seen[p.Destination] = struct{}{}
	}
	countries := make([]string, 0, len(seen))
	for c := range seen {
		countries = append(countries, c)
	}
	sort.Strings(countries)
	return countries
}

// Len returns the number of distinct ordered pairs.
func (m *Matrix) Len() int {
	return len(m.volumes)
}

// GrandTotal returns the sum of all merged volumes.
func (m *Matrix) GrandTotal() float64 {
	var total float64
	for _, v := range m.volumes {
		total += v
	}
	return total
}

// Intensities computes the symmetric trade-intensity marginals used by the
// PMI weighting: each country's intensity counts its volume in both the
// origin and destination role, and pair co-intensity is keyed by the
// unordered pair so that i->j and j->i flows pool together.
func (m *Matrix) Intensities() (country map[string]float64, pair map[UnorderedPair]float64) {
	country = make(map[string]float64)
	pair = make(map[UnorderedPair]float64)
	for p, v := range m.volumes {
		country[p.Origin] += v
		country[p.Destination] += v
		pair[NewUnorderedPair(p.Origin, p.Destination)] += v
	}
	return country, pair
}
