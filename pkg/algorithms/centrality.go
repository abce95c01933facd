package algorithms

import (
	"container/heap"
	"math"

	"github.com/dd0wney/lngnet/pkg/graph"
)

// distanceTolerance absorbs float drift when deciding whether two paths to
// the same node are equally short.
const distanceTolerance = 1e-9

// DegreeResult holds per-country degree centrality. Degrees are edge counts
// (classical degree centrality); Strength carries the weight sums for
// consumers that need tie mass rather than tie count.
type DegreeResult struct {
	InDegree    map[string]float64
	OutDegree   map[string]float64
	InStrength  map[string]float64
	OutStrength map[string]float64
}

// Degree computes in- and out-degree for all nodes.
func Degree(g *graph.Graph) *DegreeResult {
	result := &DegreeResult{
		InDegree:    make(map[string]float64, g.NodeCount()),
		OutDegree:   make(map[string]float64, g.NodeCount()),
		InStrength:  make(map[string]float64, g.NodeCount()),
		OutStrength: make(map[string]float64, g.NodeCount()),
	}

	for _, country := range g.Nodes() {
		in := g.IncomingEdges(country)
		out := g.OutgoingEdges(country)

		result.InDegree[country] = float64(len(in))
		result.OutDegree[country] = float64(len(out))

		var inStrength, outStrength float64
		for _, e := range in {
			inStrength += e.Weight
		}
		for _, e := range out {
			outStrength += e.Weight
		}
		result.InStrength[country] = inStrength
		result.OutStrength[country] = outStrength
	}

	return result
}

// pqItem is a pending node in the Dijkstra frontier.
type pqItem struct {
	country  string
	distance float64
}

// distanceHeap implements a min-heap over tentative distances.
type distanceHeap []pqItem

func (h distanceHeap) Len() int { return len(h) }
func (h distanceHeap) Less(i, j int) bool {
	if h[i].distance != h[j].distance {
		return h[i].distance < h[j].distance
	}
	return h[i].country < h[j].country
}
func (h distanceHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *distanceHeap) Push(x any) {
	*h = append(*h, x.(pqItem))
}

func (h *distanceHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// BetweennessCentrality computes weighted betweenness centrality for all
// nodes with Brandes' algorithm, one Dijkstra pass per source. PMI weight is
// an affinity, not a cost, so each edge's traversal distance is 1/weight:
// strongly dependent pairs are close. Ties between equally short paths split
// path counts proportionally. Scores are normalised by 1/((n-1)(n-2)) for
// directed graphs.
func BetweennessCentrality(g *graph.Graph) map[string]float64 {
	nodes := g.Nodes()

	betweenness := make(map[string]float64, len(nodes))
	for _, c := range nodes {
		betweenness[c] = 0.0
	}

	for _, source := range nodes {
		stack := make([]string, 0, len(nodes))
		predecessors := make(map[string][]string, len(nodes))
		sigma := make(map[string]float64, len(nodes))
		distance := make(map[string]float64, len(nodes))
		settled := make(map[string]bool, len(nodes))

		for _, c := range nodes {
			sigma[c] = 0.0
			distance[c] = math.Inf(1)
		}
		sigma[source] = 1.0
		distance[source] = 0.0

		pq := &distanceHeap{{country: source, distance: 0.0}}
		heap.Init(pq)

		for pq.Len() > 0 {
			item := heap.Pop(pq).(pqItem)
			v := item.country
			if settled[v] {
				continue
			}
			settled[v] = true
			stack = append(stack, v)

			for _, edge := range g.OutgoingEdges(v) {
				w := edge.Destination
				if settled[w] {
					continue
				}
				alt := distance[v] + 1.0/edge.Weight

				switch {
				case alt < distance[w]-distanceTolerance:
					distance[w] = alt
					sigma[w] = sigma[v]
					predecessors[w] = predecessors[w][:0]
					predecessors[w] = append(predecessors[w], v)
					heap.Push(pq, pqItem{country: w, distance: alt})
				case math.Abs(alt-distance[w]) <= distanceTolerance:
					sigma[w] += sigma[v]
					predecessors[w] = append(predecessors[w], v)
				}
			}
		}

		// Back-propagation in reverse settlement order
		delta := make(map[string]float64, len(stack))
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range predecessors[w] {
				delta[v] += (sigma[v] / sigma[w]) * (1.0 + delta[w])
			}
			if w != source {
				betweenness[w] += delta[w]
			}
		}
	}

	if len(nodes) > 2 {
		normFactor := 1.0 / float64((len(nodes)-1)*(len(nodes)-2))
		for c := range betweenness {
			betweenness[c] *= normFactor
		}
	}

	return betweenness
}
