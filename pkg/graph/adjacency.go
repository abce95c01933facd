package graph

// AdjacencyMatrix renders the graph as a dense weight matrix. Row and column
// order follow the sorted node list so indices are reproducible across runs.
func (g *Graph) AdjacencyMatrix() ([]string, [][]float64) {
	n := len(g.nodes)
	values := make([][]float64, n)
	for i := range values {
		values[i] = make([]float64, n)
	}
	for key, w := range g.weights {
		values[g.index[key.origin]][g.index[key.destination]] = w
	}
	return g.Nodes(), values
}

// Mode selects the tie direction convention used when reading the directed
// graph as an ego network.
type Mode int

const (
	// ModeOutgoing reads only edges originating at the ego.
	ModeOutgoing Mode = iota
	// ModeIncoming reads only edges terminating at the ego.
	ModeIncoming
	// ModeBoth symmetrizes the graph: w(i,j) = (W_ij + W_ji) / 2.
	ModeBoth
)

// String returns the mode name used in output labels.
func (m Mode) String() string {
	switch m {
	case ModeOutgoing:
		return "outgoing"
	case ModeIncoming:
		return "incoming"
	case ModeBoth:
		return "both"
	default:
		return "unknown"
	}
}

// TieStrengths returns, per node, the positive tie weights to its neighbors
// under the given mode. The structural-hole metrics consume this view so the
// symmetrization convention is fixed in exactly one place.
func (g *Graph) TieStrengths(mode Mode) map[string]map[string]float64 {
	ties := make(map[string]map[string]float64, len(g.nodes))
	for _, c := range g.nodes {
		ties[c] = make(map[string]float64)
	}

	switch mode {
	case ModeOutgoing:
		for key, w := range g.weights {
			ties[key.origin][key.destination] = w
		}
	case ModeIncoming:
		for key, w := range g.weights {
			ties[key.destination][key.origin] = w
		}
	case ModeBoth:
		for key, w := range g.weights {
			half := w / 2
			ties[key.origin][key.destination] += half
			ties[key.destination][key.origin] += half
		}
	}

	return ties
}
