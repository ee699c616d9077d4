// ════════════════════════════════════════════════════════════════════════════════════════════════
// DUAN-MEHLHORN-SHAO-SU-YIN SSSP ENGINE
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Foundational Data Structures
// Component: Sub-Sorting-Barrier Single-Source Shortest Paths
//
// Description:
//   Directed, non-negative-weighted adjacency-list graph plus the labels,
//   partial-order data structure, FindPivots, BaseCase, and BMSSP driver
//   that together compute shortest paths in O(m log^(2/3) n).
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package sssp

import (
	"errors"
	"math"
)

// Inf is the distance sentinel for "unreached".
const Inf = math.MaxFloat64

// fpEpsilon is the floating-point tolerance used when comparing distances
// for exact equality in FindPivots' forest-building step.
const fpEpsilon = 1e-12

// Errors reported by the engine's fallible operations.
var (
	ErrNonSingletonSourceSet = errors.New("sssp: BaseCase requires a singleton source set")
	ErrSourceOutOfBounds     = errors.New("sssp: source vertex out of bounds")
	ErrEmptyGraph            = errors.New("sssp: graph is empty")
)

// Edge is a directed, weighted edge to vertex To.
type Edge struct {
	To     int
	Weight float64
}

// Graph is a read-only adjacency list: Graph[u] lists u's outgoing edges.
type Graph [][]Edge

// NewGraph allocates an empty adjacency list for n vertices.
func NewGraph(n int) Graph {
	return make(Graph, n)
}

// AddEdge appends a directed edge u->v with the given weight.
func (g Graph) AddEdge(u, v int, weight float64) {
	g[u] = append(g[u], Edge{To: v, Weight: weight})
}

// NumVertices returns the number of vertices in the graph.
func (g Graph) NumVertices() int { return len(g) }
