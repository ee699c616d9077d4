package sssp

import "testing"

func TestBuildReducedGraphPreservesDistances(t *testing.T) {
	// 0 -> 1, 0 -> 2, 1 -> 3, 2 -> 3 (diamond); vertex 0 has out-degree 2,
	// so its slot cycle has 2 slots, exercising the zero-weight cycle edge.
	g := NewGraph(4)
	g.AddEdge(0, 1, 1)
	g.AddEdge(0, 2, 1)
	g.AddEdge(1, 3, 1)
	g.AddEdge(2, 3, 1)

	result, err := ComputeSSSP(g, 0, Options{Reduce: true, Finalize: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []float64{0, 1, 1, 2}
	for v, d := range want {
		if !almostEqual(result.Dist[v], d) {
			t.Fatalf("vertex %d: expected dist %v, got %v", v, d, result.Dist[v])
		}
	}
}

func TestBuildReducedGraphBoundsOutDegree(t *testing.T) {
	// vertex 0 fans out to 5 distinct neighbours; its slot cycle must
	// cap every slot's out-degree at 2 (one cycle edge, one cross edge).
	g := NewGraph(6)
	for v := 1; v <= 5; v++ {
		g.AddEdge(0, v, float64(v))
	}

	rg := buildReducedGraph(g)
	for slot, adj := range rg.graph {
		if len(adj) > 2 {
			t.Fatalf("slot %d has out-degree %d, want <= 2", slot, len(adj))
		}
	}
}

func TestBuildReducedGraphIsolatedVertexGetsOneSlot(t *testing.T) {
	g := NewGraph(3) // no edges at all
	rg := buildReducedGraph(g)
	if len(rg.graph) != 3 {
		t.Fatalf("expected one slot per isolated vertex, got %d slots for 3 vertices", len(rg.graph))
	}
	for v := 0; v < 3; v++ {
		if rg.slotOwner[rg.repSlot[v]] != v {
			t.Fatalf("representative slot for vertex %d does not map back to it", v)
		}
	}
}

// TestBuildSlotMapsUnionsInAndOutNeighbours exercises a vertex whose
// in-neighbours and out-neighbours are entirely disjoint sets: vertex 2
// is only ever pointed to by 0 and 1, and only ever points to 3, 4, and
// 5. Every one of those five ids must get its own slot — if the slot map
// were built from outgoing edges alone, 0 and 1 would collide on slot 0.
func TestBuildSlotMapsUnionsInAndOutNeighbours(t *testing.T) {
	g := NewGraph(6)
	g.AddEdge(0, 2, 1)
	g.AddEdge(1, 2, 1)
	g.AddEdge(2, 3, 1)
	g.AddEdge(2, 4, 1)
	g.AddEdge(2, 5, 1)

	maps := buildSlotMaps(g)
	if got := len(maps[2].neighbours); got != 5 {
		t.Fatalf("vertex 2: expected 5 distinct neighbours, got %d (%v)", got, maps[2].neighbours)
	}
	seen := make(map[int]bool)
	for _, w := range maps[2].neighbours {
		if idx := maps[2].indexOf[w]; seen[idx] {
			t.Fatalf("neighbour %d of vertex 2 collides with another on slot index %d", w, idx)
		} else {
			seen[idx] = true
		}
	}
}

// TestComputeSSSPReduceMatchesUnreducedDisjointNeighbours runs the
// disjoint in/out-neighbour graph above end to end through both the
// plain and the degree-reduced path.
func TestComputeSSSPReduceMatchesUnreducedDisjointNeighbours(t *testing.T) {
	g := NewGraph(6)
	g.AddEdge(0, 2, 1)
	g.AddEdge(1, 2, 1)
	g.AddEdge(2, 3, 1)
	g.AddEdge(2, 4, 1)
	g.AddEdge(2, 5, 1)

	plain, err := ComputeSSSP(g, 0, Options{Finalize: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reduced, err := ComputeSSSP(g, 0, Options{Reduce: true, Finalize: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for v := 0; v < 6; v++ {
		if !almostEqual(plain.Dist[v], reduced.Dist[v]) {
			t.Fatalf("vertex %d: plain=%v reduced=%v disagree", v, plain.Dist[v], reduced.Dist[v])
		}
	}
}

func TestComputeSSSPReduceMatchesUnreduced(t *testing.T) {
	g, n := randomGraph(99, 20, 5)
	plain, err := ComputeSSSP(g, 0, Options{Finalize: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reduced, err := ComputeSSSP(g, 0, Options{Reduce: true, Finalize: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for v := 0; v < n; v++ {
		if !almostEqual(plain.Dist[v], reduced.Dist[v]) {
			t.Fatalf("vertex %d: plain=%v reduced=%v disagree", v, plain.Dist[v], reduced.Dist[v])
		}
	}
}
