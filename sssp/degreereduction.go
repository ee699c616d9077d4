package sssp

// Degree-reduction pre-transform: rewrites the graph without changing
// distances. Each original vertex v with d distinct neighbours (vertices it
// points to or that point to it) becomes a zero-weight directed cycle of d
// "slot" vertices, one per neighbour; the original edge u->v (weight w)
// becomes an edge from u's v-slot to v's u-slot of the same weight. Without
// parallel edges, every slot has at most two outgoing edges: one cycle edge
// and one cross edge.
//
// This is exposed only behind Options.Reduce: BMSSP already runs in
// O(m log^(2/3) n) on graphs of arbitrary degree, so the transform exists
// for callers that specifically want a degree-bounded graph shape rather
// than for any change in the result.

// slotMap records, for one original vertex, its ordered list of distinct
// neighbours (both the vertices it points to and the vertices that point
// to it — a cross edge u->v needs both u's v-slot and v's u-slot to
// exist) and the slot index assigned to each.
type slotMap struct {
	neighbours []int       // distinct neighbour ids, ascending
	indexOf    map[int]int // neighbour id -> slot index within neighbours
}

// buildSlotMaps assigns a slot to every (vertex, distinct neighbour) pair,
// in ascending neighbour-id order so that slot 0 is always the
// deterministic representative slot for its vertex.
func buildSlotMaps(graph Graph) []slotMap {
	n := len(graph)
	seen := make([]map[int]struct{}, n)
	for v := range seen {
		seen[v] = make(map[int]struct{})
	}
	for u := range graph {
		for _, e := range graph[u] {
			seen[u][e.To] = struct{}{}
			seen[e.To][u] = struct{}{}
		}
	}

	maps := make([]slotMap, n)
	for v := 0; v < n; v++ {
		neighbours := make([]int, 0, len(seen[v]))
		for w := range seen[v] {
			neighbours = append(neighbours, w)
		}
		sortInts(neighbours)
		indexOf := make(map[int]int, len(neighbours))
		for i, w := range neighbours {
			indexOf[w] = i
		}
		maps[v] = slotMap{neighbours: neighbours, indexOf: indexOf}
	}
	return maps
}

func sortInts(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// reducedGraph is the result of transforming a graph: slot-indexed adjacency
// plus the bookkeeping needed to project labels back onto the original
// vertices.
type reducedGraph struct {
	graph     Graph
	offsets   []int // offsets[v] = first slot id for original vertex v
	slotOwner []int // slotOwner[slot] = original vertex id
	repSlot   []int // repSlot[v] = representative slot id for vertex v
}

// buildReducedGraph performs the degree-reduction transform described
// above, returning the slot graph and the data needed to map slot
// distances back onto original vertex ids.
func buildReducedGraph(graph Graph) reducedGraph {
	n := len(graph)
	maps := buildSlotMaps(graph)

	offsets := make([]int, n)
	total := 0
	for v := 0; v < n; v++ {
		offsets[v] = total
		d := len(maps[v].neighbours)
		if d == 0 {
			d = 1 // isolated vertices still get one slot, their representative
		}
		total += d
	}

	slotOwner := make([]int, total)
	repSlot := make([]int, n)
	for v := 0; v < n; v++ {
		d := len(maps[v].neighbours)
		if d == 0 {
			d = 1
		}
		for i := 0; i < d; i++ {
			slotOwner[offsets[v]+i] = v
		}
		repSlot[v] = offsets[v] // smallest-neighbour-id slot is always index 0
	}

	slotGraph := NewGraph(total)

	// Zero-weight cycle through every vertex's slots, in ascending
	// neighbour-id order, so slot i connects to slot (i+1)%d.
	for v := 0; v < n; v++ {
		d := len(maps[v].neighbours)
		if d <= 1 {
			continue
		}
		base := offsets[v]
		for i := 0; i < d; i++ {
			next := (i + 1) % d
			slotGraph.AddEdge(base+i, base+next, 0)
		}
	}

	// Each original edge u->v(w) becomes an edge from u's v-slot to v's
	// u-slot, carrying the original weight.
	for u := 0; u < n; u++ {
		for _, e := range graph[u] {
			v := e.To
			uSlot := offsets[u] + maps[u].indexOf[v]
			vSlot := offsets[v] + maps[v].indexOf[u]
			slotGraph.AddEdge(uSlot, vSlot, e.Weight)
		}
	}

	return reducedGraph{graph: slotGraph, offsets: offsets, slotOwner: slotOwner, repSlot: repSlot}
}

// computeSSSPReduced runs ComputeSSSP's BMSSP driver over the
// degree-reduced transform of graph, then projects the slot distances back
// onto the original vertex set by taking, for each original vertex, the
// minimum distance over all of its slots.
func computeSSSPReduced(graph Graph, source int, opts Options) (Result, error) {
	n := len(graph)
	rg := buildReducedGraph(graph)

	slotLabels, stats, err := runBMSSP(rg.graph, rg.repSlot[source], opts.CollectStats)
	if err != nil {
		return Result{}, err
	}
	if opts.Finalize {
		finalizeDijkstra(rg.graph, slotLabels, rg.repSlot[source])
	}

	dist := make([]float64, n)
	pred := make([]int, n)
	for v := range dist {
		dist[v] = Inf
		pred[v] = noPred
	}

	for slot, owner := range rg.slotOwner {
		if slotLabels.Dist[slot] < dist[owner] {
			dist[owner] = slotLabels.Dist[slot]
			slotPred := slotLabels.Pred[slot]
			if slotPred == noPred {
				pred[owner] = noPred
			} else {
				pred[owner] = rg.slotOwner[slotPred]
			}
		}
	}
	dist[source] = 0
	pred[source] = noPred

	return Result{Dist: dist, Pred: pred, Stats: stats}, nil
}
