package sssp

import (
	"container/heap"
	"math"
)

// Params holds the two algorithm-level tuning constants derived from the
// vertex count: k controls pivot selection and base-case size, t controls
// recursion depth and partial-order block size.
type Params struct {
	K int
	T int
}

// ComputeParams derives k = floor(log2(n)^(1/3)) and t = floor(log2(n)^(2/3))
// (each clamped to a minimum of 1) from the vertex count n.
func ComputeParams(n int) Params {
	logN := math.Log2(math.Max(2, float64(n)))
	k := int(math.Floor(math.Pow(logN, 1.0/3.0)))
	t := int(math.Floor(math.Pow(logN, 2.0/3.0)))
	if k < 1 {
		k = 1
	}
	if t < 1 {
		t = 1
	}
	return Params{K: k, T: t}
}

// computeInitialLayer picks l = ceil(log2(n)/t) (at least 1 for n > 1), the
// shallowest recursion depth with 2^(lt) >= n, so the top-level call's
// width bound covers every vertex.
func computeInitialLayer(n int, p Params) int {
	if n <= 1 {
		return 0
	}
	logN := math.Log2(float64(n))
	l := int(math.Ceil(logN / float64(p.T)))
	if l < 1 {
		l = 1
	}
	return l
}

// DuanStats accumulates operation counts for one ComputeSSSP call, useful
// for validating the algorithm's claimed complexity against a given graph.
type DuanStats struct {
	EdgeRelaxations   int
	DSInserts         int
	DSBatchPrepends   int
	DSPulls           int
	BMSSPCalls        int
	MaxRecursionDepth int
}

// Result is the outcome of a top-level ComputeSSSP call.
type Result struct {
	Dist  []float64
	Pred  []int
	Stats *DuanStats // nil unless collectStats was requested
}

// BMSSPResult is the output of one BMSSP invocation: boundary b and the
// set of vertices settled (dist known final) with dist < b.
type BMSSPResult struct {
	B float64
	U []int
}

// runner threads the graph, labels, and (optional) stats counter through
// the BMSSP recursion without a global mutable singleton.
type runner struct {
	graph  Graph
	labels *Labels
	params Params
	stats  *DuanStats
	depth  int
}

// BMSSP is the recursive driver (Duan et al., Algorithm 3). At layer 0 it
// delegates to BaseCase; otherwise it reduces S to a pivot set P via
// FindPivots, drives a partial-order-scheduled sequence of layer l-1
// subproblems, and folds their results back into U.
func (r *runner) BMSSP(l int, b float64, s []int) (BMSSPResult, error) {
	r.depth++
	if r.stats != nil {
		r.stats.BMSSPCalls++
		if r.depth > r.stats.MaxRecursionDepth {
			r.stats.MaxRecursionDepth = r.depth
		}
	}
	defer func() { r.depth-- }()

	if l == 0 {
		base, err := BaseCase(r.graph, r.labels, b, s, r.params.K)
		if err != nil {
			return BMSSPResult{}, err
		}
		return BMSSPResult{B: base.B, U: base.U}, nil
	}

	pivots := FindPivots(r.graph, r.labels, b, s, r.params.K)
	p, w := pivots.P, pivots.W

	m := 1 << ((l - 1) * r.params.T)
	ds := NewPartialOrderDS()
	ds.Initialize(m, b)

	for _, x := range p {
		ds.Insert(x, r.labels.Dist[x])
		if r.stats != nil {
			r.stats.DSInserts++
		}
	}

	bLast := b
	if len(p) > 0 {
		bLast = Inf
		for _, x := range p {
			if r.labels.Dist[x] < bLast {
				bLast = r.labels.Dist[x]
			}
		}
	}

	var u []int
	seen := make(map[int]struct{})
	addUnique := func(vs []int) {
		for _, v := range vs {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			u = append(u, v)
		}
	}

	uLimit := r.params.K * (1 << (l * r.params.T))
	if n := len(r.graph) + 1; uLimit > n {
		uLimit = n
	}

	for len(u) < uLimit && !ds.Empty() {
		si, bi := ds.Pull()
		if r.stats != nil {
			r.stats.DSPulls++
		}
		if len(si) == 0 {
			break
		}

		sub, err := r.BMSSP(l-1, bi, si)
		if err != nil {
			return BMSSPResult{}, err
		}
		biNew := sub.B
		ui := sub.U

		addUnique(ui)

		k := r.relaxAndClassify(ui, biNew, bi, b, ds)
		k = append(k, collectInRange(si, r.labels, biNew, bi)...)

		if len(k) > 0 {
			ds.BatchPrepend(k)
			if r.stats != nil {
				r.stats.DSBatchPrepends++
			}
		}

		bLast = biNew
	}

	result := BMSSPResult{B: math.Min(bLast, b)}
	result.U = u
	for _, x := range w {
		if _, ok := seen[x]; ok {
			continue
		}
		if r.labels.Dist[x] < result.B {
			seen[x] = struct{}{}
			result.U = append(result.U, x)
		}
	}
	return result, nil
}

// relaxAndClassify relaxes every edge out of ui, and for each accepted
// relaxation routes the new distance into the partial-order DS (range
// [bi, b)) or into the returned batch-prepend staging slice (range
// [bLower, bi)).
func (r *runner) relaxAndClassify(ui []int, bLower, bi, b float64, ds *PartialOrderDS) []kv {
	var k []kv
	for _, u := range ui {
		if u < 0 || u >= len(r.graph) {
			continue
		}
		for _, edge := range r.graph[u] {
			v := edge.To
			newDist := r.labels.Dist[u] + edge.Weight
			if newDist > r.labels.Dist[v] {
				continue
			}
			// A tight edge is classified regardless of whether TryRelax
			// actually moved the label: v may already carry this exact
			// distance from an earlier layer's relaxation, and it still
			// needs to be fed back into the partial-order DS so its own
			// outgoing edges eventually get walked by a deeper recursion.
			if updated := r.labels.TryRelax(u, v, newDist); updated && r.stats != nil {
				r.stats.EdgeRelaxations++
			}

			switch {
			case newDist >= bi && newDist < b:
				ds.Insert(v, newDist)
				if r.stats != nil {
					r.stats.DSInserts++
				}
			case newDist >= bLower && newDist < bi:
				k = append(k, kv{key: v, value: newDist})
			}
		}
	}
	return k
}

func collectInRange(si []int, labels *Labels, bLower, bi float64) []kv {
	var k []kv
	for _, x := range si {
		if labels.Dist[x] >= bLower && labels.Dist[x] < bi {
			k = append(k, kv{key: x, value: labels.Dist[x]})
		}
	}
	return k
}

// Options configures a ComputeSSSP call.
type Options struct {
	// CollectStats requests that the returned Result carry a non-nil
	// DuanStats with operation counts from the run.
	CollectStats bool

	// Reduce routes the run through the degree-reduction pre-transform
	// (see degreereduction.go) before applying BMSSP, then projects the
	// resulting labels back onto the original vertex set. It never
	// changes the reported distances; it only bounds the out-degree
	// BMSSP sees. Off by default.
	Reduce bool

	// Finalize runs a standard Dijkstra sweep over the labels BMSSP
	// produced before returning them, visiting every reachable vertex
	// exactly once. It is a defensive safety net: BMSSP's labels are
	// already tight, so the sweep normally changes nothing. It only ever
	// tightens labels, never loosens them, so it is safe to enable
	// unconditionally.
	Finalize bool
}

// ComputeSSSP computes single-source shortest paths from source over
// graph using the recursive BMSSP driver.
func ComputeSSSP(graph Graph, source int, opts Options) (Result, error) {
	n := len(graph)
	if n == 0 {
		return Result{}, ErrEmptyGraph
	}
	if source < 0 || source >= n {
		return Result{}, ErrSourceOutOfBounds
	}

	if opts.Reduce {
		return computeSSSPReduced(graph, source, opts)
	}

	labels, stats, err := runBMSSP(graph, source, opts.CollectStats)
	if err != nil {
		return Result{}, err
	}
	if opts.Finalize {
		finalizeDijkstra(graph, labels, source)
	}
	return Result{Dist: labels.Dist, Pred: labels.Pred, Stats: stats}, nil
}

// finalizeDijkstra re-walks graph with a standard Dijkstra sweep seeded
// from labels' current values, visiting every reachable vertex exactly
// once regardless of whether its distance changes. Every vertex is pushed
// onto the heap as soon as its owner is visited, not only when relaxing
// its edge improves it, so a vertex whose distance was already correct
// still gets expanded and its own outgoing edges walked.
func finalizeDijkstra(graph Graph, labels *Labels, source int) {
	n := len(graph)
	visited := make([]bool, n)

	h := &baseCaseHeap{{vertex: source, dist: labels.Dist[source], hops: labels.Hops[source]}}
	heap.Init(h)

	for h.Len() > 0 {
		top := heap.Pop(h).(heapElement)
		u := top.vertex
		if visited[u] {
			continue
		}
		visited[u] = true

		for _, edge := range graph[u] {
			v := edge.To
			if visited[v] {
				continue
			}
			labels.TryRelax(u, v, labels.Dist[u]+edge.Weight)
			heap.Push(h, heapElement{vertex: v, dist: labels.Dist[v], hops: labels.Hops[v]})
		}
	}
}

// runBMSSP is the shared entry point used both directly by ComputeSSSP and,
// on the transformed graph, by computeSSSPReduced.
func runBMSSP(graph Graph, source int, collectStats bool) (*Labels, *DuanStats, error) {
	n := len(graph)
	labels := NewLabels(n)
	labels.Dist[source] = 0
	labels.Hops[source] = 0

	params := ComputeParams(n)
	initialLayer := computeInitialLayer(n, params)

	r := &runner{graph: graph, labels: labels, params: params}
	if collectStats {
		r.stats = &DuanStats{}
	}

	if _, err := r.BMSSP(initialLayer, Inf, []int{source}); err != nil {
		return nil, nil, err
	}
	return labels, r.stats, nil
}

// Dijkstra is the textbook reference implementation. It computes distances
// from scratch into a fresh slice and is used by the tests to cross-check
// BMSSP output; the optional finalization pass is finalizeDijkstra, which
// works on the BMSSP labels in place.
func Dijkstra(graph Graph, source int) []float64 {
	n := len(graph)
	dist := make([]float64, n)
	for i := range dist {
		dist[i] = Inf
	}
	dist[source] = 0

	visited := make([]bool, n)
	h := &dijkstraHeap{{vertex: source, dist: 0}}
	heap.Init(h)

	for h.Len() > 0 {
		top := heap.Pop(h).(dijkstraElement)
		u := top.vertex
		if visited[u] {
			continue
		}
		visited[u] = true

		for _, edge := range graph[u] {
			v := edge.To
			newDist := dist[u] + edge.Weight
			if newDist < dist[v] {
				dist[v] = newDist
				heap.Push(h, dijkstraElement{vertex: v, dist: newDist})
			}
		}
	}
	return dist
}

type dijkstraElement struct {
	vertex int
	dist   float64
}

type dijkstraHeap []dijkstraElement

func (h dijkstraHeap) Len() int           { return len(h) }
func (h dijkstraHeap) Less(i, j int) bool { return h[i].dist < h[j].dist }
func (h dijkstraHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *dijkstraHeap) Push(x any)        { *h = append(*h, x.(dijkstraElement)) }
func (h *dijkstraHeap) Pop() any {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}
