package sssp

import "container/heap"

// BaseCaseResult is the output of BaseCase: boundary b and settled set U.
type BaseCaseResult struct {
	B float64
	U []int
}

type heapElement struct {
	vertex int
	dist   float64
	hops   int
}

type baseCaseHeap []heapElement

func (h baseCaseHeap) Len() int { return len(h) }
func (h baseCaseHeap) Less(i, j int) bool {
	if h[i].dist != h[j].dist {
		return h[i].dist < h[j].dist
	}
	if h[i].hops != h[j].hops {
		return h[i].hops < h[j].hops
	}
	return h[i].vertex < h[j].vertex
}
func (h baseCaseHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *baseCaseHeap) Push(x any)        { *h = append(*h, x.(heapElement)) }
func (h *baseCaseHeap) Pop() any {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// BaseCase runs a bounded Dijkstra from the singleton source set S = {x},
// settling vertices until either the heap empties or k+1 distinct
// vertices have been settled. S must hold exactly one vertex within
// [0, |V|), else an error is returned.
func BaseCase(graph Graph, labels *Labels, b float64, s []int, k int) (BaseCaseResult, error) {
	if len(s) != 1 {
		return BaseCaseResult{}, ErrNonSingletonSourceSet
	}
	x := s[0]
	if x < 0 || x >= len(graph) {
		return BaseCaseResult{}, ErrSourceOutOfBounds
	}

	settled := []int{x}
	settledSet := map[int]struct{}{x: {}}

	h := &baseCaseHeap{{vertex: x, dist: labels.Dist[x], hops: labels.Hops[x]}}
	heap.Init(h)
	inHeap := map[int]struct{}{x: {}}

	for h.Len() > 0 && len(settled) < k+1 {
		top := heap.Pop(h).(heapElement)
		u := top.vertex

		if _, already := settledSet[u]; already && u != x {
			continue
		}
		if top.dist > labels.Dist[u] {
			continue
		}

		if u != x {
			settled = append(settled, u)
			settledSet[u] = struct{}{}
		}
		delete(inHeap, u)

		if u < 0 || u >= len(graph) {
			continue
		}
		for _, edge := range graph[u] {
			v := edge.To
			newDist := labels.Dist[u] + edge.Weight
			if newDist > labels.Dist[v] || newDist >= b {
				continue
			}
			// The edge is tight regardless of whether TryRelax moves the
			// label: v must still be expanded so its own outgoing edges get
			// walked, even when an earlier layer already settled it at this
			// exact distance.
			labels.TryRelax(u, v, newDist)
			heap.Push(h, heapElement{vertex: v, dist: labels.Dist[v], hops: labels.Hops[v]})
			inHeap[v] = struct{}{}
		}
	}

	if len(settled) <= k {
		return BaseCaseResult{B: b, U: settled}, nil
	}

	maxDist := -Inf
	for _, v := range settled {
		if labels.Dist[v] > maxDist {
			maxDist = labels.Dist[v]
		}
	}

	var u []int
	for _, v := range settled {
		if labels.Dist[v] < maxDist {
			u = append(u, v)
		}
	}
	return BaseCaseResult{B: maxDist, U: u}, nil
}
