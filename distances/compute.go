package distances

import (
	"container/heap"

	"github.com/katalvlaran/msplan/labels"
	"github.com/katalvlaran/msplan/transys"
)

// edge is a weighted directed edge used internally by the Dijkstra
// runner below, adapted from dijkstra.nodeItem/nodePQ.
type edge struct {
	to     int
	weight int64
}

// Compute runs uniform-cost shortest paths over ts's label-grouped
// transitions (SPEC_FULL.md §4.2 "compute(ts)"), using each group's
// cost (the minimum over its member labels) as the weight of every
// transition it holds. It returns fresh init and goal distances; ts
// itself is read-only.
func Compute(ts *transys.TransitionSystem, table *labels.Table) *Distances {
	n := ts.NumStates()
	fwd := make([][]edge, n)
	bwd := make([][]edge, n)
	for _, gid := range ts.GroupIDs() {
		group, trans, _ := ts.Group(gid)
		if group.IsTombstone() {
			continue
		}
		w := group.Cost
		for _, t := range trans {
			fwd[t.Source] = append(fwd[t.Source], edge{to: int(t.Target), weight: w})
			bwd[t.Target] = append(bwd[t.Target], edge{to: int(t.Source), weight: w})
		}
	}

	initSrc := make([]int, len(ts.InitStates()))
	for i, s := range ts.InitStates() {
		initSrc[i] = int(s)
	}
	goalSrc := make([]int, 0, len(ts.GoalStates()))
	for _, s := range ts.GoalStates() {
		goalSrc = append(goalSrc, int(s))
	}

	return &Distances{
		Init: multiSourceDijkstra(n, fwd, initSrc),
		Goal: multiSourceDijkstra(n, bwd, goalSrc),
	}
}

// multiSourceDijkstra seeds the heap with every source at distance 0
// and relaxes adj the same lazy decrease-key way
// github.com/katalvlaran/lvlath/dijkstra does: push duplicates,
// ignore stale pops via a visited set.
func multiSourceDijkstra(n int, adj [][]edge, sources []int) []int64 {
	dist := make([]int64, n)
	visited := make([]bool, n)
	for i := range dist {
		dist[i] = Inf
	}

	pq := make(nodePQ, 0, n)
	heap.Init(&pq)
	for _, s := range sources {
		if dist[s] != 0 {
			dist[s] = 0
			heap.Push(&pq, &nodeItem{id: s, dist: 0})
		}
	}

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*nodeItem)
		u, d := item.id, item.dist
		if visited[u] {
			continue
		}
		visited[u] = true

		for _, e := range adj[u] {
			newDist := d + e.weight
			if newDist < dist[e.to] {
				dist[e.to] = newDist
				heap.Push(&pq, &nodeItem{id: e.to, dist: newDist})
			}
		}
	}

	return dist
}

type nodeItem struct {
	id   int
	dist int64
}

type nodePQ []*nodeItem

func (pq nodePQ) Len() int            { return len(pq) }
func (pq nodePQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq nodePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
