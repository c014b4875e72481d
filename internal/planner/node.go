package planner

import "container/heap"

// node is a single search node, kept in a per-leg arena and referenced by
// arena index in the open set and parent links (the closed set is keyed by
// TIPLOC) rather than by pointer — mirroring the index-based vertex handling lvlath's
// core package uses for its adjacency structures.
type node struct {
	tiploc string

	// parent is the arena index of the predecessor on the best path found
	// so far, or -1 for a node with no parent (the leg's start node).
	parent int

	// pathCost is the accumulated edge cost in metres, substituting a
	// degenerate (0 or 999999) step cost with the parent's own pathCost —
	// see Leg.
	pathCost int

	// rawStepCost is the un-substituted min_distance value for the edge
	// that created this node, retained only for diagnostics.
	rawStepCost int

	// distanceToGo is the straight-line distance (miles) from this node to
	// the leg's end TIPLOC, or inherited from the parent when coordinates
	// are unavailable.
	distanceToGo float64

	// heuristic is the open-set priority key. It is intentionally left at
	// its zero value when a node is first created, and is only ever set
	// explicitly for the start node (seeded to its straight-line distance)
	// or via a later relax while the node is still open. Do not "fix" this
	// to compute a more informed key — see doc.go.
	heuristic float64
}

// pqItem is a single entry in the open-set heap: an arena index paired
// with the heuristic value at the time it was pushed, plus a monotonic
// sequence number that breaks ties deterministically by insertion order,
// matching a reference min() implementation that returns the first
// element achieving the minimum key.
type pqItem struct {
	arenaIdx  int
	heuristic float64
	seq       int
}

// openPQ is a min-heap of pqItem ordered by heuristic, then by seq. Stale
// entries (superseded by a later relax, or referring to a now-closed
// tiploc) are detected and skipped lazily at pop time rather than
// removed in place — the same lazy-decrease-key strategy as
// dijkstra.nodePQ.
type openPQ []pqItem

func (pq openPQ) Len() int { return len(pq) }

func (pq openPQ) Less(i, j int) bool {
	if pq[i].heuristic != pq[j].heuristic {
		return pq[i].heuristic < pq[j].heuristic
	}
	return pq[i].seq < pq[j].seq
}

func (pq openPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *openPQ) Push(x any) { *pq = append(*pq, x.(pqItem)) }

func (pq *openPQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

var _ heap.Interface = (*openPQ)(nil)
