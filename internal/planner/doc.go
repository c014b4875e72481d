// Package planner implements the route planner's search core: a single-leg
// A* search enforcing the reversibility rule at every edge expansion, and
// a multi-leg planner that decomposes a (start, via…, end) request into
// consecutive legs and stitches their results together.
//
// Nodes live in a per-leg arena ([]node); the open set and parent links
// hold integer arena indices rather than pointers (the closed set is keyed
// by TIPLOC), following an index-based
// adjacency convention and the container/heap priority-queue shape of a
// lazy-decrease-key Dijkstra — an arena is created fresh for every leg and
// never reused across legs, so stale indices from a previous leg can never
// leak into a later one.
//
// The search does not normalise the mix of miles (straight-line heuristic
// term) and metres (accumulated edge cost) in its priority key; this is a
// deliberate, preserved quirk of the reference route-finding behaviour,
// not an oversight. A freshly discovered node's heuristic is left at its
// zero value unless later relaxed while still open — it is seeded only
// for the leg's start node (to its straight-line distance) and otherwise
// only ever assigned by a relax. Do not "fix" this to compute a more
// informed priority on node creation: the open set's effective ordering
// (near insertion-order for most nodes) is the documented, intentional
// behaviour this package reproduces.
package planner
