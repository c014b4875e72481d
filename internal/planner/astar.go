package planner

import (
	"container/heap"
	"context"

	"github.com/tiploc/vstp/internal/geo"
	"github.com/tiploc/vstp/internal/topology"
)

// LegResult is the outcome of a single start→end search.
type LegResult struct {
	// Path is the TIPLOC sequence from start to end, inclusive, in travel
	// order. Nil if Found is false.
	Path []string
	Found bool

	// PathCostMetres is the accumulated cost of Path as computed by the
	// search (including any degenerate-step substitution), for diagnostics.
	PathCostMetres int
}

// Leg runs a single-leg A* search from start to end, refusing to traverse
// any TIPLOC in avoid. avoid excludes candidate neighbours during
// expansion only; start itself is never screened against it. An end
// TIPLOC that is in avoid is skipped like any other neighbour, so such a
// leg finds no path unless start equals end.
//
// ctx is checked once per iteration of the main expansion loop; a
// cancelled context ends the search early with Found=false.
func Leg(ctx context.Context, locs *topology.LocationStore, links *topology.LinkStore, start, end string, avoid map[string]struct{}) LegResult {
	endWGS, endWGSOk := locs.WGS(end)

	arena := make([]node, 0, 64)
	openIdx := make(map[string]int)   // tiploc -> arena index, while open
	closed := make(map[string]bool)

	startWGS, startWGSOk := locs.WGS(start)
	startHeuristic, startHeuristicOk := geo.DistanceMiles(startWGS, startWGSOk, endWGS, endWGSOk)
	if !startHeuristicOk {
		startHeuristic = 0
	}

	arena = append(arena, node{
		tiploc:       start,
		parent:       -1,
		pathCost:     0,
		distanceToGo: startHeuristic,
		heuristic:    startHeuristic,
	})
	openIdx[start] = 0

	var pq openPQ
	heap.Init(&pq)
	heap.Push(&pq, pqItem{arenaIdx: 0, heuristic: startHeuristic, seq: 0})
	seq := 1

	for pq.Len() > 0 {
		select {
		case <-ctx.Done():
			return LegResult{Found: false}
		default:
		}

		item := heap.Pop(&pq).(pqItem)
		curIdx := item.arenaIdx
		cur := arena[curIdx]

		if closed[cur.tiploc] {
			continue // stale entry, superseded by a relax or already expanded
		}

		if cur.tiploc == end {
			return LegResult{Path: reconstructPath(arena, curIdx), Found: true, PathCostMetres: cur.pathCost}
		}

		closed[cur.tiploc] = true
		delete(openIdx, cur.tiploc)

		var curReversible topology.DirectionSummary
		var curReversibleOk bool
		if cur.parent != -1 {
			curReversible, curReversibleOk = links.DirectionSummary(arena[cur.parent].tiploc, cur.tiploc)
		}

		for _, nxt := range links.Neighbours(cur.tiploc) {
			if _, skip := avoid[nxt]; skip {
				continue
			}
			if closed[nxt] {
				continue
			}

			rev, revOk := links.DirectionSummary(cur.tiploc, nxt)
			if !revOk {
				continue
			}
			if !reversibilityOK(curReversible, curReversibleOk, rev) {
				continue
			}

			rawStep := links.MinDistance(cur.tiploc, nxt)
			stepCost := rawStep
			if rawStep == 0 || rawStep == topology.NoDistanceSentinel {
				stepCost = cur.pathCost
			}

			nxtWGS, nxtWGSOk := locs.WGS(nxt)
			stepHeuristic, stepHeuristicOk := geo.DistanceMiles(nxtWGS, nxtWGSOk, endWGS, endWGSOk)
			distanceToGo := stepHeuristic
			if !stepHeuristicOk {
				distanceToGo = cur.distanceToGo
			}

			if existingIdx, isOpen := openIdx[nxt]; isOpen {
				newHeuristic := cur.heuristic + float64(stepCost)
				if newHeuristic < arena[existingIdx].heuristic {
					arena[existingIdx].heuristic = newHeuristic
					arena[existingIdx].parent = curIdx
					seq++
					heap.Push(&pq, pqItem{arenaIdx: existingIdx, heuristic: newHeuristic, seq: seq})
				}
				continue
			}

			arena = append(arena, node{
				tiploc:       nxt,
				parent:       curIdx,
				pathCost:     cur.pathCost + stepCost,
				rawStepCost:  rawStep,
				distanceToGo: distanceToGo,
			})
			newIdx := len(arena) - 1
			openIdx[nxt] = newIdx
			seq++
			heap.Push(&pq, pqItem{arenaIdx: newIdx, heuristic: arena[newIdx].heuristic, seq: seq})
		}
	}

	return LegResult{Found: false}
}

// reversibilityOK enforces the reversibility rule: the direction the
// search is currently travelling (curReversible.FinalDirection, or
// rev.InitialDirection itself when cur has no established direction) must
// match the candidate edge's InitialDirection, unless the candidate edge
// is itself marked reversible.
func reversibilityOK(curReversible topology.DirectionSummary, curReversibleOk bool, rev topology.DirectionSummary) bool {
	expected := rev.InitialDirection
	if curReversibleOk {
		expected = curReversible.FinalDirection
	}
	if expected == rev.InitialDirection {
		return true
	}
	return rev.Reversible == "Y"
}

// reconstructPath walks parent links from endIdx back to the root (parent
// -1) and returns the TIPLOC sequence in travel order.
func reconstructPath(arena []node, endIdx int) []string {
	var rev []string
	for idx := endIdx; idx != -1; idx = arena[idx].parent {
		rev = append(rev, arena[idx].tiploc)
	}
	path := make([]string, len(rev))
	for i, t := range rev {
		path[len(rev)-1-i] = t
	}
	return path
}
