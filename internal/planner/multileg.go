package planner

import (
	"context"
	"fmt"

	"github.com/tiploc/vstp/internal/topology"
)

// Request is an already-validated route request. internal/request is
// responsible for TIPLOC and list-shape validation before a Request ever
// reaches the planner.
type Request struct {
	Start string
	End   string
	Via   []string
	Avoid []string
	// AsLegs controls whether Result.Legs is populated with per-leg TIPLOC
	// groupings in addition to the flattened Locations list.
	AsLegs bool
}

// Diagnostic records a non-fatal problem encountered while planning —
// currently only a missing leg, reported embedded in the output rather
// than raised as an error.
type Diagnostic struct {
	Kind string // "no-path-for-leg"
	From string
	To   string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: no legal route from %s to %s", d.Kind, d.From, d.To)
}

// Result is the output of a multi-leg plan.
type Result struct {
	// Locations is the flattened, boundary-deduplicated TIPLOC sequence
	// across all legs that were found. Gaps (missing legs) are simply
	// absent from the sequence — see Diagnostics for what was skipped.
	Locations []string

	// Legs holds each leg's own TIPLOC path, present only when the
	// request asked for AsLegs. A leg with no path is an empty slice.
	Legs [][]string

	Diagnostics []Diagnostic
}

// RoutePlanner drives Leg across the waypoint sequence [start] ++ via ++
// [end] a single consecutive pair at a time.
type RoutePlanner struct {
	Locations *topology.LocationStore
	Links     *topology.LinkStore
}

// NewRoutePlanner returns a RoutePlanner backed by the given stores.
func NewRoutePlanner(locs *topology.LocationStore, links *topology.LinkStore) *RoutePlanner {
	return &RoutePlanner{Locations: locs, Links: links}
}

// Plan computes a route for req. A leg with no legal path does not abort
// the request: it is recorded as a Diagnostic and the output contains a
// gap at that boundary.
func (p *RoutePlanner) Plan(ctx context.Context, req Request) Result {
	waypoints := make([]string, 0, len(req.Via)+2)
	waypoints = append(waypoints, req.Start)
	waypoints = append(waypoints, req.Via...)
	waypoints = append(waypoints, req.End)

	avoid := make(map[string]struct{}, len(req.Avoid))
	for _, a := range req.Avoid {
		avoid[a] = struct{}{}
	}

	var result Result
	for i := 0; i+1 < len(waypoints); i++ {
		from, to := waypoints[i], waypoints[i+1]

		leg := Leg(ctx, p.Locations, p.Links, from, to, avoid)
		if req.AsLegs {
			result.Legs = append(result.Legs, leg.Path)
		}
		if !leg.Found {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{Kind: "no-path-for-leg", From: from, To: to})
			continue
		}

		result.Locations = appendDedup(result.Locations, leg.Path)
	}

	return result
}

// appendDedup appends leg to locations, dropping leg's first element when
// it duplicates the current last element of locations — boundary
// deduplication between consecutive legs.
func appendDedup(locations, leg []string) []string {
	if len(leg) == 0 {
		return locations
	}
	if len(locations) > 0 && locations[len(locations)-1] == leg[0] {
		leg = leg[1:]
	}
	return append(locations, leg...)
}
