package topology

import (
	"strings"
	"sync"

	"golang.org/x/exp/slices"
)

// NetworkLink is the in-memory representation of a BPLAN NWK record — a
// directed edge from Origin to Destination.
type NetworkLink struct {
	Origin      string
	Destination string

	LineCode        string
	LineDescription string

	InitialDirection string // "U" or "D"
	FinalDirection   string // "U" or "D"

	// Distance is nilable: a blank BPLAN distance field is absent, not
	// zero.
	Distance *int

	Reversible string // one of {Y, N, B, R}; only "Y" vs not-"Y" is observed.

	// Ancillary BPLAN attributes: carried, never consulted by the planner.
	DOOP              string
	DOONP             string
	RETB              string
	Zone              string
	Power             string
	RouteAvailability string
	MaxLength         string
}

// DirectionSummary is the {initial_direction, final_direction, reversible}
// triple the planner consults at every edge expansion.
type DirectionSummary struct {
	InitialDirection string
	FinalDirection   string
	Reversible       string
}

// NoDistanceSentinel is returned by MinDistance when no parallel link
// between a pair carries a usable (positive, non-blank) distance.
// internal/planner also consults it directly to detect a degenerate step
// cost requiring substitution.
const NoDistanceSentinel = 999999

// IsBusLink reports whether a line code or description marks the link as a
// bus service, to be excluded at load time. The loader (internal/bplan)
// calls this before Insert; LinkStore itself has no opinion about link
// content.
func IsBusLink(lineCode, lineDescription string) bool {
	return strings.EqualFold(strings.TrimSpace(lineCode), "BUS") ||
		strings.EqualFold(strings.TrimSpace(lineDescription), "BUS")
}

// LinkStore is an immutable-after-load, concurrency-safe catalogue of
// directed NetworkLinks, keyed origin → destination → ordered parallel
// links. Parallel edges between the same ordered pair are preserved in
// insertion order.
type LinkStore struct {
	mu    sync.RWMutex
	index map[string]map[string][]*NetworkLink
	// order records, per origin, the destination TIPLOCs in first-seen
	// order — Neighbours must preserve insertion order even though the
	// backing map does not.
	order map[string][]string
}

// NewLinkStore returns an empty LinkStore ready for loading.
func NewLinkStore() *LinkStore {
	return &LinkStore{
		index: make(map[string]map[string][]*NetworkLink),
		order: make(map[string][]string),
	}
}

// Insert appends link to index[link.Origin][link.Destination]. BUS-typed
// links must be filtered by the caller before Insert (internal/bplan does
// this at load time) — Insert itself has no opinion about link content.
func (s *LinkStore) Insert(link *NetworkLink) {
	if link == nil || link.Origin == "" || link.Destination == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	byDest, ok := s.index[link.Origin]
	if !ok {
		byDest = make(map[string][]*NetworkLink)
		s.index[link.Origin] = byDest
	}

	if _, seen := byDest[link.Destination]; !seen {
		s.order[link.Origin] = append(s.order[link.Origin], link.Destination)
	}
	byDest[link.Destination] = append(byDest[link.Destination], link)
}

// Neighbours returns the destination TIPLOCs reachable from tiploc, in the
// order they were first inserted. Empty (nil) if tiploc is not a known
// origin.
func (s *LinkStore) Neighbours(tiploc string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order := s.order[tiploc]
	if order == nil {
		return nil
	}
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// LinksBetween returns the parallel links from a to b, in insertion order.
// Exists for callers that need more than the aggregated MinDistance or
// DirectionSummary views — internal/snapshot persists every parallel link
// verbatim so a reload round-trips exactly what was loaded.
func (s *LinkStore) LinksBetween(a, b string) []*NetworkLink {
	s.mu.RLock()
	defer s.mu.RUnlock()
	links := s.index[a][b]
	out := make([]*NetworkLink, len(links))
	copy(out, links)
	return out
}

// HasTiploc reports whether tiploc appears as an origin in the store. This
// is the validity predicate internal/request uses for start/end/via/avoid
// TIPLOCs.
func (s *LinkStore) HasTiploc(tiploc string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[tiploc]
	return ok
}

// MinDistance returns the minimum strictly positive distance among all
// parallel links from a to b. Links with a blank or zero distance are
// ignored. If no parallel link carries a usable distance (including when
// (a,b) is entirely absent), the sentinel 999999 is returned, matching
// network_links.py's `_min = 999999` loop.
func (s *LinkStore) MinDistance(a, b string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	links := s.index[a][b]
	min := NoDistanceSentinel
	for _, l := range links {
		if l.Distance == nil {
			continue
		}
		d := *l.Distance
		if d > 0 && d < min {
			min = d
		}
	}
	return min
}

// DirectionSummary returns the {initial_direction, final_direction,
// reversible} triple for the link(s) from a to b, or ok=false if (a,b) is
// absent.
//
// When several parallel links exist between a and b, the fields of the
// LAST one enumerated win — not the shortest, not the first. This is a
// preserved, deliberate reference behaviour, not a bug: it mirrors
// network_links.py's reversable_data, which simply overwrites its working
// variables across the loop rather than selecting a "best" parallel link.
// The loop is seeded with initial_direction="U", final_direction="U",
// reversible="N" (also from the reference), but every enumerated link
// overwrites all three fields, blank ones included: a link with blank
// direction fields reports those blank values, not the seed.
func (s *LinkStore) DirectionSummary(a, b string) (DirectionSummary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	links, ok := s.index[a][b]
	if !ok {
		return DirectionSummary{}, false
	}

	summary := DirectionSummary{InitialDirection: "U", FinalDirection: "U", Reversible: "N"}
	for _, l := range links {
		summary.InitialDirection = l.InitialDirection
		summary.FinalDirection = l.FinalDirection
		summary.Reversible = l.Reversible
	}
	return summary, true
}

// AllRunningLines returns the ordered set (deduplicated, sorted) of line
// codes among all parallel links from a to b. A link with a blank running
// line code is represented as "<initial_direction>L" (e.g. "UL") rather
// than an empty string, per network_links.py's get_all_lines — this is a
// UI helper, out of the planning hot path.
func (s *LinkStore) AllRunningLines(a, b string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	links, ok := s.index[a][b]
	if !ok {
		return nil
	}

	seen := make(map[string]struct{}, len(links))
	var lines []string
	for _, l := range links {
		code := strings.TrimSpace(l.LineCode)
		if code == "" {
			code = l.InitialDirection + "L"
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		lines = append(lines, code)
	}

	slices.Sort(lines)
	return lines
}
