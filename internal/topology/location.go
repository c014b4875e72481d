package topology

import (
	"sort"
	"sync"

	"github.com/tiploc/vstp/internal/geo"
)

// Valid Easting/Northing ranges for the OS National Grid. Values outside
// these ranges are treated as absent (no WGS coordinates).
const (
	eastingLower  = 135263
	eastingUpper  = 658013
	northingLower = 10866
	northingUpper = 969710
)

// LocationRecord is the in-memory representation of a BPLAN LOC record.
//
// Easting and Northing are nilable (via github.com/gotidy/ptr at load
// time) to represent "OS National Grid integers, or absent" directly,
// rather than via a sentinel value.
type LocationRecord struct {
	TIPLOC string
	Name   string

	Easting  *int
	Northing *int

	// Ancillary BPLAN attributes: carried, but never consulted by the
	// planner.
	TimingPointType string
	Zone            string
	Stanox          string
	OffNetwork      string
	ForceLPB        string
}

// ValidCoordinates reports whether both Easting and Northing are present
// and fall within the documented valid ranges.
func (r *LocationRecord) ValidCoordinates() bool {
	if r == nil || r.Easting == nil || r.Northing == nil {
		return false
	}
	e, n := *r.Easting, *r.Northing
	return e >= eastingLower && e <= eastingUpper && n >= northingLower && n <= northingUpper
}

// WGS returns the WGS84 coordinates derived from the record's Easting and
// Northing, or ok=false if absent or out of range.
func (r *LocationRecord) WGS() (geo.Point, bool) {
	if !r.ValidCoordinates() {
		return geo.Point{}, false
	}
	return geo.BNGToWGS84(*r.Easting, *r.Northing)
}

// LocationStore is an immutable-after-load, concurrency-safe mapping from
// TIPLOC to LocationRecord.
type LocationStore struct {
	mu      sync.RWMutex
	records map[string]*LocationRecord
}

// NewLocationStore returns an empty LocationStore ready for loading.
func NewLocationStore() *LocationStore {
	return &LocationStore{records: make(map[string]*LocationRecord)}
}

// Insert adds or replaces the record for rec.TIPLOC. Idempotent by TIPLOC:
// the last Insert for a given TIPLOC wins, matching the reference
// behaviour (location_record.py's `_instances[self.location_code] = self`).
func (s *LocationStore) Insert(rec *LocationRecord) {
	if rec == nil || rec.TIPLOC == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.TIPLOC] = rec
}

// Get returns the record for tiploc, or nil, false if unknown.
func (s *LocationStore) Get(tiploc string) (*LocationRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[tiploc]
	return rec, ok
}

// WGS is a convenience wrapper: returns the WGS84 coordinates for tiploc,
// or ok=false if the record is absent or its coordinates are invalid.
func (s *LocationStore) WGS(tiploc string) (geo.Point, bool) {
	rec, ok := s.Get(tiploc)
	if !ok {
		return geo.Point{}, false
	}
	return rec.WGS()
}

// Tiplocs returns every known TIPLOC, sorted. Used by callers that need to
// enumerate the full store — internal/snapshot persisting a materialised
// cache, and the CLI's --dump-locations surface.
func (s *LocationStore) Tiplocs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.records))
	for t := range s.records {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// FuzzyMatch returns "TIPLOC:name" for every record whose TIPLOC or Name
// contains query as a (case-sensitive) subsequence — the reference
// behaviour (fuzzyfinder over [location_code, location_name]).
//
// Result order is not contractual beyond being deterministic for a given
// load; this implementation iterates records in TIPLOC-sorted order so
// repeated calls against the same store are reproducible.
func (s *LocationStore) FuzzyMatch(query string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tiplocs := make([]string, 0, len(s.records))
	for t := range s.records {
		tiplocs = append(tiplocs, t)
	}
	sort.Strings(tiplocs)

	var out []string
	for _, t := range tiplocs {
		rec := s.records[t]
		if isSubsequence(query, rec.TIPLOC) || isSubsequence(query, rec.Name) {
			out = append(out, rec.TIPLOC+":"+rec.Name)
		}
	}
	return out
}

// isSubsequence reports whether needle's runes appear, in order, somewhere
// within haystack (not necessarily contiguously) — a plain linear
// subsequence match, case-sensitive. A trie or suffix index would be
// over-engineering at this repo's scale.
func isSubsequence(needle, haystack string) bool {
	if needle == "" {
		return true
	}
	n := []rune(needle)
	idx := 0
	for _, r := range haystack {
		if r == n[idx] {
			idx++
			if idx == len(n) {
				return true
			}
		}
	}
	return false
}
