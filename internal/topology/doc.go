// Package topology holds the two immutable-after-load stores the planner
// queries during a search: LocationStore (TIPLOC → LocationRecord) and
// LinkStore (origin TIPLOC → destination TIPLOC → parallel NetworkLinks).
//
// Both stores are safe for concurrent readers once loading (via
// internal/bplan) has finished; each guards its own map with a single
// sync.RWMutex, using explicit, narrowly scoped locks rather than a
// package-level global.
//
// Neither store performs validation beyond what's documented on each
// method — TIPLOC shape (3-7 uppercase alphanumeric) is not itself
// enforced here; internal/request validates the TIPLOCs supplied in a
// route request against LinkStore.HasTiploc.
package topology
