// Package request validates an incoming route request before it reaches
// internal/planner: every TIPLOC named by the caller must be known to the
// link store, and via/avoid must be well-shaped lists.
// Validation errors are collected into a single *Error type distinguished
// by Kind, following the sentinel-kind convention of builder/errors.go.
package request
