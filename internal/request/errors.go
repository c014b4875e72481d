package request

import "fmt"

// Kind distinguishes the taxonomy of request-validation failures. Unlike
// builder's separate sentinel-per-failure convention, these kinds all
// carry argument-specific payloads (the offending TIPLOC, the malformed
// field name), so they are modelled as one Error type with a Kind field
// rather than N bare sentinel vars — errors.Is still works via Error.Is,
// matched on Kind alone.
type Kind string

const (
	// KindUnknownTiploc: a start/end/via/avoid TIPLOC is not in the link
	// store.
	KindUnknownTiploc Kind = "unknown-tiploc"
	// KindBadList: via or avoid was supplied in a non-list shape.
	KindBadList Kind = "bad-list"
)

// Error is the single error type Validate returns. RequestID, when
// non-empty, is a google/uuid string minted per request for log
// correlation.
type Error struct {
	Kind      Kind
	RequestID string

	// Tiploc is set for KindUnknownTiploc: the offending TIPLOC.
	Tiploc string
	// Suggestions is set for KindUnknownTiploc: fuzzy matches from
	// internal/topology.LocationStore.FuzzyMatch.
	Suggestions []string

	// Argument is set for KindBadList: which request field was malformed
	// ("via" or "avoid").
	Argument string
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindUnknownTiploc:
		return fmt.Sprintf("request %s: unknown tiploc %q (suggestions: %v)", e.RequestID, e.Tiploc, e.Suggestions)
	case KindBadList:
		return fmt.Sprintf("request %s: %s must be a list of strings", e.RequestID, e.Argument)
	default:
		return fmt.Sprintf("request %s: validation failed", e.RequestID)
	}
}

// Is reports equivalence by Kind alone, so callers can write
// errors.Is(err, &request.Error{Kind: request.KindUnknownTiploc}) without
// knowing the offending TIPLOC or request ID in advance.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}
