package request

import (
	"github.com/google/uuid"

	"github.com/tiploc/vstp/internal/planner"
	"github.com/tiploc/vstp/internal/topology"
)

// Input is the raw, not-yet-validated request shape. Via and Avoid are
// `any` rather than `[]string` because the HTTP surface (cmd/routesvc)
// decodes them straight from JSON, where a caller can send a string, a
// number, or a nested object instead of a list — any such shape is
// rejected as bad-list. The CLI surface (cmd/vstp) always constructs
// Input with genuine []string values, which trivially pass the shape
// check.
type Input struct {
	Start  string
	End    string
	Via    any
	Avoid  any
	AsLegs bool
}

// DefaultSuggestionCap bounds how many fuzzy matches accompany an
// unknown-tiploc error, keeping CLI/HTTP error output readable. A cap of
// zero or less is treated as uncapped.
const DefaultSuggestionCap = 10

// Validate checks in.Start/End/Via/Avoid against links and locs and, if
// everything is well-formed, returns a planner.Request ready for
// RoutePlanner.Plan along with a freshly minted request ID for log
// correlation. Every returned error carries that same request ID.
func Validate(links *topology.LinkStore, locs *topology.LocationStore, in Input, suggestionCap int) (planner.Request, string, error) {
	requestID := uuid.NewString()

	via, err := asStringList("via", in.Via)
	if err != nil {
		return planner.Request{}, requestID, attachRequestID(err, requestID)
	}
	avoid, err := asStringList("avoid", in.Avoid)
	if err != nil {
		return planner.Request{}, requestID, attachRequestID(err, requestID)
	}

	tiplocs := append([]string{in.Start, in.End}, via...)
	for _, tpl := range tiplocs {
		if err := validateTiploc(links, locs, tpl, suggestionCap); err != nil {
			return planner.Request{}, requestID, attachRequestID(err, requestID)
		}
	}
	for _, tpl := range avoid {
		if err := validateTiploc(links, locs, tpl, suggestionCap); err != nil {
			return planner.Request{}, requestID, attachRequestID(err, requestID)
		}
	}

	return planner.Request{
		Start:  in.Start,
		End:    in.End,
		Via:    via,
		Avoid:  avoid,
		AsLegs: in.AsLegs,
	}, requestID, nil
}

func attachRequestID(err *Error, requestID string) *Error {
	err.RequestID = requestID
	return err
}

func validateTiploc(links *topology.LinkStore, locs *topology.LocationStore, tiploc string, suggestionCap int) *Error {
	if links.HasTiploc(tiploc) {
		return nil
	}
	suggestions := locs.FuzzyMatch(tiploc)
	if suggestionCap > 0 && len(suggestions) > suggestionCap {
		suggestions = suggestions[:suggestionCap]
	}
	return &Error{Kind: KindUnknownTiploc, Tiploc: tiploc, Suggestions: suggestions}
}

// asStringList accepts nil, []string, or []any-of-strings (the shape
// encoding/json produces for a JSON array decoded into `any`); anything
// else is a bad-list error keyed by name.
func asStringList(name string, v any) ([]string, *Error) {
	switch list := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return list, nil
	case []any:
		out := make([]string, len(list))
		for i, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, &Error{Kind: KindBadList, Argument: name}
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, &Error{Kind: KindBadList, Argument: name}
	}
}
