package request_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiploc/vstp/internal/request"
	"github.com/tiploc/vstp/internal/topology"
)

func fixtureStores() (*topology.LocationStore, *topology.LinkStore) {
	locs := topology.NewLocationStore()
	locs.Insert(&topology.LocationRecord{TIPLOC: "CREWE", Name: "Crewe"})
	locs.Insert(&topology.LocationRecord{TIPLOC: "DRBY", Name: "Derby"})

	links := topology.NewLinkStore()
	d := 5000
	links.Insert(&topology.NetworkLink{Origin: "CREWE", Destination: "DRBY", Distance: &d})
	links.Insert(&topology.NetworkLink{Origin: "DRBY", Destination: "CREWE", Distance: &d})
	return locs, links
}

func TestValidateAcceptsKnownTiplocs(t *testing.T) {
	locs, links := fixtureStores()
	req, reqID, err := request.Validate(links, locs, request.Input{
		Start: "CREWE",
		End:   "DRBY",
	}, request.DefaultSuggestionCap)
	require.NoError(t, err)
	assert.NotEmpty(t, reqID)
	assert.Equal(t, "CREWE", req.Start)
	assert.Equal(t, "DRBY", req.End)
}

func TestValidateRejectsUnknownTiploc(t *testing.T) {
	locs, links := fixtureStores()
	_, _, err := request.Validate(links, locs, request.Input{
		Start: "CREW", // typo
		End:   "DRBY",
	}, request.DefaultSuggestionCap)
	require.Error(t, err)

	var rerr *request.Error
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, request.KindUnknownTiploc, rerr.Kind)
	assert.Equal(t, "CREW", rerr.Tiploc)
	assert.Contains(t, rerr.Suggestions, "CREWE:Crewe")
}

func TestValidateRejectsBadListShape(t *testing.T) {
	locs, links := fixtureStores()
	_, _, err := request.Validate(links, locs, request.Input{
		Start: "CREWE",
		End:   "DRBY",
		Via:   "not-a-list",
	}, request.DefaultSuggestionCap)
	require.Error(t, err)

	var rerr *request.Error
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, request.KindBadList, rerr.Kind)
	assert.Equal(t, "via", rerr.Argument)
}

func TestValidateAcceptsJSONDecodedList(t *testing.T) {
	locs, links := fixtureStores()
	req, _, err := request.Validate(links, locs, request.Input{
		Start: "CREWE",
		End:   "DRBY",
		Avoid: []any{"DRBY"},
	}, request.DefaultSuggestionCap)
	require.NoError(t, err)
	assert.Equal(t, []string{"DRBY"}, req.Avoid)
}
