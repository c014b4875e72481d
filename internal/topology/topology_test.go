package topology_test

import (
	"testing"

	"github.com/gotidy/ptr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiploc/vstp/internal/topology"
)

func TestLocationStoreInsertLastWriteWins(t *testing.T) {
	s := topology.NewLocationStore()
	s.Insert(&topology.LocationRecord{TIPLOC: "CREWE", Name: "Crewe"})
	s.Insert(&topology.LocationRecord{TIPLOC: "CREWE", Name: "Crewe Updated"})

	rec, ok := s.Get("CREWE")
	require.True(t, ok)
	assert.Equal(t, "Crewe Updated", rec.Name)
}

func TestLocationStoreGetUnknown(t *testing.T) {
	s := topology.NewLocationStore()
	_, ok := s.Get("NOPE")
	assert.False(t, ok)
}

func TestLocationRecordValidCoordinates(t *testing.T) {
	valid := &topology.LocationRecord{TIPLOC: "A", Easting: ptr.Int(400000), Northing: ptr.Int(300000)}
	assert.True(t, valid.ValidCoordinates())

	tooLow := &topology.LocationRecord{TIPLOC: "B", Easting: ptr.Int(100), Northing: ptr.Int(300000)}
	assert.False(t, tooLow.ValidCoordinates())

	absent := &topology.LocationRecord{TIPLOC: "C"}
	assert.False(t, absent.ValidCoordinates())
	_, ok := absent.WGS()
	assert.False(t, ok)
}

func TestFuzzyMatchSubsequence(t *testing.T) {
	s := topology.NewLocationStore()
	s.Insert(&topology.LocationRecord{TIPLOC: "CREWE", Name: "Crewe"})
	s.Insert(&topology.LocationRecord{TIPLOC: "DRBY", Name: "Derby"})
	s.Insert(&topology.LocationRecord{TIPLOC: "STAFFRD", Name: "Stafford"})

	matches := s.FuzzyMatch("CRW")
	require.Len(t, matches, 1)
	assert.Equal(t, "CREWE:Crewe", matches[0])

	// Case sensitive: lowercase query against uppercase TIPLOC field misses,
	// but still matches the mixed-case Name field.
	matches = s.FuzzyMatch("erb")
	require.Len(t, matches, 1)
	assert.Equal(t, "DRBY:Derby", matches[0])
}

func TestLinkStoreInsertAndNeighboursOrderPreserved(t *testing.T) {
	s := topology.NewLinkStore()
	s.Insert(&topology.NetworkLink{Origin: "A", Destination: "C"})
	s.Insert(&topology.NetworkLink{Origin: "A", Destination: "B"})
	s.Insert(&topology.NetworkLink{Origin: "A", Destination: "C"}) // parallel edge, not a new neighbour

	assert.Equal(t, []string{"C", "B"}, s.Neighbours("A"))
	assert.True(t, s.HasTiploc("A"))
	assert.False(t, s.HasTiploc("Z"))
	assert.Nil(t, s.Neighbours("Z"))
}

func TestLinkStoreMinDistanceIgnoresBlankAndZero(t *testing.T) {
	s := topology.NewLinkStore()
	s.Insert(&topology.NetworkLink{Origin: "A", Destination: "B", Distance: ptr.Int(0)})
	s.Insert(&topology.NetworkLink{Origin: "A", Destination: "B", Distance: nil})
	s.Insert(&topology.NetworkLink{Origin: "A", Destination: "B", Distance: ptr.Int(500)})
	s.Insert(&topology.NetworkLink{Origin: "A", Destination: "B", Distance: ptr.Int(200)})

	assert.Equal(t, 200, s.MinDistance("A", "B"))
	assert.Equal(t, 999999, s.MinDistance("A", "Z"))
}

func TestLinkStoreDirectionSummaryLastWins(t *testing.T) {
	s := topology.NewLinkStore()
	s.Insert(&topology.NetworkLink{Origin: "A", Destination: "B", InitialDirection: "U", FinalDirection: "D", Reversible: "N"})
	s.Insert(&topology.NetworkLink{Origin: "A", Destination: "B", InitialDirection: "D", FinalDirection: "U", Reversible: "Y"})

	summary, ok := s.DirectionSummary("A", "B")
	require.True(t, ok)
	assert.Equal(t, "D", summary.InitialDirection)
	assert.Equal(t, "U", summary.FinalDirection)
	assert.Equal(t, "Y", summary.Reversible)

	_, ok = s.DirectionSummary("A", "Z")
	assert.False(t, ok)
}

func TestLinkStoreDirectionSummaryBlankFieldsOverrideDefaults(t *testing.T) {
	s := topology.NewLinkStore()
	s.Insert(&topology.NetworkLink{Origin: "A", Destination: "B"})

	summary, ok := s.DirectionSummary("A", "B")
	require.True(t, ok)
	assert.Equal(t, "", summary.InitialDirection) // the link's own (blank) field wins, once enumerated
	_ = summary
}

func TestLinkStoreAllRunningLinesSortedAndDeduped(t *testing.T) {
	s := topology.NewLinkStore()
	s.Insert(&topology.NetworkLink{Origin: "A", Destination: "B", LineCode: "FL", InitialDirection: "U"})
	s.Insert(&topology.NetworkLink{Origin: "A", Destination: "B", LineCode: "", InitialDirection: "U"})
	s.Insert(&topology.NetworkLink{Origin: "A", Destination: "B", LineCode: "FL", InitialDirection: "U"})
	s.Insert(&topology.NetworkLink{Origin: "A", Destination: "B", LineCode: "AL", InitialDirection: "D"})

	lines := s.AllRunningLines("A", "B")
	assert.Equal(t, []string{"AL", "FL", "UL"}, lines)
}
