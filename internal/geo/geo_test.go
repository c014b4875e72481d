package geo_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiploc/vstp/internal/geo"
)

func TestDistanceMilesSymmetryAndZero(t *testing.T) {
	a := geo.Point{Lat: 53.0977, Lon: -2.4332} // Crewe-ish
	b := geo.Point{Lat: 52.9228, Lon: -1.4762} // Derby-ish

	dAB, ok := geo.DistanceMiles(a, true, b, true)
	require.True(t, ok)
	dBA, ok := geo.DistanceMiles(b, true, a, true)
	require.True(t, ok)

	assert.InDelta(t, dAB, dBA, 1e-9)

	dSelf, ok := geo.DistanceMiles(a, true, a, true)
	require.True(t, ok)
	assert.InDelta(t, 0, dSelf, 1e-9)
}

func TestDistanceMilesAbsentInput(t *testing.T) {
	a := geo.Point{Lat: 53.0977, Lon: -2.4332}

	_, ok := geo.DistanceMiles(a, true, geo.Point{}, false)
	assert.False(t, ok)

	_, ok = geo.DistanceMiles(geo.Point{}, false, a, true)
	assert.False(t, ok)
}

func TestDistanceMilesKnownSeparation(t *testing.T) {
	// London to Edinburgh, roughly 330-something statute miles as the crow flies.
	london := geo.Point{Lat: 51.5074, Lon: -0.1278}
	edinburgh := geo.Point{Lat: 55.9533, Lon: -3.1883}

	d, ok := geo.DistanceMiles(london, true, edinburgh, true)
	require.True(t, ok)
	assert.InDelta(t, 330, d, 15)
}

func TestBNGToWGS84KnownPoint(t *testing.T) {
	// Approximate OS National Grid reference for central London (TQ 30 80 area).
	p, ok := geo.BNGToWGS84(530000, 180000)
	require.True(t, ok)

	assert.InDelta(t, 51.5, p.Lat, 0.5)
	assert.InDelta(t, 0.0, p.Lon, 1.0)
}

func TestBNGToWGS84RoundTripSanity(t *testing.T) {
	for _, tc := range []struct{ e, n int }{
		{298000, 555000}, // Solway Firth area
		{543000, 355000}, // east Lincolnshire
		{400000, 300000},
	} {
		p, ok := geo.BNGToWGS84(tc.e, tc.n)
		require.True(t, ok)
		assert.False(t, math.IsNaN(p.Lat))
		assert.False(t, math.IsNaN(p.Lon))
		assert.Greater(t, p.Lat, 49.0)
		assert.Less(t, p.Lat, 61.0)
	}
}

func TestMilesMetresRoundTrip(t *testing.T) {
	miles := 12.5
	metres := geo.MilesToMetres(miles)
	back := geo.MetresToMiles(metres)
	assert.InDelta(t, miles, back, 1e-9)
}
