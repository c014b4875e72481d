package geo

import "math"

// earthRadiusMiles is the mean radius of the Earth in statute miles, used
// for the haversine great-circle formula.
const earthRadiusMiles = 3958.7613

// Point is a WGS84 latitude/longitude pair, in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// DistanceMiles returns the great-circle (haversine) distance between a and
// b in statute miles. ok is false if either point is absent; callers must
// not use the returned distance in that case.
func DistanceMiles(a Point, aOK bool, b Point, bOK bool) (miles float64, ok bool) {
	if !aOK || !bOK {
		return 0, false
	}

	lat1 := degToRad(a.Lat)
	lat2 := degToRad(b.Lat)
	dLat := degToRad(b.Lat - a.Lat)
	dLon := degToRad(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMiles * c, true
}

func degToRad(d float64) float64 { return d * math.Pi / 180 }
func radToDeg(r float64) float64 { return r * 180 / math.Pi }

// MilesToMetres converts statute miles to metres. Exists so that the
// planner's deliberate choice not to normalise units between the heuristic
// (miles) and edge cost (metres) is visible as a choice a caller could make
// differently, not an oversight — see internal/planner's numeric notes.
func MilesToMetres(miles float64) float64 { return miles * 1609.344 }

// MetresToMiles converts metres to statute miles. See MilesToMetres.
func MetresToMiles(metres float64) float64 { return metres / 1609.344 }
