package geo

import "math"

// Airy 1830 ellipsoid (OSGB36 national grid) and the National Grid's true
// origin, per the Ordnance Survey's published transform (see "A guide to
// coordinate systems in Great Britain", Annex C).
const (
	airyA  = 6377563.396
	airyB  = 6356256.909
	nGridF0 = 0.9996012717 // central meridian scale factor
	nGridLat0 = 49.0 * math.Pi / 180.0
	nGridLon0 = -2.0 * math.Pi / 180.0
	nGridN0   = -100000.0
	nGridE0   = 400000.0
)

// WGS84 ellipsoid.
const (
	wgs84A = 6378137.000
	wgs84B = 6356752.3141
)

// Seven-parameter Helmert transform, OSGB36 → WGS84 direction (translations
// in metres, rotations in arc-seconds, scale as a fraction: ppm × 1e-6).
// These are the
// negation of the published WGS84→OSGB36 parameters, the standard small-
// angle approximation used for this datum pair.
const (
	helmertTx = 446.448
	helmertTy = -125.157
	helmertTz = 542.060
	helmertRxSec = 0.1502
	helmertRySec = 0.2470
	helmertRzSec = 0.8421
	helmertScale = -20.4894e-6
)

// BNGToWGS84 converts an OS National Grid Easting/Northing pair (OSGB36
// datum) to a WGS84 latitude/longitude. ok is false if the conversion fails
// arithmetically (e.g. non-convergent iteration); this should not happen
// for any easting/northing within the documented valid ranges.
func BNGToWGS84(easting, northing int) (p Point, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			p, ok = Point{}, false
		}
	}()

	lat, lon := gridToAiryLatLon(float64(easting), float64(northing))
	latDeg, lonDeg, converged := airyToWGS84(lat, lon)
	if !converged {
		return Point{}, false
	}

	return Point{Lat: latDeg, Lon: lonDeg}, true
}

// gridToAiryLatLon inverts the Transverse Mercator projection used by the
// National Grid, returning latitude/longitude (radians) on the Airy 1830
// ellipsoid (OSGB36 datum, pre-Helmert-shift).
func gridToAiryLatLon(easting, northing float64) (lat, lon float64) {
	e2 := 1 - (airyB*airyB)/(airyA*airyA)
	n := (airyA - airyB) / (airyA + airyB)

	lat = nGridLat0
	m := 0.0
	for {
		lat = (northing-nGridN0-m)/(airyA*nGridF0) + lat

		dLat := lat - nGridLat0
		sLat := lat + nGridLat0
		m = airyB * nGridF0 * (
			(1+n+1.25*n*n+1.25*n*n*n)*dLat -
				(3*n+3*n*n+21.0/8*n*n*n)*math.Sin(dLat)*math.Cos(sLat) +
				(15.0/8*n*n+15.0/8*n*n*n)*math.Sin(2*dLat)*math.Cos(2*sLat) -
				35.0/24*n*n*n*math.Sin(3*dLat)*math.Cos(3*sLat))

		if math.Abs(northing-nGridN0-m) < 0.00001 {
			break
		}
	}

	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)
	nu := airyA * nGridF0 / math.Sqrt(1-e2*sinLat*sinLat)
	rho := airyA * nGridF0 * (1 - e2) / math.Pow(1-e2*sinLat*sinLat, 1.5)
	eta2 := nu/rho - 1

	tanLat := math.Tan(lat)
	tanLat2 := tanLat * tanLat
	tanLat4 := tanLat2 * tanLat2
	tanLat6 := tanLat4 * tanLat2
	secLat := 1 / cosLat

	vii := tanLat / (2 * rho * nu)
	viii := tanLat / (24 * rho * math.Pow(nu, 3)) * (5 + 3*tanLat2 + eta2 - 9*tanLat2*eta2)
	ix := tanLat / (720 * rho * math.Pow(nu, 5)) * (61 + 90*tanLat2 + 45*tanLat4)

	x := secLat / nu
	xi := secLat / (6 * math.Pow(nu, 3)) * (nu/rho + 2*tanLat2)
	xii := secLat / (120 * math.Pow(nu, 5)) * (5 + 28*tanLat2 + 24*tanLat4)
	xiiA := secLat / (5040 * math.Pow(nu, 7)) * (61 + 662*tanLat2 + 1320*tanLat4 + 720*tanLat6)

	dE := easting - nGridE0
	outLat := lat - vii*dE*dE + viii*math.Pow(dE, 4) - ix*math.Pow(dE, 6)
	outLon := nGridLon0 + x*dE - xi*math.Pow(dE, 3) + xii*math.Pow(dE, 5) - xiiA*math.Pow(dE, 7)

	return outLat, outLon
}

// airyToWGS84 applies the Helmert datum transform from the Airy 1830
// ellipsoid (OSGB36) to WGS84, via Cartesian (ECEF) coordinates.
func airyToWGS84(latRad, lonRad float64) (latDeg, lonDeg float64, ok bool) {
	e2 := 1 - (airyB*airyB)/(airyA*airyA)
	sinLat := math.Sin(latRad)
	nu := airyA / math.Sqrt(1-e2*sinLat*sinLat)

	x := nu * math.Cos(latRad) * math.Cos(lonRad)
	y := nu * math.Cos(latRad) * math.Sin(lonRad)
	z := (1 - e2) * nu * sinLat

	rx := degToRad(helmertRxSec / 3600)
	ry := degToRad(helmertRySec / 3600)
	rz := degToRad(helmertRzSec / 3600)
	s := helmertScale

	x2 := helmertTx + (1+s)*x + (-rz)*y + ry*z
	y2 := helmertTy + rz*x + (1+s)*y + (-rx)*z
	z2 := helmertTz + (-ry)*x + rx*y + (1+s)*z

	e2w := 1 - (wgs84B*wgs84B)/(wgs84A*wgs84A)
	p := math.Hypot(x2, y2)

	lat2 := math.Atan2(z2, p*(1-e2w))
	const maxIter = 50
	for i := 0; i < maxIter; i++ {
		sinLat2 := math.Sin(lat2)
		nu2 := wgs84A / math.Sqrt(1-e2w*sinLat2*sinLat2)
		next := math.Atan2(z2+e2w*nu2*sinLat2, p)
		if math.Abs(next-lat2) < 1e-12 {
			lat2 = next
			lon2 := math.Atan2(y2, x2)
			return radToDeg(lat2), radToDeg(lon2), true
		}
		lat2 = next
	}

	return 0, 0, false
}
