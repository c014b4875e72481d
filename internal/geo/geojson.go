package geo

import geojson "github.com/paulmach/go.geojson"

// RouteFeatureCollection renders an ordered route (one WGS84 point per
// TIPLOC, in path order) as a GeoJSON FeatureCollection containing a single
// LineString feature. Points for which coordinates are unavailable are
// omitted from the line but still recorded in properties.missing_tiplocs,
// so a route through a location with no WGS coordinates still renders.
func RouteFeatureCollection(tiplocs []string, points []Point, known []bool) *geojson.FeatureCollection {
	line := make([][]float64, 0, len(points))
	var missing []string

	for i, p := range points {
		if i < len(known) && known[i] {
			// GeoJSON coordinate order is [lon, lat].
			line = append(line, []float64{p.Lon, p.Lat})
		} else if i < len(tiplocs) {
			missing = append(missing, tiplocs[i])
		}
	}

	feature := geojson.NewFeature(geojson.NewLineStringGeometry(line))
	feature.Properties = map[string]interface{}{
		"tiplocs":         tiplocs,
		"missing_tiplocs": missing,
	}

	fc := geojson.NewFeatureCollection()
	fc.AddFeature(feature)

	return fc
}
