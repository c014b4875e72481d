// Package geo provides the great-circle distance and British National Grid
// to WGS84 conversion primitives the route planner needs to compute its A*
// heuristic.
//
// What
//
//   - DistanceMiles: haversine distance between two WGS84 points, in statute
//     miles. Returns false if either point is absent.
//   - BNGToWGS84: OSGB36 Easting/Northing (OS National Grid) to WGS84
//     lat/lon, via the standard Airy1830 Transverse Mercator inverse
//     projection followed by a seven-parameter Helmert datum shift.
//
// Why
//
//   - The planner's heuristic needs straight-line distance between the
//     current search node and the leg's destination. BPLAN only carries
//     OSGB36 grid references, so a LocationRecord's coordinates are
//     converted from its stored Easting/Northing each time its WGS84
//     position is requested.
//
// All geometry here is double-precision; there is no attempt to vectorize
// or cache conversions.
package geo
