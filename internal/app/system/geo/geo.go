// internal/app/system/geo/geo.go
//
// Package geo turns a radius-search parameter into MongoDB spatial
// predicates against the campaigns' GeoJSON "location" field.
//
// A malformed parameter is not an error: Parse reports ok=false and the
// caller simply applies no spatial constraint.
package geo

import (
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// EarthRadiusMeters is the equatorial radius used by MongoDB's
// $centerSphere, so count and find agree on the boundary.
const EarthRadiusMeters = 6378100.0

// Radius is a parsed "lng,lat,km" search.
type Radius struct {
	Lng float64
	Lat float64
	Km  float64
}

// Meters returns the radius in meters.
func (r Radius) Meters() float64 { return r.Km * 1000 }

// Parse parses "longitude,latitude,radiusKilometers".
// Wrong arity, non-numeric values, NaN/Inf, coordinates out of range and
// negative radii all return ok=false.
func Parse(s string) (Radius, bool) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 3 {
		return Radius{}, false
	}
	var vals [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return Radius{}, false
		}
		vals[i] = v
	}
	r := Radius{Lng: vals[0], Lat: vals[1], Km: vals[2]}
	if !ValidPoint(r.Lng, r.Lat) || r.Km < 0 {
		return Radius{}, false
	}
	return r, true
}

// ValidPoint reports whether lng/lat are within WGS84 bounds.
func ValidPoint(lng, lat float64) bool {
	return lng >= -180 && lng <= 180 && lat >= -90 && lat <= 90
}

func (r Radius) point() bson.M {
	return bson.M{"type": "Point", "coordinates": bson.A{r.Lng, r.Lat}}
}

// Near returns a $near predicate: nearest-first, bounded by the radius.
// $maxDistance is inclusive.
func (r Radius) Near() bson.M {
	return bson.M{
		"$near": bson.M{
			"$geometry":    r.point(),
			"$maxDistance": r.Meters(),
		},
	}
}

// Within returns the same region as a $geoWithin predicate. Unlike $near
// it is accepted by countDocuments, and it imposes no ordering.
func (r Radius) Within() bson.M {
	return bson.M{
		"$geoWithin": bson.M{
			"$centerSphere": bson.A{bson.A{r.Lng, r.Lat}, r.Meters() / EarthRadiusMeters},
		},
	}
}

// DistanceMeters is the great-circle distance between two points.
func DistanceMeters(lng1, lat1, lng2, lat2 float64) float64 {
	const rad = math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLng := (lng2 - lng1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * EarthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(a)))
}

// Contains reports whether (lng, lat) is within the radius, boundary included.
func (r Radius) Contains(lng, lat float64) bool {
	return DistanceMeters(r.Lng, r.Lat, lng, lat) <= r.Meters()
}
