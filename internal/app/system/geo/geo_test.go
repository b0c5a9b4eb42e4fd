package geo

import (
	"math"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   Radius
		wantOK bool
	}{
		{"basic", "10,20,5", Radius{Lng: 10, Lat: 20, Km: 5}, true},
		{"spaces", " -73.98 , 40.75 , 2.5 ", Radius{Lng: -73.98, Lat: 40.75, Km: 2.5}, true},
		{"zero radius", "0,0,0", Radius{}, true},

		{"empty", "", Radius{}, false},
		{"word", "abc", Radius{}, false},
		{"two values", "10,20", Radius{}, false},
		{"four values", "10,20,5,1", Radius{}, false},
		{"non-numeric radius", "10,20,far", Radius{}, false},
		{"NaN", "NaN,20,5", Radius{}, false},
		{"Inf", "10,Inf,5", Radius{}, false},
		{"lng out of range", "181,20,5", Radius{}, false},
		{"lat out of range", "10,-91,5", Radius{}, false},
		{"negative radius", "10,20,-1", Radius{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNear_ConvertsKilometersToMeters(t *testing.T) {
	r := Radius{Lng: 10, Lat: 20, Km: 5}
	near := r.Near()["$near"].(bson.M)

	if got := near["$maxDistance"]; got != 5000.0 {
		t.Errorf("$maxDistance = %v, want 5000", got)
	}
	geom := near["$geometry"].(bson.M)
	coords := geom["coordinates"].(bson.A)
	if coords[0] != 10.0 || coords[1] != 20.0 {
		t.Errorf("coordinates = %v, want [10 20]", coords)
	}
}

func TestWithin_UsesRadians(t *testing.T) {
	r := Radius{Lng: 10, Lat: 20, Km: 6378.1}
	cs := r.Within()["$geoWithin"].(bson.M)["$centerSphere"].(bson.A)
	if got := cs[1].(float64); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("radians = %v, want 1", got)
	}
}

func TestContains_BoundaryIncluded(t *testing.T) {
	r := Radius{Lng: 10, Lat: 20, Km: 5}

	// One degree of latitude along a meridian.
	metersPerDegLat := EarthRadiusMeters * math.Pi / 180
	edgeLat := 20 + r.Meters()/metersPerDegLat

	d := DistanceMeters(10, 20, 10, edgeLat)
	if math.Abs(d-5000) > 1e-6 {
		t.Fatalf("edge distance = %v, want 5000", d)
	}
	// Nudge inward by far less than a millimeter to absorb float rounding.
	if !r.Contains(10, edgeLat-1e-12) {
		t.Error("point on the boundary should be contained")
	}
	if r.Contains(10, 20.1) {
		t.Error("point ~11km away should not be contained")
	}
}

func TestDistanceMeters_Zero(t *testing.T) {
	if d := DistanceMeters(-73.98, 40.75, -73.98, 40.75); d != 0 {
		t.Errorf("distance to self = %v, want 0", d)
	}
}
