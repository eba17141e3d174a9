package domain

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestPointNormalizeEncodings(t *testing.T) {
	// All three encodings must produce the same canonical point.
	inputs := []string{
		`[37.7749, -122.4194]`,
		`{"lat": 37.7749, "lng": -122.4194}`,
		`{"latitude": 37.7749, "longitude": -122.4194}`,
	}

	want := Point{Lat: 37.7749, Lng: -122.4194}

	for _, in := range inputs {
		var p Point
		if err := json.Unmarshal([]byte(in), &p); err != nil {
			t.Fatalf("unmarshal %s: unexpected error: %v", in, err)
		}
		if p != want {
			t.Errorf("unmarshal %s = %+v, want %+v", in, p, want)
		}
	}
}

func TestPointRejectsOutOfRange(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"latitude above range", `{"lat": 91, "lng": 0}`},
		{"latitude below range", `{"lat": -90.5, "lng": 0}`},
		{"longitude above range", `{"lat": 0, "lng": 180.1}`},
		{"array too short", `[37.7749]`},
		{"array too long", `[37.7749, -122.4194, 12]`},
		{"non numeric", `{"lat": "north", "lng": 0}`},
		{"missing longitude", `{"lat": 37.7749}`},
	}

	for _, tc := range cases {
		var p Point
		err := json.Unmarshal([]byte(tc.in), &p)
		if err == nil {
			t.Errorf("%s: expected error, got point %+v", tc.name, p)
			continue
		}

		var ipe *InvalidPointError
		if !errors.As(err, &ipe) {
			t.Errorf("%s: error = %v, want *InvalidPointError", tc.name, err)
		}
	}
}

func TestNewPointRejectsNaN(t *testing.T) {
	if _, err := NewPoint(math.NaN(), 0); err == nil {
		t.Fatal("expected error for NaN latitude")
	}
	if _, err := NewPoint(0, math.Inf(1)); err == nil {
		t.Fatal("expected error for infinite longitude")
	}
}

func TestNewPointAcceptsBoundaries(t *testing.T) {
	// Range endpoints are valid, only values beyond them are rejected.
	for _, c := range [][2]float64{{90, 180}, {-90, -180}, {0, 0}} {
		if _, err := NewPoint(c[0], c[1]); err != nil {
			t.Errorf("NewPoint(%v, %v): unexpected error: %v", c[0], c[1], err)
		}
	}
}
