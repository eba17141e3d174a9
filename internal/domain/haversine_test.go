package domain

import (
	"math"
	"testing"
)

func TestHaversineKnownDistance(t *testing.T) {
	sf := Point{Lat: 37.7749, Lng: -122.4194}
	la := Point{Lat: 34.0522, Lng: -118.2437}

	got := Haversine(sf, la)

	// San Francisco to Los Angeles is roughly 559.1 km great-circle.
	if math.Abs(got-559120) > 200 {
		t.Fatalf("Haversine(sf, la) = %f, want ~559120", got)
	}
}

func TestHaversineSymmetry(t *testing.T) {
	a := Point{Lat: 48.8566, Lng: 2.3522}
	b := Point{Lat: 52.5200, Lng: 13.4050}

	ab := Haversine(a, b)
	ba := Haversine(b, a)

	if math.Abs(ab-ba) > 1e-6 {
		t.Fatalf("Haversine not symmetric: %f vs %f", ab, ba)
	}
}

func TestHaversineZeroForEqualPoints(t *testing.T) {
	p := Point{Lat: -33.8688, Lng: 151.2093}

	if got := Haversine(p, p); got != 0 {
		t.Fatalf("Haversine(p, p) = %f, want 0", got)
	}
}

func TestParseProfile(t *testing.T) {
	if p, err := ParseProfile(""); err != nil || p != ProfileDriving {
		t.Fatalf("ParseProfile(\"\") = %q, %v; want driving", p, err)
	}
	if p, err := ParseProfile("cycling"); err != nil || p != ProfileCycling {
		t.Fatalf("ParseProfile(cycling) = %q, %v; want cycling", p, err)
	}
	if _, err := ParseProfile("submarine"); err == nil {
		t.Fatal("expected error for unknown profile")
	}
}
