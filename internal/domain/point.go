package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// Immutable geographic coordinate in canonical form (WGS84 degrees).
// A Point has no identity beyond its coordinate values.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NewPoint validates raw coordinates and returns the canonical Point.
// Out-of-range values are rejected, never clamped.
func NewPoint(lat, lng float64) (Point, error) {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return Point{}, &InvalidPointError{Reason: "coordinates must be finite numbers"}
	}
	if lat < -90 || lat > 90 {
		return Point{}, &InvalidPointError{Reason: fmt.Sprintf("latitude %v outside [-90, 90]", lat)}
	}
	if lng < -180 || lng > 180 {
		return Point{}, &InvalidPointError{Reason: fmt.Sprintf("longitude %v outside [-180, 180]", lng)}
	}

	return Point{Lat: lat, Lng: lng}, nil
}

// UnmarshalJSON normalizes the three accepted encodings into the canonical
// form: a [lat, lng] array pair, {"lat": ..., "lng": ...}, or
// {"latitude": ..., "longitude": ...}.
func (p *Point) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '[' {
		var pair []float64
		if err := json.Unmarshal(data, &pair); err != nil {
			return &InvalidPointError{Reason: "array form must hold numeric coordinates"}
		}
		if len(pair) != 2 {
			return &InvalidPointError{Reason: fmt.Sprintf("array form must hold exactly [lat, lng], got %d values", len(pair))}
		}

		pt, err := NewPoint(pair[0], pair[1])
		if err != nil {
			return err
		}
		*p = pt
		return nil
	}

	var obj struct {
		Lat       *float64 `json:"lat"`
		Lng       *float64 `json:"lng"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return &InvalidPointError{Reason: "coordinates must be numeric"}
	}

	lat := obj.Lat
	if lat == nil {
		lat = obj.Latitude
	}
	lng := obj.Lng
	if lng == nil {
		lng = obj.Longitude
	}
	if lat == nil || lng == nil {
		return &InvalidPointError{Reason: "point requires lat/lng or latitude/longitude"}
	}

	pt, err := NewPoint(*lat, *lng)
	if err != nil {
		return err
	}
	*p = pt
	return nil
}
