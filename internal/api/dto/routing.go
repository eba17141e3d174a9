package dto

import (
	"github.com/im-vetri/Useful-APIs/internal/domain"
)

// RoutingOptions is the caller-tunable subset of engine options. Provider
// credentials stay server-side configuration and are never accepted over
// the wire.
type RoutingOptions struct {
	Provider  string `json:"provider"`
	Profile   string `json:"profile"`
	Roundtrip bool   `json:"roundtrip"`
}

type DistanceRequest struct {
	Origin      *domain.Point  `json:"origin"`
	Destination *domain.Point  `json:"destination"`
	Options     RoutingOptions `json:"options"`
}

type PointsRequest struct {
	Points  []domain.Point `json:"points"`
	Options RoutingOptions `json:"options"`
}

type DistanceResponse struct {
	DistanceMeters  float64  `json:"distance_meters"`
	DurationSeconds *float64 `json:"duration_seconds,omitempty"`
	Unit            string   `json:"unit"`
	Provider        string   `json:"provider"`
}

func NewDistanceResponse(res domain.DistanceResult) DistanceResponse {
	return DistanceResponse{
		DistanceMeters:  res.DistanceMeters,
		DurationSeconds: res.DurationSeconds,
		Unit:            "meters",
		Provider:        res.Provider,
	}
}

type MatrixResponse struct {
	Distances [][]float64  `json:"distances"`
	Durations [][]*float64 `json:"durations"`
	Unit      string       `json:"unit"`
	Provider  string       `json:"provider"`
}

func NewMatrixResponse(mx domain.Matrix) MatrixResponse {
	return MatrixResponse{
		Distances: mx.Distances,
		Durations: mx.Durations,
		Unit:      "meters",
		Provider:  mx.Provider,
	}
}

type RouteResponse struct {
	Waypoints            []domain.Point `json:"waypoints"`
	WaypointOrder        []int          `json:"waypoint_order"`
	TotalDistanceMeters  float64        `json:"total_distance_meters"`
	TotalDurationSeconds *float64       `json:"total_duration_seconds,omitempty"`
	Unit                 string         `json:"unit"`
	Provider             string         `json:"provider"`
}

func NewRouteResponse(route domain.Route) RouteResponse {
	return RouteResponse{
		Waypoints:            route.Waypoints,
		WaypointOrder:        route.WaypointOrder,
		TotalDistanceMeters:  route.TotalDistanceMeters,
		TotalDurationSeconds: route.TotalDurationSeconds,
		Unit:                 "meters",
		Provider:             route.Provider,
	}
}

// ETAResponse keeps duration_seconds present even when null: the null is
// the answer when resolution fell through to the duration-less fallback.
type ETAResponse struct {
	DurationSeconds *float64 `json:"duration_seconds"`
}
