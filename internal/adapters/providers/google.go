package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/im-vetri/Useful-APIs/internal/domain"
	"github.com/im-vetri/Useful-APIs/internal/ports"
)

const googleBaseURL = "https://maps.googleapis.com/maps/api"

// GoogleProvider adapts the Google Maps web services: the Distance Matrix
// API for pair and matrix resolution, the Directions API with optimized
// waypoints for routes.
type GoogleProvider struct {
	client  *client
	apiKey  string
	baseURL string
}

func NewGoogleProvider(apiKey string, c *client) (*GoogleProvider, error) {
	if apiKey == "" {
		return nil, errors.New("google api key is empty")
	}
	return &GoogleProvider{client: c, apiKey: apiKey, baseURL: googleBaseURL}, nil
}

func (g *GoogleProvider) Name() string { return "google" }

func (g *GoogleProvider) mode(profile domain.Profile) string {
	switch profile {
	case domain.ProfileWalking:
		return "walking"
	case domain.ProfileCycling:
		return "bicycling"
	default:
		return "driving"
	}
}

// formatLatLng renders a point in Google's lat,lng query convention.
func formatLatLng(p domain.Point) string {
	return fmt.Sprintf("%f,%f", p.Lat, p.Lng)
}

func joinPoints(points []domain.Point) string {
	parts := make([]string, 0, len(points))
	for _, p := range points {
		parts = append(parts, formatLatLng(p))
	}
	return strings.Join(parts, "|")
}

type googleValue struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

type googleMatrixElement struct {
	Status   string      `json:"status"`
	Distance googleValue `json:"distance"`
	Duration googleValue `json:"duration"`
}

type googleMatrixResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Rows         []struct {
		Elements []googleMatrixElement `json:"elements"`
	} `json:"rows"`
}

func (g *GoogleProvider) fetchElements(
	ctx context.Context,
	origins, destinations []domain.Point,
	profile domain.Profile,
) ([][]googleMatrixElement, error) {
	endpoint := g.baseURL + "/distancematrix/json"

	resp, err := g.client.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		q := req.URL.Query()
		q.Set("origins", joinPoints(origins))
		q.Set("destinations", joinPoints(destinations))
		q.Set("mode", g.mode(profile))
		q.Set("units", "metric")
		q.Set("key", g.apiKey)
		req.URL.RawQuery = q.Encode()
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var decoded googleMatrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode distance matrix response: %w", err)
	}

	if decoded.Status != "OK" {
		return nil, fmt.Errorf("distance matrix status %q: %s", decoded.Status, decoded.ErrorMessage)
	}
	if len(decoded.Rows) != len(origins) {
		return nil, fmt.Errorf("distance matrix returned %d rows, want %d", len(decoded.Rows), len(origins))
	}

	out := make([][]googleMatrixElement, len(decoded.Rows))
	for i, row := range decoded.Rows {
		if len(row.Elements) != len(destinations) {
			return nil, fmt.Errorf("distance matrix row %d has %d elements, want %d", i, len(row.Elements), len(destinations))
		}
		out[i] = row.Elements
	}
	return out, nil
}

func (g *GoogleProvider) ResolvePair(
	ctx context.Context,
	origin, destination domain.Point,
	profile domain.Profile,
) (domain.DistanceResult, error) {
	elems, err := g.fetchElements(ctx, []domain.Point{origin}, []domain.Point{destination}, profile)
	if err != nil {
		return domain.DistanceResult{}, &ports.ProviderError{Provider: g.Name(), Op: "pair", Err: err}
	}

	el := elems[0][0]
	if el.Status != "OK" {
		return domain.DistanceResult{}, &ports.ProviderError{
			Provider: g.Name(),
			Op:       "pair",
			Err:      fmt.Errorf("element status %q", el.Status),
		}
	}

	return domain.DistanceResult{
		DistanceMeters:  float64(el.Distance.Value),
		DurationSeconds: domain.Seconds(float64(el.Duration.Value)),
		Provider:        g.Name(),
	}, nil
}

func (g *GoogleProvider) ResolveMatrix(
	ctx context.Context,
	points []domain.Point,
	profile domain.Profile,
) (domain.Matrix, error) {
	elems, err := g.fetchElements(ctx, points, points, profile)
	if err != nil {
		return domain.Matrix{}, &ports.ProviderError{Provider: g.Name(), Op: "matrix", Err: err}
	}

	n := len(points)
	distances := make([][]float64, n)
	durations := make([][]*float64, n)
	for i := range elems {
		distances[i] = make([]float64, n)
		durations[i] = make([]*float64, n)
		for j, el := range elems[i] {
			if i == j {
				durations[i][j] = domain.Seconds(0)
				continue
			}
			if el.Status != "OK" {
				return domain.Matrix{}, &ports.ProviderError{
					Provider: g.Name(),
					Op:       "matrix",
					Err:      fmt.Errorf("element %d,%d status %q", i, j, el.Status),
				}
			}
			distances[i][j] = float64(el.Distance.Value)
			durations[i][j] = domain.Seconds(float64(el.Duration.Value))
		}
	}

	return domain.Matrix{Distances: distances, Durations: durations, Provider: g.Name()}, nil
}

type googleDirectionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		WaypointOrder []int `json:"waypoint_order"`
		Legs          []struct {
			Distance googleValue `json:"distance"`
			Duration googleValue `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

func (g *GoogleProvider) ResolveOptimizedRoute(
	ctx context.Context,
	points []domain.Point,
	profile domain.Profile,
	roundtrip bool,
) (domain.Route, error) {
	if roundtrip {
		// Directions optimizes waypoints between a fixed origin and
		// destination; it has no closed-tour mode.
		return domain.Route{}, fmt.Errorf("google roundtrip: %w", ports.ErrUnsupported)
	}

	endpoint := g.baseURL + "/directions/json"
	n := len(points)

	resp, err := g.client.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		q := req.URL.Query()
		q.Set("origin", formatLatLng(points[0]))
		q.Set("destination", formatLatLng(points[n-1]))
		if n > 2 {
			q.Set("waypoints", "optimize:true|"+joinPoints(points[1:n-1]))
		}
		q.Set("mode", g.mode(profile))
		q.Set("units", "metric")
		q.Set("key", g.apiKey)
		req.URL.RawQuery = q.Encode()
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return domain.Route{}, &ports.ProviderError{Provider: g.Name(), Op: "optimize", Err: err}
	}
	defer resp.Body.Close()

	var decoded googleDirectionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Route{}, &ports.ProviderError{
			Provider: g.Name(),
			Op:       "optimize",
			Err:      fmt.Errorf("decode directions response: %w", err),
		}
	}

	if decoded.Status != "OK" {
		return domain.Route{}, &ports.ProviderError{
			Provider: g.Name(),
			Op:       "optimize",
			Err:      fmt.Errorf("directions status %q: %s", decoded.Status, decoded.ErrorMessage),
		}
	}
	if len(decoded.Routes) == 0 {
		return domain.Route{}, &ports.ProviderError{
			Provider: g.Name(),
			Op:       "optimize",
			Err:      errors.New("directions returned no routes"),
		}
	}

	route := decoded.Routes[0]

	// waypoint_order indexes the interior waypoint list, so +1 maps each
	// entry back to its original input position.
	order := make([]int, 0, n)
	order = append(order, 0)
	if n > 2 {
		if len(route.WaypointOrder) != n-2 {
			return domain.Route{}, &ports.ProviderError{
				Provider: g.Name(),
				Op:       "optimize",
				Err:      fmt.Errorf("waypoint_order has %d entries, want %d", len(route.WaypointOrder), n-2),
			}
		}
		for _, idx := range route.WaypointOrder {
			if idx < 0 || idx >= n-2 {
				return domain.Route{}, &ports.ProviderError{
					Provider: g.Name(),
					Op:       "optimize",
					Err:      fmt.Errorf("waypoint_order entry %d out of range", idx),
				}
			}
			order = append(order, idx+1)
		}
	}
	order = append(order, n-1)

	var totalMeters, totalSeconds float64
	for _, leg := range route.Legs {
		totalMeters += float64(leg.Distance.Value)
		totalSeconds += float64(leg.Duration.Value)
	}

	waypoints := make([]domain.Point, n)
	for pos, idx := range order {
		waypoints[pos] = points[idx]
	}

	return domain.Route{
		Waypoints:            waypoints,
		WaypointOrder:        order,
		TotalDistanceMeters:  totalMeters,
		TotalDurationSeconds: domain.Seconds(totalSeconds),
		Provider:             g.Name(),
	}, nil
}
