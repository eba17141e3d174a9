package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/im-vetri/Useful-APIs/internal/domain"
	"github.com/im-vetri/Useful-APIs/internal/ports"
)

// Public demo instance. Production deployments point OSRM_BASE_URL at
// their own router.
const osrmDefaultBaseURL = "https://router.project-osrm.org"

// OSRMProvider adapts an OSRM HTTP instance: route/v1 for pairs, table/v1
// for matrices, trip/v1 for optimization. The public instance needs no
// credential, which makes this the terminal network provider in the auto
// chain.
type OSRMProvider struct {
	client  *client
	baseURL string
}

func NewOSRMProvider(baseURL string, c *client) *OSRMProvider {
	if baseURL == "" {
		baseURL = osrmDefaultBaseURL
	}
	return &OSRMProvider{client: c, baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (p *OSRMProvider) Name() string { return "osrm" }

func (p *OSRMProvider) osrmProfile(profile domain.Profile) string {
	switch profile {
	case domain.ProfileWalking:
		return "walking"
	case domain.ProfileCycling:
		return "cycling"
	default:
		return "driving"
	}
}

// coordPath renders points in OSRM's lng,lat;lng,lat path convention.
func coordPath(points []domain.Point) string {
	parts := make([]string, 0, len(points))
	for _, pt := range points {
		parts = append(parts, fmt.Sprintf("%f,%f", pt.Lng, pt.Lat))
	}
	return strings.Join(parts, ";")
}

func (p *OSRMProvider) get(ctx context.Context, endpoint string, query url.Values, v any) error {
	resp, err := p.client.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.URL.RawQuery = query.Encode()
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type osrmRouteResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

func (p *OSRMProvider) ResolvePair(
	ctx context.Context,
	origin, destination domain.Point,
	profile domain.Profile,
) (domain.DistanceResult, error) {
	endpoint := fmt.Sprintf("%s/route/v1/%s/%s",
		p.baseURL, p.osrmProfile(profile), coordPath([]domain.Point{origin, destination}))

	q := url.Values{}
	q.Set("overview", "false")

	var decoded osrmRouteResponse
	if err := p.get(ctx, endpoint, q, &decoded); err != nil {
		return domain.DistanceResult{}, &ports.ProviderError{Provider: p.Name(), Op: "pair", Err: err}
	}

	if decoded.Code != "Ok" {
		return domain.DistanceResult{}, &ports.ProviderError{
			Provider: p.Name(),
			Op:       "pair",
			Err:      fmt.Errorf("route code %q", decoded.Code),
		}
	}
	if len(decoded.Routes) == 0 {
		return domain.DistanceResult{}, &ports.ProviderError{
			Provider: p.Name(),
			Op:       "pair",
			Err:      errors.New("no routes returned"),
		}
	}

	r := decoded.Routes[0]
	return domain.DistanceResult{
		DistanceMeters:  r.Distance,
		DurationSeconds: domain.Seconds(r.Duration),
		Provider:        p.Name(),
	}, nil
}

type osrmTableResponse struct {
	Code      string       `json:"code"`
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

func (p *OSRMProvider) ResolveMatrix(
	ctx context.Context,
	points []domain.Point,
	profile domain.Profile,
) (domain.Matrix, error) {
	endpoint := fmt.Sprintf("%s/table/v1/%s/%s",
		p.baseURL, p.osrmProfile(profile), coordPath(points))

	q := url.Values{}
	q.Set("annotations", "duration,distance")

	var decoded osrmTableResponse
	if err := p.get(ctx, endpoint, q, &decoded); err != nil {
		return domain.Matrix{}, &ports.ProviderError{Provider: p.Name(), Op: "matrix", Err: err}
	}

	if decoded.Code != "Ok" {
		return domain.Matrix{}, &ports.ProviderError{
			Provider: p.Name(),
			Op:       "matrix",
			Err:      fmt.Errorf("table code %q", decoded.Code),
		}
	}

	n := len(points)
	if len(decoded.Distances) != n || len(decoded.Durations) != n {
		return domain.Matrix{}, &ports.ProviderError{
			Provider: p.Name(),
			Op:       "matrix",
			Err:      fmt.Errorf("table returned %d rows, want %d", len(decoded.Distances), n),
		}
	}

	distances := make([][]float64, n)
	durations := make([][]*float64, n)
	for i := 0; i < n; i++ {
		if len(decoded.Distances[i]) != n || len(decoded.Durations[i]) != n {
			return domain.Matrix{}, &ports.ProviderError{
				Provider: p.Name(),
				Op:       "matrix",
				Err:      fmt.Errorf("table row %d has unexpected width", i),
			}
		}
		distances[i] = make([]float64, n)
		durations[i] = make([]*float64, n)
		for j := 0; j < n; j++ {
			if i == j {
				durations[i][j] = domain.Seconds(0)
				continue
			}
			d := decoded.Distances[i][j]
			t := decoded.Durations[i][j]
			if d == nil || t == nil {
				return domain.Matrix{}, &ports.ProviderError{
					Provider: p.Name(),
					Op:       "matrix",
					Err:      fmt.Errorf("table returned null metrics for cell %d,%d", i, j),
				}
			}
			distances[i][j] = *d
			durations[i][j] = domain.Seconds(*t)
		}
	}

	return domain.Matrix{Distances: distances, Durations: durations, Provider: p.Name()}, nil
}

type osrmTripResponse struct {
	Code      string `json:"code"`
	Waypoints []struct {
		WaypointIndex int `json:"waypoint_index"`
	} `json:"waypoints"`
	Trips []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"trips"`
}

func (p *OSRMProvider) ResolveOptimizedRoute(
	ctx context.Context,
	points []domain.Point,
	profile domain.Profile,
	roundtrip bool,
) (domain.Route, error) {
	endpoint := fmt.Sprintf("%s/trip/v1/%s/%s",
		p.baseURL, p.osrmProfile(profile), coordPath(points))

	q := url.Values{}
	q.Set("roundtrip", strconv.FormatBool(roundtrip))
	q.Set("source", "first")
	if !roundtrip {
		// Open trips must pin both endpoints or OSRM rejects the request.
		q.Set("destination", "last")
	}
	q.Set("overview", "false")

	var decoded osrmTripResponse
	if err := p.get(ctx, endpoint, q, &decoded); err != nil {
		return domain.Route{}, &ports.ProviderError{Provider: p.Name(), Op: "optimize", Err: err}
	}

	if decoded.Code != "Ok" {
		return domain.Route{}, &ports.ProviderError{
			Provider: p.Name(),
			Op:       "optimize",
			Err:      fmt.Errorf("trip code %q", decoded.Code),
		}
	}
	if len(decoded.Trips) == 0 {
		return domain.Route{}, &ports.ProviderError{
			Provider: p.Name(),
			Op:       "optimize",
			Err:      errors.New("no trips returned"),
		}
	}

	n := len(points)
	if len(decoded.Waypoints) != n {
		return domain.Route{}, &ports.ProviderError{
			Provider: p.Name(),
			Op:       "optimize",
			Err:      fmt.Errorf("trip returned %d waypoints, want %d", len(decoded.Waypoints), n),
		}
	}

	// waypoints[i] describes input point i and waypoint_index is its
	// position in the optimized tour, so the order inverts that mapping.
	order := make([]int, n)
	seen := make([]bool, n)
	for i, wp := range decoded.Waypoints {
		if wp.WaypointIndex < 0 || wp.WaypointIndex >= n || seen[wp.WaypointIndex] {
			return domain.Route{}, &ports.ProviderError{
				Provider: p.Name(),
				Op:       "optimize",
				Err:      fmt.Errorf("invalid waypoint_index %d", wp.WaypointIndex),
			}
		}
		seen[wp.WaypointIndex] = true
		order[wp.WaypointIndex] = i
	}

	waypoints := make([]domain.Point, n)
	for pos, idx := range order {
		waypoints[pos] = points[idx]
	}

	trip := decoded.Trips[0]
	return domain.Route{
		Waypoints:            waypoints,
		WaypointOrder:        order,
		TotalDistanceMeters:  trip.Distance,
		TotalDurationSeconds: domain.Seconds(trip.Duration),
		Provider:             p.Name(),
	}, nil
}
