package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/im-vetri/Useful-APIs/internal/domain"
	"github.com/im-vetri/Useful-APIs/internal/ports"
)

const orsBaseURL = "https://api.openrouteservice.org"

// ORSProvider adapts the openrouteservice matrix API. ORS exposes no
// waypoint optimization endpoint, so the adapter participates in pair and
// matrix resolution only.
type ORSProvider struct {
	client  *client
	apiKey  string
	baseURL string
}

func NewORSProvider(apiKey string, c *client) (*ORSProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ors api key is empty")
	}
	return &ORSProvider{client: c, apiKey: apiKey, baseURL: orsBaseURL}, nil
}

func (o *ORSProvider) Name() string { return "ors" }

func (o *ORSProvider) orsProfile(profile domain.Profile) string {
	switch profile {
	case domain.ProfileWalking:
		return "foot-walking"
	case domain.ProfileCycling:
		return "cycling-regular"
	default:
		return "driving-car"
	}
}

type orsMatrixRequest struct {
	Locations    [][]float64 `json:"locations"`
	Metrics      []string    `json:"metrics"`
	Sources      []int       `json:"sources,omitempty"`
	Destinations []int       `json:"destinations,omitempty"`
}

type orsMatrixResponse struct {
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// fetchMatrix posts a matrix request. ORS expects [lng, lat] coordinate
// order; empty sources/destinations mean all-to-all.
func (o *ORSProvider) fetchMatrix(
	ctx context.Context,
	points []domain.Point,
	sources, destinations []int,
	profile domain.Profile,
) (*orsMatrixResponse, error) {
	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.baseURL, o.orsProfile(profile))

	locations := make([][]float64, 0, len(points))
	for _, p := range points {
		locations = append(locations, []float64{p.Lng, p.Lat})
	}

	payload, err := json.Marshal(orsMatrixRequest{
		Locations:    locations,
		Metrics:      []string{"distance", "duration"},
		Sources:      sources,
		Destinations: destinations,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal matrix request: %w", err)
	}

	resp, err := o.client.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Authorization", o.apiKey)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var decoded orsMatrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode matrix response: %w", err)
	}
	return &decoded, nil
}

func (o *ORSProvider) ResolvePair(
	ctx context.Context,
	origin, destination domain.Point,
	profile domain.Profile,
) (domain.DistanceResult, error) {
	mr, err := o.fetchMatrix(ctx, []domain.Point{origin, destination}, []int{0}, []int{1}, profile)
	if err != nil {
		return domain.DistanceResult{}, &ports.ProviderError{Provider: o.Name(), Op: "pair", Err: err}
	}

	if len(mr.Distances) != 1 || len(mr.Distances[0]) != 1 ||
		len(mr.Durations) != 1 || len(mr.Durations[0]) != 1 {
		return domain.DistanceResult{}, &ports.ProviderError{
			Provider: o.Name(),
			Op:       "pair",
			Err:      errors.New("matrix returned unexpected shape"),
		}
	}

	d := mr.Distances[0][0]
	t := mr.Durations[0][0]
	if d == nil || t == nil {
		return domain.DistanceResult{}, &ports.ProviderError{
			Provider: o.Name(),
			Op:       "pair",
			Err:      errors.New("matrix returned null metrics for pair"),
		}
	}

	return domain.DistanceResult{
		DistanceMeters:  *d,
		DurationSeconds: domain.Seconds(*t),
		Provider:        o.Name(),
	}, nil
}

func (o *ORSProvider) ResolveMatrix(
	ctx context.Context,
	points []domain.Point,
	profile domain.Profile,
) (domain.Matrix, error) {
	mr, err := o.fetchMatrix(ctx, points, nil, nil, profile)
	if err != nil {
		return domain.Matrix{}, &ports.ProviderError{Provider: o.Name(), Op: "matrix", Err: err}
	}

	n := len(points)
	if len(mr.Distances) != n || len(mr.Durations) != n {
		return domain.Matrix{}, &ports.ProviderError{
			Provider: o.Name(),
			Op:       "matrix",
			Err:      fmt.Errorf("matrix returned %d rows, want %d", len(mr.Distances), n),
		}
	}

	distances := make([][]float64, n)
	durations := make([][]*float64, n)
	for i := 0; i < n; i++ {
		if len(mr.Distances[i]) != n || len(mr.Durations[i]) != n {
			return domain.Matrix{}, &ports.ProviderError{
				Provider: o.Name(),
				Op:       "matrix",
				Err:      fmt.Errorf("matrix row %d has unexpected width", i),
			}
		}
		distances[i] = make([]float64, n)
		durations[i] = make([]*float64, n)
		for j := 0; j < n; j++ {
			if i == j {
				durations[i][j] = domain.Seconds(0)
				continue
			}
			d := mr.Distances[i][j]
			t := mr.Durations[i][j]
			if d == nil || t == nil {
				return domain.Matrix{}, &ports.ProviderError{
					Provider: o.Name(),
					Op:       "matrix",
					Err:      fmt.Errorf("matrix returned null metrics for cell %d,%d", i, j),
				}
			}
			distances[i][j] = *d
			durations[i][j] = domain.Seconds(*t)
		}
	}

	return domain.Matrix{Distances: distances, Durations: durations, Provider: o.Name()}, nil
}
