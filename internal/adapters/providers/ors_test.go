package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/im-vetri/Useful-APIs/internal/domain"
)

func newTestORS(t *testing.T, handler http.HandlerFunc) *ORSProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	o, err := NewORSProvider("test-key", newTestClient())
	if err != nil {
		t.Fatalf("NewORSProvider: %v", err)
	}
	o.baseURL = srv.URL
	return o
}

func TestORSResolvePair(t *testing.T) {
	var gotBody orsMatrixRequest
	var gotAuth, gotPath string

	o := newTestORS(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		fmt.Fprint(w, `{"distances": [[12345.6]], "durations": [[987.5]]}`)
	})

	origin := domain.Point{Lat: 52.52, Lng: 13.405}
	dest := domain.Point{Lat: 48.8566, Lng: 2.3522}

	res, err := o.ResolvePair(context.Background(), origin, dest, domain.ProfileCycling)
	if err != nil {
		t.Fatalf("ResolvePair: %v", err)
	}

	if res.DistanceMeters != 12345.6 {
		t.Errorf("expected distance 12345.6, got %v", res.DistanceMeters)
	}
	if res.DurationSeconds == nil || *res.DurationSeconds != 987.5 {
		t.Errorf("expected duration 987.5, got %v", res.DurationSeconds)
	}
	if res.Provider != "ors" {
		t.Errorf("expected provider ors, got %q", res.Provider)
	}

	if gotAuth != "test-key" {
		t.Errorf("expected api key in Authorization header, got %q", gotAuth)
	}
	if !strings.HasSuffix(gotPath, "/v2/matrix/cycling-regular") {
		t.Errorf("unexpected path %q", gotPath)
	}

	// ORS takes [lng, lat] pairs.
	if len(gotBody.Locations) != 2 || gotBody.Locations[0][0] != 13.405 || gotBody.Locations[0][1] != 52.52 {
		t.Errorf("unexpected locations %v", gotBody.Locations)
	}
	if len(gotBody.Sources) != 1 || gotBody.Sources[0] != 0 {
		t.Errorf("unexpected sources %v", gotBody.Sources)
	}
	if len(gotBody.Destinations) != 1 || gotBody.Destinations[0] != 1 {
		t.Errorf("unexpected destinations %v", gotBody.Destinations)
	}
}

func TestORSResolveMatrix(t *testing.T) {
	o := newTestORS(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"distances": [[0, 100.5], [110.5, 0]],
			"durations": [[0, 10], [11, 0]]
		}`)
	})

	points := []domain.Point{{Lat: 1, Lng: 1}, {Lat: 2, Lng: 2}}
	mx, err := o.ResolveMatrix(context.Background(), points, domain.ProfileDriving)
	if err != nil {
		t.Fatalf("ResolveMatrix: %v", err)
	}

	if mx.Distances[0][0] != 0 || mx.Distances[1][1] != 0 {
		t.Errorf("expected zero diagonal, got %v", mx.Distances)
	}
	if mx.Distances[0][1] != 100.5 || mx.Distances[1][0] != 110.5 {
		t.Errorf("unexpected distances %v", mx.Distances)
	}
	if mx.Durations[1][0] == nil || *mx.Durations[1][0] != 11 {
		t.Errorf("unexpected durations %v", mx.Durations)
	}
}

func TestORSResolveMatrixNullCell(t *testing.T) {
	o := newTestORS(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"distances": [[0, null], [110.5, 0]],
			"durations": [[0, 10], [11, 0]]
		}`)
	})

	points := []domain.Point{{Lat: 1, Lng: 1}, {Lat: 2, Lng: 2}}
	_, err := o.ResolveMatrix(context.Background(), points, domain.ProfileDriving)
	if err == nil {
		t.Fatal("expected error for null matrix cell")
	}
	if !strings.Contains(err.Error(), "null metrics") {
		t.Errorf("unexpected error %v", err)
	}
}

func TestORSProfileTranslation(t *testing.T) {
	o, err := NewORSProvider("test-key", newTestClient())
	if err != nil {
		t.Fatalf("NewORSProvider: %v", err)
	}

	cases := []struct {
		in   domain.Profile
		want string
	}{
		{domain.ProfileDriving, "driving-car"},
		{domain.ProfileWalking, "foot-walking"},
		{domain.ProfileCycling, "cycling-regular"},
	}
	for _, tc := range cases {
		if got := o.orsProfile(tc.in); got != tc.want {
			t.Errorf("orsProfile(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
