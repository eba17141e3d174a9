package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/im-vetri/Useful-APIs/internal/adapters/providers"
	"github.com/im-vetri/Useful-APIs/internal/domain"
	"github.com/im-vetri/Useful-APIs/internal/ports"
)

var (
	sanFrancisco = domain.Point{Lat: 37.7749, Lng: -122.4194}
	losAngeles   = domain.Point{Lat: 34.0522, Lng: -118.2437}
)

// nameOnlyProvider has no resolution capabilities at all, so the chain walk
// must skip it without invoking anything.
type nameOnlyProvider struct{ id string }

func (p nameOnlyProvider) Name() string { return p.id }

// memoryCache is a map-backed DistanceCache for tests.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]domain.DistanceResult
	puts    int
	getErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]domain.DistanceResult)}
}

func (c *memoryCache) key(origin, destination domain.Point, profile domain.Profile) string {
	return fmt.Sprintf("%s|%v,%v|%v,%v", profile, origin.Lat, origin.Lng, destination.Lat, destination.Lng)
}

func (c *memoryCache) Get(
	ctx context.Context,
	origin, destination domain.Point,
	profile domain.Profile,
) (*domain.DistanceResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	if res, ok := c.entries[c.key(origin, destination, profile)]; ok {
		return &res, nil
	}
	return nil, nil
}

func (c *memoryCache) Put(
	ctx context.Context,
	origin, destination domain.Point,
	profile domain.Profile,
	res domain.DistanceResult,
) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.puts++
	c.entries[c.key(origin, destination, profile)] = res
	return nil
}

func pairResult(meters, seconds float64, provider string) domain.DistanceResult {
	return domain.DistanceResult{
		DistanceMeters:  meters,
		DurationSeconds: domain.Seconds(seconds),
		Provider:        provider,
	}
}

func TestResolveWalksChainInOrder(t *testing.T) {
	var calls []string

	first := &providers.MockProvider{
		ID: "first",
		Pair: func(ctx context.Context, o, d domain.Point, p domain.Profile) (domain.DistanceResult, error) {
			calls = append(calls, "first")
			return domain.DistanceResult{}, errors.New("upstream down")
		},
	}
	second := &providers.MockProvider{
		ID: "second",
		Pair: func(ctx context.Context, o, d domain.Point, p domain.Profile) (domain.DistanceResult, error) {
			calls = append(calls, "second")
			return pairResult(1000, 100, "second"), nil
		},
	}

	s := NewDistanceService(zap.NewNop(), nil)
	res, err := s.Resolve(context.Background(), []ports.Provider{first, second},
		sanFrancisco, losAngeles, domain.ProfileDriving)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if res.Provider != "second" {
		t.Errorf("expected second provider to win, got %q", res.Provider)
	}
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Errorf("expected calls [first second], got %v", calls)
	}
}

func TestResolveNeverRetriesFailedProvider(t *testing.T) {
	var firstCalls int
	first := &providers.MockProvider{
		ID: "first",
		Pair: func(ctx context.Context, o, d domain.Point, p domain.Profile) (domain.DistanceResult, error) {
			firstCalls++
			return domain.DistanceResult{}, errors.New("upstream down")
		},
	}
	second := &providers.MockProvider{
		ID: "second",
		Pair: func(ctx context.Context, o, d domain.Point, p domain.Profile) (domain.DistanceResult, error) {
			return pairResult(1000, 100, "second"), nil
		},
	}

	s := NewDistanceService(zap.NewNop(), nil)
	if _, err := s.Resolve(context.Background(), []ports.Provider{first, second},
		sanFrancisco, losAngeles, domain.ProfileDriving); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if firstCalls != 1 {
		t.Errorf("expected a single attempt against failed provider, got %d", firstCalls)
	}
}

func TestResolveSkipsUnsupportedProvider(t *testing.T) {
	// Route is set but Pair is nil, so pair resolution reports
	// ErrUnsupported and the walk moves on silently.
	routeOnly := &providers.MockProvider{
		ID: "route-only",
		Route: func(ctx context.Context, pts []domain.Point, p domain.Profile, rt bool) (domain.Route, error) {
			return domain.Route{}, nil
		},
	}
	working := &providers.MockProvider{
		ID: "working",
		Pair: func(ctx context.Context, o, d domain.Point, p domain.Profile) (domain.DistanceResult, error) {
			return pairResult(2000, 200, "working"), nil
		},
	}

	s := NewDistanceService(zap.NewNop(), nil)
	res, err := s.Resolve(context.Background(), []ports.Provider{routeOnly, working},
		sanFrancisco, losAngeles, domain.ProfileDriving)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Provider != "working" {
		t.Errorf("expected working provider, got %q", res.Provider)
	}
}

func TestResolveSkipsProviderWithoutPairInterface(t *testing.T) {
	working := &providers.MockProvider{
		ID: "working",
		Pair: func(ctx context.Context, o, d domain.Point, p domain.Profile) (domain.DistanceResult, error) {
			return pairResult(2000, 200, "working"), nil
		},
	}

	s := NewDistanceService(zap.NewNop(), nil)
	res, err := s.Resolve(context.Background(),
		[]ports.Provider{nameOnlyProvider{id: "inert"}, working},
		sanFrancisco, losAngeles, domain.ProfileDriving)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Provider != "working" {
		t.Errorf("expected working provider, got %q", res.Provider)
	}
}

func TestResolveFallsBackToHaversine(t *testing.T) {
	s := NewDistanceService(zap.NewNop(), nil)
	res, err := s.Resolve(context.Background(), nil,
		sanFrancisco, losAngeles, domain.ProfileDriving)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if res.Provider != ProviderHaversine {
		t.Errorf("expected haversine fallback, got %q", res.Provider)
	}
	if res.DurationSeconds != nil {
		t.Errorf("expected absent duration on fallback, got %v", *res.DurationSeconds)
	}

	const want = 559120.0
	if res.DistanceMeters < want-200 || res.DistanceMeters > want+200 {
		t.Errorf("expected roughly %v meters, got %v", want, res.DistanceMeters)
	}
}

func TestResolveAllProvidersFailingStillDegrades(t *testing.T) {
	broken := func(id string) *providers.MockProvider {
		return &providers.MockProvider{
			ID: id,
			Pair: func(ctx context.Context, o, d domain.Point, p domain.Profile) (domain.DistanceResult, error) {
				return domain.DistanceResult{}, errors.New("unreachable")
			},
		}
	}

	s := NewDistanceService(zap.NewNop(), nil)
	res, err := s.Resolve(context.Background(),
		[]ports.Provider{broken("a"), broken("b"), broken("c")},
		sanFrancisco, losAngeles, domain.ProfileDriving)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Provider != ProviderHaversine {
		t.Errorf("expected haversine fallback, got %q", res.Provider)
	}
}

func TestResolveCanceledContextAbortsWithoutFallback(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewDistanceService(zap.NewNop(), nil)
	_, err := s.Resolve(ctx, nil, sanFrancisco, losAngeles, domain.ProfileDriving)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestResolveCancellationMidChainStopsWalk(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var secondCalled bool
	first := &providers.MockProvider{
		ID: "first",
		Pair: func(ctx context.Context, o, d domain.Point, p domain.Profile) (domain.DistanceResult, error) {
			cancel()
			return domain.DistanceResult{}, context.Canceled
		},
	}
	second := &providers.MockProvider{
		ID: "second",
		Pair: func(ctx context.Context, o, d domain.Point, p domain.Profile) (domain.DistanceResult, error) {
			secondCalled = true
			return pairResult(1, 1, "second"), nil
		},
	}

	s := NewDistanceService(zap.NewNop(), nil)
	_, err := s.Resolve(ctx, []ports.Provider{first, second},
		sanFrancisco, losAngeles, domain.ProfileDriving)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if secondCalled {
		t.Error("expected walk to stop at cancellation, but next provider was invoked")
	}
}

func TestResolveServesFromCache(t *testing.T) {
	cache := newMemoryCache()
	if err := cache.Put(context.Background(), sanFrancisco, losAngeles, domain.ProfileDriving,
		pairResult(559045, 19860, "google")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var providerCalled bool
	p := &providers.MockProvider{
		ID: "never",
		Pair: func(ctx context.Context, o, d domain.Point, pr domain.Profile) (domain.DistanceResult, error) {
			providerCalled = true
			return pairResult(1, 1, "never"), nil
		},
	}

	s := NewDistanceService(zap.NewNop(), cache)
	res, err := s.Resolve(context.Background(), []ports.Provider{p},
		sanFrancisco, losAngeles, domain.ProfileDriving)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if providerCalled {
		t.Error("expected cache hit to short-circuit the chain")
	}
	if res.Provider != "google" || res.DistanceMeters != 559045 {
		t.Errorf("unexpected cached result %+v", res)
	}
}

func TestResolveCachesProviderResult(t *testing.T) {
	cache := newMemoryCache()
	p := &providers.MockProvider{
		ID: "working",
		Pair: func(ctx context.Context, o, d domain.Point, pr domain.Profile) (domain.DistanceResult, error) {
			return pairResult(1000, 100, "working"), nil
		},
	}

	s := NewDistanceService(zap.NewNop(), cache)
	if _, err := s.Resolve(context.Background(), []ports.Provider{p},
		sanFrancisco, losAngeles, domain.ProfileDriving); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if cache.puts != 1 {
		t.Errorf("expected one cache write, got %d", cache.puts)
	}
}

func TestResolveNeverCachesFallback(t *testing.T) {
	cache := newMemoryCache()

	s := NewDistanceService(zap.NewNop(), cache)
	res, err := s.Resolve(context.Background(), nil,
		sanFrancisco, losAngeles, domain.ProfileDriving)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Provider != ProviderHaversine {
		t.Fatalf("expected haversine fallback, got %q", res.Provider)
	}

	if cache.puts != 0 {
		t.Errorf("expected no cache writes for fallback result, got %d", cache.puts)
	}
}

func TestResolveSurvivesCacheReadFailure(t *testing.T) {
	cache := newMemoryCache()
	cache.getErr = errors.New("redis down")

	p := &providers.MockProvider{
		ID: "working",
		Pair: func(ctx context.Context, o, d domain.Point, pr domain.Profile) (domain.DistanceResult, error) {
			return pairResult(1000, 100, "working"), nil
		},
	}

	s := NewDistanceService(zap.NewNop(), cache)
	res, err := s.Resolve(context.Background(), []ports.Provider{p},
		sanFrancisco, losAngeles, domain.ProfileDriving)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Provider != "working" {
		t.Errorf("expected provider result despite cache failure, got %q", res.Provider)
	}
}
