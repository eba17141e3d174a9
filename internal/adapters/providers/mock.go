package providers

import (
	"context"

	"github.com/im-vetri/Useful-APIs/internal/domain"
	"github.com/im-vetri/Useful-APIs/internal/ports"
)

// MockProvider is a scripted in-memory provider used by service and handler
// tests to exercise chain behavior without network access. A nil operation
// func reports ErrUnsupported, mirroring an adapter without that
// capability.
type MockProvider struct {
	ID     string
	Pair   func(ctx context.Context, origin, destination domain.Point, profile domain.Profile) (domain.DistanceResult, error)
	Matrix func(ctx context.Context, points []domain.Point, profile domain.Profile) (domain.Matrix, error)
	Route  func(ctx context.Context, points []domain.Point, profile domain.Profile, roundtrip bool) (domain.Route, error)
}

func (m *MockProvider) Name() string { return m.ID }

func (m *MockProvider) ResolvePair(
	ctx context.Context,
	origin, destination domain.Point,
	profile domain.Profile,
) (domain.DistanceResult, error) {
	if m.Pair == nil {
		return domain.DistanceResult{}, ports.ErrUnsupported
	}
	return m.Pair(ctx, origin, destination, profile)
}

func (m *MockProvider) ResolveMatrix(
	ctx context.Context,
	points []domain.Point,
	profile domain.Profile,
) (domain.Matrix, error) {
	if m.Matrix == nil {
		return domain.Matrix{}, ports.ErrUnsupported
	}
	return m.Matrix(ctx, points, profile)
}

func (m *MockProvider) ResolveOptimizedRoute(
	ctx context.Context,
	points []domain.Point,
	profile domain.Profile,
	roundtrip bool,
) (domain.Route, error) {
	if m.Route == nil {
		return domain.Route{}, ports.ErrUnsupported
	}
	return m.Route(ctx, points, profile, roundtrip)
}
