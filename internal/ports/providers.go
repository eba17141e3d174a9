package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/im-vetri/Useful-APIs/internal/domain"
)

// ErrUnsupported signals that a provider cannot serve a particular request.
// Orchestrators treat it as "try the next provider", never as a failure.
var ErrUnsupported = errors.New("operation not supported by provider")

// Provider identifies one upstream routing backend in the chain.
type Provider interface {
	Name() string
}

// PairResolver is the minimal routing capability: distance and travel
// duration for a single origin/destination pair.
type PairResolver interface {
	Provider
	ResolvePair(ctx context.Context, origin, destination domain.Point, profile domain.Profile) (domain.DistanceResult, error)
}

// MatrixResolver is an optional extension for providers with a native
// batched matrix endpoint (one upstream call for all NxN cells).
type MatrixResolver interface {
	Provider
	ResolveMatrix(ctx context.Context, points []domain.Point, profile domain.Profile) (domain.Matrix, error)
}

// RouteResolver is an optional extension for providers that can reorder
// waypoints into an optimized tour. Implementations return the tour already
// mapped back to original input indices; orchestrators never see
// provider-specific order encodings.
type RouteResolver interface {
	Provider
	ResolveOptimizedRoute(ctx context.Context, points []domain.Point, profile domain.Profile, roundtrip bool) (domain.Route, error)
}

// ChainBuilder assembles the ordered provider chain for one call from the
// caller's options. Providers without credentials are left out.
type ChainBuilder interface {
	Chain(opts domain.Options) ([]Provider, error)
}

// ProviderError wraps a single adapter failure with the provider identity,
// so chain-walk logs can attribute it.
type ProviderError struct {
	Provider string
	Op       string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
