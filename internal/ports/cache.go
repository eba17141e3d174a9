package ports

import (
	"context"

	"github.com/im-vetri/Useful-APIs/internal/domain"
)

// DistanceCache is an optional read-through store for provider-resolved pair
// results. Get returns (nil, nil) on a miss. Implementations own their key
// scheme; callers speak in domain terms only.
type DistanceCache interface {
	Get(ctx context.Context, origin, destination domain.Point, profile domain.Profile) (*domain.DistanceResult, error)
	Put(ctx context.Context, origin, destination domain.Point, profile domain.Profile, result domain.DistanceResult) error
}
