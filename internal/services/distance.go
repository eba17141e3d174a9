package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/im-vetri/Useful-APIs/internal/domain"
	"github.com/im-vetri/Useful-APIs/internal/ports"
)

// Result tags for locally computed values. Network adapters report their
// own names.
const (
	ProviderHaversine       = "haversine"
	ProviderNearestNeighbor = "nearest_neighbor"
	ProviderMixed           = "mixed"
)

// DistanceService resolves a single origin/destination pair by walking the
// provider chain in order and degrading to the haversine formula once the
// chain is exhausted.
type DistanceService struct {
	log   *zap.Logger
	cache ports.DistanceCache
}

func NewDistanceService(log *zap.Logger, cache ports.DistanceCache) *DistanceService {
	return &DistanceService{log: log, cache: cache}
}

// Resolve tries each chain provider in order. Providers without pair
// support are skipped, failing providers are logged and skipped, and a
// canceled context aborts immediately without falling back. An exhausted
// chain yields a haversine estimate with no duration.
func (s *DistanceService) Resolve(
	ctx context.Context,
	chain []ports.Provider,
	origin, destination domain.Point,
	profile domain.Profile,
) (domain.DistanceResult, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, origin, destination, profile)
		if err != nil {
			s.log.Warn("distance cache read failed", zap.Error(err))
		} else if cached != nil {
			return *cached, nil
		}
	}

	for _, p := range chain {
		if err := ctx.Err(); err != nil {
			return domain.DistanceResult{}, err
		}

		resolver, ok := p.(ports.PairResolver)
		if !ok {
			continue
		}

		res, err := resolver.ResolvePair(ctx, origin, destination, profile)
		if err == nil {
			s.store(ctx, origin, destination, profile, res)
			return res, nil
		}

		if errors.Is(err, ports.ErrUnsupported) {
			continue
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.DistanceResult{}, ctxErr
		}

		s.log.Warn("distance provider failed",
			zap.String("provider", p.Name()),
			zap.Error(err))
	}

	if err := ctx.Err(); err != nil {
		return domain.DistanceResult{}, err
	}

	return domain.DistanceResult{
		DistanceMeters: domain.Haversine(origin, destination),
		Provider:       ProviderHaversine,
	}, nil
}

// store writes a provider-resolved pair through the cache. Fallback
// estimates are never cached.
func (s *DistanceService) store(
	ctx context.Context,
	origin, destination domain.Point,
	profile domain.Profile,
	res domain.DistanceResult,
) {
	if s.cache == nil || res.Provider == ProviderHaversine {
		return
	}
	if err := s.cache.Put(ctx, origin, destination, profile, res); err != nil {
		s.log.Warn("distance cache write failed", zap.Error(err))
	}
}
