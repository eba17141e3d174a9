package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/im-vetri/Useful-APIs/internal/domain"
	"github.com/im-vetri/Useful-APIs/internal/platform/obs"
	"github.com/im-vetri/Useful-APIs/internal/ports"
)

// Engine is the entry point the transport layer talks to. It turns caller
// options into a provider chain and delegates to the per-operation
// resolvers.
type Engine struct {
	log       *zap.Logger
	chains    ports.ChainBuilder
	distance  *DistanceService
	matrix    *MatrixBuilder
	optimizer *RouteOptimizer
}

func NewEngine(log *zap.Logger, chains ports.ChainBuilder, cache ports.DistanceCache) *Engine {
	distance := NewDistanceService(log, cache)
	return &Engine{
		log:       log,
		chains:    chains,
		distance:  distance,
		matrix:    NewMatrixBuilder(log, distance),
		optimizer: NewRouteOptimizer(log),
	}
}

func (e *Engine) CalculateDistance(
	ctx context.Context,
	origin, destination domain.Point,
	opts domain.Options,
) (res domain.DistanceResult, err error) {
	defer obs.Time(ctx, e.log, "calculate_distance")(&err)

	profile, err := domain.ParseProfile(opts.Profile)
	if err != nil {
		return domain.DistanceResult{}, err
	}
	chain, err := e.chains.Chain(opts)
	if err != nil {
		return domain.DistanceResult{}, err
	}
	return e.distance.Resolve(ctx, chain, origin, destination, profile)
}

func (e *Engine) GetDistanceMatrix(
	ctx context.Context,
	points []domain.Point,
	opts domain.Options,
) (mx domain.Matrix, err error) {
	defer obs.Time(ctx, e.log, "get_distance_matrix")(&err)

	profile, err := domain.ParseProfile(opts.Profile)
	if err != nil {
		return domain.Matrix{}, err
	}
	chain, err := e.chains.Chain(opts)
	if err != nil {
		return domain.Matrix{}, err
	}
	return e.matrix.Resolve(ctx, chain, points, profile)
}

func (e *Engine) OptimizeRoute(
	ctx context.Context,
	points []domain.Point,
	opts domain.Options,
) (route domain.Route, err error) {
	defer obs.Time(ctx, e.log, "optimize_route")(&err)

	profile, err := domain.ParseProfile(opts.Profile)
	if err != nil {
		return domain.Route{}, err
	}
	chain, err := e.chains.Chain(opts)
	if err != nil {
		return domain.Route{}, err
	}
	return e.optimizer.Resolve(ctx, chain, points, profile, opts.Roundtrip)
}

// GetEstimatedTime reports the travel duration for a pair, or nil when
// resolution fell through to the duration-less haversine estimate.
func (e *Engine) GetEstimatedTime(
	ctx context.Context,
	origin, destination domain.Point,
	opts domain.Options,
) (dur *float64, err error) {
	defer obs.Time(ctx, e.log, "get_estimated_time")(&err)

	res, err := e.CalculateDistance(ctx, origin, destination, opts)
	if err != nil {
		return nil, err
	}
	return res.DurationSeconds, nil
}
