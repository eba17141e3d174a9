package services

import (
	"context"
	"errors"
	"math"

	"go.uber.org/zap"

	"github.com/im-vetri/Useful-APIs/internal/domain"
	"github.com/im-vetri/Useful-APIs/internal/ports"
)

// RouteOptimizer orders multi-stop routes, preferring a provider's native
// optimization endpoint and otherwise running a local nearest-neighbor
// pass.
type RouteOptimizer struct {
	log *zap.Logger
}

func NewRouteOptimizer(log *zap.Logger) *RouteOptimizer {
	return &RouteOptimizer{log: log}
}

func (o *RouteOptimizer) Resolve(
	ctx context.Context,
	chain []ports.Provider,
	points []domain.Point,
	profile domain.Profile,
	roundtrip bool,
) (domain.Route, error) {
	if len(points) < 2 {
		return domain.Route{}, &domain.InvalidInputError{Reason: "route optimization requires at least 2 points"}
	}

	for _, p := range chain {
		if err := ctx.Err(); err != nil {
			return domain.Route{}, err
		}

		resolver, ok := p.(ports.RouteResolver)
		if !ok {
			continue
		}

		route, err := resolver.ResolveOptimizedRoute(ctx, points, profile, roundtrip)
		if err == nil {
			return route, nil
		}

		if errors.Is(err, ports.ErrUnsupported) {
			continue
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Route{}, ctxErr
		}

		o.log.Warn("route provider failed",
			zap.String("provider", p.Name()),
			zap.Error(err))
	}

	if err := ctx.Err(); err != nil {
		return domain.Route{}, err
	}

	return nearestNeighborRoute(points, roundtrip), nil
}

// nearestNeighborRoute greedily visits the closest unvisited point starting
// from index 0. It approximates the optimal tour; exact distance ties keep
// the lowest input index, so the result is deterministic for a given input
// order.
func nearestNeighborRoute(points []domain.Point, roundtrip bool) domain.Route {
	n := len(points)
	order := make([]int, 0, n)
	visited := make([]bool, n)

	current := 0
	order = append(order, 0)
	visited[0] = true

	var total float64
	for len(order) < n {
		next := -1
		best := math.MaxFloat64
		for j := 0; j < n; j++ {
			if visited[j] {
				continue
			}
			if d := domain.Haversine(points[current], points[j]); d < best {
				best = d
				next = j
			}
		}
		order = append(order, next)
		visited[next] = true
		total += best
		current = next
	}

	if roundtrip {
		total += domain.Haversine(points[current], points[0])
	}

	waypoints := make([]domain.Point, n)
	for pos, idx := range order {
		waypoints[pos] = points[idx]
	}

	return domain.Route{
		Waypoints:           waypoints,
		WaypointOrder:       order,
		TotalDistanceMeters: total,
		Provider:            ProviderNearestNeighbor,
	}
}
