package services

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/im-vetri/Useful-APIs/internal/domain"
	"github.com/im-vetri/Useful-APIs/internal/ports"
)

// Ceiling for in-flight pair requests during the pairwise fallback.
// Unbounded fan-out would burn upstream quotas mid-matrix.
const maxConcurrentPairCalls = 5

type cellResult struct {
	i, j int
	res  domain.DistanceResult
	err  error
}

// MatrixBuilder resolves NxN matrices, preferring a provider's native
// matrix call and otherwise fanning out bounded pairwise resolution so
// every cell still degrades gracefully.
type MatrixBuilder struct {
	log      *zap.Logger
	distance *DistanceService
}

func NewMatrixBuilder(log *zap.Logger, distance *DistanceService) *MatrixBuilder {
	return &MatrixBuilder{log: log, distance: distance}
}

func (b *MatrixBuilder) Resolve(
	ctx context.Context,
	chain []ports.Provider,
	points []domain.Point,
	profile domain.Profile,
) (domain.Matrix, error) {
	if len(points) < 2 {
		return domain.Matrix{}, &domain.InvalidInputError{Reason: "matrix requires at least 2 points"}
	}

	// Prefer a single batched request when an adapter supports it.
	for _, p := range chain {
		if err := ctx.Err(); err != nil {
			return domain.Matrix{}, err
		}

		resolver, ok := p.(ports.MatrixResolver)
		if !ok {
			continue
		}

		mx, err := resolver.ResolveMatrix(ctx, points, profile)
		if err == nil {
			return mx, nil
		}

		if errors.Is(err, ports.ErrUnsupported) {
			continue
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Matrix{}, ctxErr
		}

		b.log.Warn("matrix provider failed",
			zap.String("provider", p.Name()),
			zap.Error(err))
	}

	return b.pairwise(ctx, chain, points, profile)
}

// pairwise fills the matrix cell by cell through the standard chain walk,
// so a provider that lost its native matrix call can still serve pairs and
// unreachable cells drop to haversine instead of nulling the matrix.
func (b *MatrixBuilder) pairwise(
	ctx context.Context,
	chain []ports.Provider,
	points []domain.Point,
	profile domain.Profile,
) (domain.Matrix, error) {
	n := len(points)
	distances := make([][]float64, n)
	durations := make([][]*float64, n)
	for i := range distances {
		distances[i] = make([]float64, n)
		durations[i] = make([]*float64, n)
		durations[i][i] = domain.Seconds(0)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := semaphore.NewWeighted(maxConcurrentPairCalls)
	results := make(chan cellResult, n*(n-1))
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}

			wg.Add(1)
			go func(i, j int) {
				defer wg.Done()

				if err := sem.Acquire(ctx, 1); err != nil {
					results <- cellResult{i: i, j: j, err: err}
					return
				}
				defer sem.Release(1)

				res, err := b.distance.Resolve(ctx, chain, points[i], points[j], profile)
				if err != nil {
					results <- cellResult{i: i, j: j, err: err}
					cancel()
					return
				}
				results <- cellResult{i: i, j: j, res: res}
			}(i, j)
		}
	}

	wg.Wait()
	close(results)

	var (
		firstErr error
		provider string
		mixed    bool
	)
	for cell := range results {
		if cell.err != nil {
			if firstErr == nil {
				firstErr = cell.err
			}
			continue
		}

		distances[cell.i][cell.j] = cell.res.DistanceMeters
		durations[cell.i][cell.j] = cell.res.DurationSeconds

		if provider == "" {
			provider = cell.res.Provider
		} else if provider != cell.res.Provider {
			mixed = true
		}
	}
	if firstErr != nil {
		return domain.Matrix{}, firstErr
	}

	if mixed {
		provider = ProviderMixed
	}

	return domain.Matrix{Distances: distances, Durations: durations, Provider: provider}, nil
}
