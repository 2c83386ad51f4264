package session

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Starath/GridPath_BE/grid"
	"github.com/Starath/GridPath_BE/pathfinding"
)

type Comparison struct {
	Algorithm pathfinding.Algorithm
	Result    *pathfinding.Result
	Duration  time.Duration
}

// Compare runs each algorithm concurrently, each on its own copy of g, and
// returns the outcomes in the order requested. No algorithms means all.
func Compare(ctx context.Context, g *grid.Grid, algorithms ...string) ([]Comparison, error) {
	if len(algorithms) == 0 {
		for _, alg := range Algorithms() {
			algorithms = append(algorithms, string(alg))
		}
	}

	strategies := make([]pathfinding.Strategy, len(algorithms))
	for i, name := range algorithms {
		strategy, err := ByName(name)
		if err != nil {
			return nil, err
		}
		strategies[i] = strategy
	}

	out := make([]Comparison, len(strategies))
	eg, ctx := errgroup.WithContext(ctx)
	for i, strategy := range strategies {
		i, strategy := i, strategy
		own := g.Clone()
		eg.Go(func() error {
			started := time.Now()
			result, err := pathfinding.Search(ctx, own, strategy, nil)
			if err != nil {
				return fmt.Errorf("%s: %w", strategy.Algorithm(), err)
			}
			out[i] = Comparison{Algorithm: strategy.Algorithm(), Result: result, Duration: time.Since(started)}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
