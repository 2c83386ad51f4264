package pathfinding

import (
	"context"
	"fmt"

	"github.com/Starath/GridPath_BE/grid"
)

// Search runs strategy from g.Start to g.Goal. Trace events go to reporter in
// discovery order, followed by the path (start to goal, inclusive) or a
// single no_path event.
//
// An unreachable goal is a normal outcome: Found is false and the error is
// nil. Invalid endpoints fail with ErrInvalidConfig before any event is sent.
// ctx is checked between frontier pops; on cancellation the partial result is
// returned with ctx.Err().
func Search(ctx context.Context, g *grid.Grid, strategy Strategy, reporter Reporter) (*Result, error) {
	if reporter == nil {
		reporter = Discard
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	start, goal := g.Start, g.Goal
	result := &Result{
		Algorithm: strategy.Algorithm(),
		Start:     start,
		Goal:      goal,
		Visited:   []grid.Coordinate{},
	}

	// Fresh per run, never shared between searches.
	cameFrom := map[grid.Coordinate]grid.Coordinate{start: start}
	costSoFar := map[grid.Coordinate]float64{start: 0}

	frontier := strategy.NewFrontier()
	frontier.Put(Item{Cell: start, Cost: 0, Priority: strategy.Priority(0, start, goal)})

	found := false
	for !frontier.Empty() {
		if err := ctx.Err(); err != nil {
			result.NodesVisited = len(result.Visited)
			return result, err
		}

		item, _ := frontier.Get()
		current := item.Cell
		// A cheaper entry for this cell was pushed later and already expanded.
		if item.Cost > costSoFar[current] {
			continue
		}
		result.NodesExpanded++

		if current == goal {
			found = true
			break
		}

		for _, next := range g.Neighbors(current) {
			newCost := costSoFar[current] + strategy.Cost(current, next)
			oldCost, seen := costSoFar[next]
			if seen && newCost >= oldCost {
				continue
			}
			costSoFar[next] = newCost
			cameFrom[next] = current
			frontier.Put(Item{Cell: next, Cost: newCost, Priority: strategy.Priority(newCost, next, goal)})
			if !seen {
				result.Visited = append(result.Visited, next)
				reporter.Report(Event{Kind: EventVisited, Cell: next})
			}
		}
	}
	result.NodesVisited = len(result.Visited)

	if !found {
		reporter.Report(Event{Kind: EventNoPath, Cell: goal})
		return result, nil
	}

	path, ok := ReconstructPath(cameFrom, start, goal)
	if !ok {
		return result, fmt.Errorf("goal %s reached without a predecessor chain to %s", goal, start)
	}
	result.Found = true
	result.Path = path
	result.Cost = costSoFar[goal]
	for _, cell := range path {
		reporter.Report(Event{Kind: EventPath, Cell: cell})
	}
	return result, nil
}

// ReconstructPath follows cameFrom back from goal to start and returns the
// cells in start to goal order. It reports false when goal was never reached
// or the chain is broken, instead of walking forever.
func ReconstructPath(cameFrom map[grid.Coordinate]grid.Coordinate, start, goal grid.Coordinate) ([]grid.Coordinate, bool) {
	if _, reached := cameFrom[goal]; !reached {
		return nil, false
	}
	path := []grid.Coordinate{goal}
	current := goal
	for steps := 0; current != start; steps++ {
		if steps > len(cameFrom) {
			return nil, false
		}
		previous, ok := cameFrom[current]
		if !ok {
			return nil, false
		}
		path = append(path, previous)
		current = previous
	}
	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, true
}
