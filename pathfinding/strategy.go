package pathfinding

import (
	"errors"

	"github.com/Starath/GridPath_BE/grid"
)

var (
	// ErrInvalidConfig wraps grid validation failures detected before a search starts.
	ErrInvalidConfig = errors.New("invalid search configuration")
	// ErrSearchInProgress is returned when a grid already has an active search.
	ErrSearchInProgress = errors.New("search already in progress")
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
)

type Algorithm string

const (
	BFS      Algorithm = "bfs"
	Dijkstra Algorithm = "dijkstra"
	AStar    Algorithm = "astar"
)

const (
	StepCost       = 1.0
	NudgedStepCost = 1.001
)

// Strategy selects the frontier, edge cost and priority of a search.
type Strategy interface {
	Algorithm() Algorithm
	NewFrontier() Frontier
	Cost(from, to grid.Coordinate) float64
	Priority(cost float64, next, goal grid.Coordinate) float64
}

func UnitCost(from, to grid.Coordinate) float64 { return StepCost }

// NudgeCost charges NudgedStepCost for a move against the parity grain of
// from: changing x on an even cell or changing y on an odd cell. Hop counts
// are unaffected; among equal-length paths the straighter one wins.
func NudgeCost(from, to grid.Coordinate) float64 {
	even := (from.X+from.Y)%2 == 0
	if (even && to.X != from.X) || (!even && to.Y != from.Y) {
		return NudgedStepCost
	}
	return StepCost
}
