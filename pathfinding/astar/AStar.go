// Package astar is Dijkstra guided by the Manhattan distance to the goal.
// The heuristic never overestimates a 4-directional unit-cost move count, so
// the returned path is as short as Dijkstra's.
package astar

import (
	"context"

	"github.com/Starath/GridPath_BE/grid"
	"github.com/Starath/GridPath_BE/pathfinding"
)

type Strategy struct{}

func (Strategy) Algorithm() pathfinding.Algorithm { return pathfinding.AStar }

func (Strategy) NewFrontier() pathfinding.Frontier { return pathfinding.NewPriorityFrontier() }

func (Strategy) Cost(from, to grid.Coordinate) float64 { return pathfinding.NudgeCost(from, to) }

// Priority adds the heuristic on top of the true accumulated cost. The
// engine keeps cost and priority separate, so costSoFar never includes it.
func (Strategy) Priority(cost float64, next, goal grid.Coordinate) float64 {
	return cost + Heuristic(next, goal)
}

// Heuristic is the Manhattan distance between a and b.
func Heuristic(a, b grid.Coordinate) float64 {
	return float64(grid.Manhattan(a, b))
}

func Search(ctx context.Context, g *grid.Grid, reporter pathfinding.Reporter) (*pathfinding.Result, error) {
	return pathfinding.Search(ctx, g, Strategy{}, reporter)
}
