// Package bfs is breadth-first search over the grid: every step costs the
// same and the frontier is a plain FIFO queue, so the first time the goal is
// dequeued the path has the fewest hops.
package bfs

import (
	"context"

	"github.com/Starath/GridPath_BE/grid"
	"github.com/Starath/GridPath_BE/pathfinding"
)

type Strategy struct{}

func (Strategy) Algorithm() pathfinding.Algorithm { return pathfinding.BFS }

func (Strategy) NewFrontier() pathfinding.Frontier { return pathfinding.NewQueueFrontier() }

func (Strategy) Cost(from, to grid.Coordinate) float64 { return pathfinding.UnitCost(from, to) }

// Priority is the hop count; the FIFO frontier never reads it.
func (Strategy) Priority(cost float64, next, goal grid.Coordinate) float64 { return cost }

// Search runs BFS from g.Start to g.Goal.
func Search(ctx context.Context, g *grid.Grid, reporter pathfinding.Reporter) (*pathfinding.Result, error) {
	return pathfinding.Search(ctx, g, Strategy{}, reporter)
}
