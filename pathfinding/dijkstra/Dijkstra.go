// Package dijkstra is uniform-cost search with the parity nudge cost.
package dijkstra

import (
	"context"

	"github.com/Starath/GridPath_BE/grid"
	"github.com/Starath/GridPath_BE/pathfinding"
)

type Strategy struct{}

func (Strategy) Algorithm() pathfinding.Algorithm { return pathfinding.Dijkstra }

func (Strategy) NewFrontier() pathfinding.Frontier { return pathfinding.NewPriorityFrontier() }

func (Strategy) Cost(from, to grid.Coordinate) float64 { return pathfinding.NudgeCost(from, to) }

func (Strategy) Priority(cost float64, next, goal grid.Coordinate) float64 { return cost }

func Search(ctx context.Context, g *grid.Grid, reporter pathfinding.Reporter) (*pathfinding.Result, error) {
	return pathfinding.Search(ctx, g, Strategy{}, reporter)
}
