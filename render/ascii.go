// Package render draws a grid and an optional search trace as text.
package render

import (
	"fmt"
	"strings"

	"github.com/Starath/GridPath_BE/grid"
	"github.com/Starath/GridPath_BE/pathfinding"
)

const (
	RuneEmpty    = '.'
	RuneObstacle = '#'
	RuneStart    = 'S'
	RuneGoal     = 'G'
	RuneVisited  = 'o'
	RunePath     = '*'
)

// ASCII renders g one row per line. When result is non-nil, visited cells
// and path cells are overlaid; start and goal always win.
func ASCII(g *grid.Grid, result *pathfinding.Result) string {
	cells := make([][]rune, g.Height)
	for y := range cells {
		cells[y] = []rune(strings.Repeat(string(RuneEmpty), g.Width))
	}
	set := func(c grid.Coordinate, r rune) {
		if g.InBounds(c) {
			cells[c.Y][c.X] = r
		}
	}
	for _, c := range g.Obstacles() {
		set(c, RuneObstacle)
	}
	if result != nil {
		for _, c := range result.Visited {
			set(c, RuneVisited)
		}
		for _, c := range result.Path {
			set(c, RunePath)
		}
	}
	set(g.Start, RuneStart)
	set(g.Goal, RuneGoal)

	var sb strings.Builder
	for _, row := range cells {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary is a one-line description of a result.
func Summary(result *pathfinding.Result) string {
	if result == nil {
		return "no result"
	}
	if !result.Found {
		return fmt.Sprintf("%s: no path found (%d cells visited)", result.Algorithm, result.NodesVisited)
	}
	return fmt.Sprintf("%s: %d hops, cost %.3f, %d cells visited, %d expanded",
		result.Algorithm, result.Hops(), result.Cost, result.NodesVisited, result.NodesExpanded)
}
