package session

import (
	"fmt"
	"strings"

	"github.com/Starath/GridPath_BE/pathfinding"
	"github.com/Starath/GridPath_BE/pathfinding/astar"
	"github.com/Starath/GridPath_BE/pathfinding/bfs"
	"github.com/Starath/GridPath_BE/pathfinding/dijkstra"
)

var registry = map[pathfinding.Algorithm]pathfinding.Strategy{
	pathfinding.BFS:      bfs.Strategy{},
	pathfinding.Dijkstra: dijkstra.Strategy{},
	pathfinding.AStar:    astar.Strategy{},
}

var aliases = map[string]pathfinding.Algorithm{
	"breadth-first": pathfinding.BFS,
	"breadthfirst":  pathfinding.BFS,
	"a*":            pathfinding.AStar,
	"a-star":        pathfinding.AStar,
}

// Algorithms lists the supported algorithms in display order.
func Algorithms() []pathfinding.Algorithm {
	return []pathfinding.Algorithm{pathfinding.BFS, pathfinding.Dijkstra, pathfinding.AStar}
}

// ByName resolves an algorithm name, case-insensitively.
func ByName(name string) (pathfinding.Strategy, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alg, ok := aliases[key]; ok {
		key = string(alg)
	}
	strategy, ok := registry[pathfinding.Algorithm(key)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", pathfinding.ErrUnknownAlgorithm, name)
	}
	return strategy, nil
}
