package pathfinding

import "github.com/Starath/GridPath_BE/grid"

type EventKind string

const (
	EventVisited EventKind = "visited"
	EventPath    EventKind = "path"
	EventNoPath  EventKind = "no_path"
)

// Event is one entry of the search trace. For EventNoPath, Cell is the goal
// that could not be reached.
type Event struct {
	Kind EventKind       `json:"kind"`
	Cell grid.Coordinate `json:"cell"`
}

type Result struct {
	Algorithm     Algorithm         `json:"algorithm"`
	Start         grid.Coordinate   `json:"start"`
	Goal          grid.Coordinate   `json:"goal"`
	Visited       []grid.Coordinate `json:"visited"`
	Path          []grid.Coordinate `json:"path"`
	Found         bool              `json:"found"`
	NodesVisited  int               `json:"nodesVisited"`
	NodesExpanded int               `json:"nodesExpanded"`
	Cost          float64           `json:"cost"`
}

// Hops is the number of moves on the path, or -1 when no path was found.
func (r *Result) Hops() int {
	if !r.Found || len(r.Path) == 0 {
		return -1
	}
	return len(r.Path) - 1
}
