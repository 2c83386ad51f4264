package grid

import (
	"errors"
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"
)

var (
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	ErrBlocked     = errors.New("cell is blocked")
)

// Grid is the fixed-size search space: dimensions, endpoints and obstacles.
type Grid struct {
	Width  int
	Height int
	Start  Coordinate
	Goal   Coordinate

	obstacles mapset.Set[Coordinate]
}

// New returns an obstacle-free grid with start at the top-left corner and
// goal at the bottom-right corner.
func New(width, height int) *Grid {
	return &Grid{
		Width:     width,
		Height:    height,
		Start:     Coordinate{0, 0},
		Goal:      Coordinate{X: width - 1, Y: height - 1},
		obstacles: mapset.New[Coordinate](),
	}
}

// FromLayout builds a grid sized to the layout, taking its obstacles and,
// when present, its start and goal tiles.
func FromLayout(src TileSource) *Grid {
	width, height := src.Size()
	g := New(width, height)
	g.ImportObstacles(src)
	g.ImportEndpoints(src)
	return g
}

func (g *Grid) InBounds(id Coordinate) bool {
	return 0 <= id.X && id.X < g.Width && 0 <= id.Y && id.Y < g.Height
}

func (g *Grid) Passable(id Coordinate) bool {
	return !g.obstacles.Has(id)
}

// Neighbors returns the in-bounds passable cells adjacent to id in
// East, West, North, South order, reversed when x+y is even. The reversal
// alternates expansion order between cells and yields straighter paths.
func (g *Grid) Neighbors(id Coordinate) []Coordinate {
	ret := make([]Coordinate, 0, len(Directions))
	for _, dir := range Directions {
		next := id.Add(dir)
		if g.InBounds(next) && g.Passable(next) {
			ret = append(ret, next)
		}
	}
	if (id.X+id.Y)%2 == 0 {
		for i, j := 0, len(ret)-1; i < j; i, j = i+1, j-1 {
			ret[i], ret[j] = ret[j], ret[i]
		}
	}
	return ret
}

// ImportObstacles replaces the obstacle set with the obstacle tiles of src.
// Each tile's own position is used; other states are ignored.
func (g *Grid) ImportObstacles(src TileSource) {
	g.obstacles = mapset.New[Coordinate]()
	width, height := src.Size()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			tile := src.TileAt(Coordinate{X: x, Y: y})
			if tile.State == Obstacle {
				g.obstacles.Put(Coordinate{X: tile.X, Y: tile.Y})
			}
		}
	}
}

// ImportEndpoints copies start and goal tiles from src when it has them.
func (g *Grid) ImportEndpoints(src TileSource) {
	width, height := src.Size()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			tile := src.TileAt(Coordinate{X: x, Y: y})
			switch tile.State {
			case Start:
				g.Start = Coordinate{X: tile.X, Y: tile.Y}
			case Goal:
				g.Goal = Coordinate{X: tile.X, Y: tile.Y}
			}
		}
	}
}

func (g *Grid) SetObstacle(id Coordinate) {
	if g.InBounds(id) {
		g.obstacles.Put(id)
	}
}

func (g *Grid) ClearObstacle(id Coordinate) {
	g.obstacles.Remove(id)
}

// ToggleObstacle flips an empty cell to an obstacle and back. Start, goal and
// out of bounds cells are left alone; the returned bool reports a change.
func (g *Grid) ToggleObstacle(id Coordinate) bool {
	if !g.InBounds(id) || id == g.Start || id == g.Goal {
		return false
	}
	if g.obstacles.Has(id) {
		g.obstacles.Remove(id)
	} else {
		g.obstacles.Put(id)
	}
	return true
}

func (g *Grid) ClearObstacles() {
	g.obstacles = mapset.New[Coordinate]()
}

func (g *Grid) IsObstacle(id Coordinate) bool {
	return g.obstacles.Has(id)
}

func (g *Grid) ObstacleCount() int {
	return g.obstacles.Size()
}

// Obstacles lists the obstacle cells sorted by Coordinate.Less.
func (g *Grid) Obstacles() []Coordinate {
	out := make([]Coordinate, 0, g.obstacles.Size())
	g.obstacles.Each(func(c Coordinate) {
		out = append(out, c)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Clone returns an independent copy.
func (g *Grid) Clone() *Grid {
	c := New(g.Width, g.Height)
	c.Start, c.Goal = g.Start, g.Goal
	g.obstacles.Each(func(id Coordinate) {
		c.obstacles.Put(id)
	})
	return c
}

// Layout exports the grid as a tile layout.
func (g *Grid) Layout() *Layout {
	layout := NewLayout(g.Width, g.Height)
	g.obstacles.Each(func(id Coordinate) {
		layout.Set(id, Obstacle)
	})
	layout.Set(g.Start, Start)
	layout.Set(g.Goal, Goal)
	return layout
}

// MoveStart shifts the start by delta. The move is rejected when it leaves
// the grid or lands on the goal. An obstacle on the new cell is removed.
func (g *Grid) MoveStart(delta Coordinate) error {
	next := g.Start.Add(delta)
	if err := g.checkEndpointMove(next, g.Goal); err != nil {
		return fmt.Errorf("move start: %w", err)
	}
	g.obstacles.Remove(next)
	g.Start = next
	return nil
}

// MoveGoal is MoveStart for the goal.
func (g *Grid) MoveGoal(delta Coordinate) error {
	next := g.Goal.Add(delta)
	if err := g.checkEndpointMove(next, g.Start); err != nil {
		return fmt.Errorf("move goal: %w", err)
	}
	g.obstacles.Remove(next)
	g.Goal = next
	return nil
}

func (g *Grid) checkEndpointMove(next, other Coordinate) error {
	if !g.InBounds(next) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, next)
	}
	if next == other {
		return fmt.Errorf("%w: %s", ErrBlocked, next)
	}
	return nil
}

// Validate reports whether start and goal are usable for a search.
func (g *Grid) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: grid is %dx%d", ErrOutOfBounds, g.Width, g.Height)
	}
	if !g.InBounds(g.Start) {
		return fmt.Errorf("start %s: %w", g.Start, ErrOutOfBounds)
	}
	if !g.InBounds(g.Goal) {
		return fmt.Errorf("goal %s: %w", g.Goal, ErrOutOfBounds)
	}
	if g.obstacles.Has(g.Start) {
		return fmt.Errorf("start %s: %w", g.Start, ErrBlocked)
	}
	if g.obstacles.Has(g.Goal) {
		return fmt.Errorf("goal %s: %w", g.Goal, ErrBlocked)
	}
	return nil
}
