package grid

import "fmt"

// Coordinate is an integer cell position. X grows east, Y grows south.
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the coordinate shifted by delta.
func (c Coordinate) Add(delta Coordinate) Coordinate {
	return Coordinate{X: c.X + delta.X, Y: c.Y + delta.Y}
}

// Less orders coordinates by X, then Y. Only used where containers need a
// deterministic order (frontier ties, sorted obstacle listings).
func (c Coordinate) Less(other Coordinate) bool {
	if c.X != other.X {
		return c.X < other.X
	}
	return c.Y < other.Y
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Manhattan returns |b.x - a.x| + |b.y - a.y|.
func Manhattan(a, b Coordinate) int {
	return abs(b.X-a.X) + abs(b.Y-a.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Cardinal deltas in expansion order.
var (
	East  = Coordinate{X: 1, Y: 0}
	West  = Coordinate{X: -1, Y: 0}
	North = Coordinate{X: 0, Y: -1}
	South = Coordinate{X: 0, Y: 1}
)

// Directions is the fixed candidate order used by Neighbors.
var Directions = [4]Coordinate{East, West, North, South}

// DirectionByName maps user-facing direction names to deltas.
var DirectionByName = map[string]Coordinate{
	"right": East,
	"left":  West,
	"up":    North,
	"down":  South,
}
