package grid

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var ErrInvalidLayout = errors.New("invalid layout")

// CellState is the state of one tile as supplied by the tile provider.
type CellState int

const (
	Empty CellState = iota
	Obstacle
	Start
	Goal
)

var stateNames = map[CellState]string{
	Empty:    "empty",
	Obstacle: "obstacle",
	Start:    "start",
	Goal:     "goal",
}

var stateRunes = map[CellState]rune{
	Empty:    '.',
	Obstacle: '#',
	Start:    'S',
	Goal:     'G',
}

func (s CellState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("CellState(%d)", int(s))
}

// Rune returns the single character used in text layouts.
func (s CellState) Rune() rune {
	if r, ok := stateRunes[s]; ok {
		return r
	}
	return '?'
}

// ParseState accepts either the long name ("obstacle") or the layout rune ("#").
func ParseState(text string) (CellState, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	for state, name := range stateNames {
		if text == name {
			return state, nil
		}
	}
	if len([]rune(text)) == 1 {
		r := []rune(text)[0]
		for state, sr := range stateRunes {
			if r == unicode.ToLower(sr) {
				return state, nil
			}
		}
	}
	return Empty, fmt.Errorf("%w: unknown cell state %q", ErrInvalidLayout, text)
}

func (s CellState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *CellState) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	state, err := ParseState(text)
	if err != nil {
		return err
	}
	*s = state
	return nil
}

// Tile is one cell of an external layout. It carries its own position.
type Tile struct {
	X     int       `json:"x"`
	Y     int       `json:"y"`
	State CellState `json:"state"`
}

// TileSource is anything that can hand the engine a rectangular tile layout.
type TileSource interface {
	Size() (width, height int)
	TileAt(c Coordinate) Tile
}

// Layout is a row-major tile grid: Tiles[y][x] holds the tile at (x, y).
type Layout struct {
	Width  int
	Height int
	Tiles  [][]Tile
}

// NewLayout returns an all-empty layout.
func NewLayout(width, height int) *Layout {
	layout := &Layout{Width: width, Height: height, Tiles: make([][]Tile, height)}
	for y := 0; y < height; y++ {
		row := make([]Tile, width)
		for x := 0; x < width; x++ {
			row[x] = Tile{X: x, Y: y, State: Empty}
		}
		layout.Tiles[y] = row
	}
	return layout
}

// ParseLayout builds a layout from text rows using '.', '#', 'S' and 'G'.
// Every row must have the same width.
func ParseLayout(rows []string) (*Layout, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidLayout)
	}
	width := len([]rune(rows[0]))
	if width == 0 {
		return nil, fmt.Errorf("%w: empty row", ErrInvalidLayout)
	}
	layout := NewLayout(width, len(rows))
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("%w: row %d has width %d, expected %d", ErrInvalidLayout, y, len(runes), width)
		}
		for x, r := range runes {
			state, err := ParseState(string(r))
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", y, x, err)
			}
			layout.Tiles[y][x].State = state
		}
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return layout, nil
}

// Validate checks the shape and that start and goal appear at most once.
func (l *Layout) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidLayout, l.Width, l.Height)
	}
	if len(l.Tiles) != l.Height {
		return fmt.Errorf("%w: %d rows, expected %d", ErrInvalidLayout, len(l.Tiles), l.Height)
	}
	counts := map[CellState]int{}
	for y, row := range l.Tiles {
		if len(row) != l.Width {
			return fmt.Errorf("%w: row %d has width %d, expected %d", ErrInvalidLayout, y, len(row), l.Width)
		}
		for x, tile := range row {
			if tile.X != x || tile.Y != y {
				return fmt.Errorf("%w: tile at row %d col %d reports position %s", ErrInvalidLayout, y, x, Coordinate{tile.X, tile.Y})
			}
			counts[tile.State]++
		}
	}
	if counts[Start] > 1 {
		return fmt.Errorf("%w: %d start cells", ErrInvalidLayout, counts[Start])
	}
	if counts[Goal] > 1 {
		return fmt.Errorf("%w: %d goal cells", ErrInvalidLayout, counts[Goal])
	}
	return nil
}

func (l *Layout) Size() (int, int) { return l.Width, l.Height }

func (l *Layout) inBounds(c Coordinate) bool {
	return 0 <= c.X && c.X < l.Width && 0 <= c.Y && c.Y < l.Height
}

// TileAt returns the tile at c, or an empty tile when c is outside the layout.
func (l *Layout) TileAt(c Coordinate) Tile {
	if !l.inBounds(c) {
		return Tile{X: c.X, Y: c.Y, State: Empty}
	}
	return l.Tiles[c.Y][c.X]
}

// Set changes the state of one tile. Out of bounds writes are ignored.
func (l *Layout) Set(c Coordinate, state CellState) {
	if l.inBounds(c) {
		l.Tiles[c.Y][c.X].State = state
	}
}

// Find returns the first tile in row-major order with the given state.
func (l *Layout) Find(state CellState) (Coordinate, bool) {
	for _, row := range l.Tiles {
		for _, tile := range row {
			if tile.State == state {
				return Coordinate{X: tile.X, Y: tile.Y}, true
			}
		}
	}
	return Coordinate{}, false
}

// Rows renders the layout back into its text form.
func (l *Layout) Rows() []string {
	rows := make([]string, 0, l.Height)
	for _, row := range l.Tiles {
		var sb strings.Builder
		for _, tile := range row {
			sb.WriteRune(tile.State.Rune())
		}
		rows = append(rows, sb.String())
	}
	return rows
}
