package api

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/Starath/GridPath_BE/config"
	"github.com/Starath/GridPath_BE/grid"
	"github.com/Starath/GridPath_BE/pathfinding/session"
)

// DefaultBoard is an empty board with start and goal one cell in from
// opposite corners.
func DefaultBoard(width, height int) *grid.Grid {
	g := grid.New(width, height)
	g.Start = defaultStart()
	g.Goal = defaultGoal(width, height)
	return g
}

func defaultStart() grid.Coordinate { return grid.Coordinate{X: 1, Y: 1} }

func defaultGoal(width, height int) grid.Coordinate {
	return grid.Coordinate{X: width - 2, Y: height - 2}
}

// boardFromLayout builds the board grid, placing any endpoint the layout
// lacks where DefaultBoard would.
func boardFromLayout(layout *grid.Layout) *grid.Grid {
	g := grid.FromLayout(layout)
	if _, ok := layout.Find(grid.Start); !ok {
		g.Start = defaultStart()
	}
	if _, ok := layout.Find(grid.Goal); !ok {
		g.Goal = defaultGoal(layout.Width, layout.Height)
	}
	return g
}

// NewBoard loads the server-held board from cfg.LayoutPath, falling back to
// DefaultBoard when the file does not exist.
func NewBoard(cfg config.Config) (*session.Session, error) {
	layout, err := grid.LoadLayout(cfg.LayoutPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Printf("[INFO] No layout at '%s', using the default %dx%d board\n",
			cfg.LayoutPath, config.DefaultBoardWidth, config.DefaultBoardHeight)
		board := session.New(DefaultBoard(config.DefaultBoardWidth, config.DefaultBoardHeight))
		board.SetStepDelay(cfg.StepDelay)
		return board, nil
	case err != nil:
		return nil, err
	}
	if cells := layout.Width * layout.Height; cells > cfg.MaxGridCells {
		return nil, fmt.Errorf("%w: '%s' has %d cells, limit is %d", grid.ErrInvalidLayout, cfg.LayoutPath, cells, cfg.MaxGridCells)
	}
	board := session.NewWithSource(boardFromLayout(layout), layout)
	board.SetStepDelay(cfg.StepDelay)
	return board, nil
}
