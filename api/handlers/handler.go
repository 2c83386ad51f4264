package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Starath/GridPath_BE/config"
	"github.com/Starath/GridPath_BE/grid"
	"github.com/Starath/GridPath_BE/pathfinding"
	"github.com/Starath/GridPath_BE/pathfinding/session"
	"github.com/Starath/GridPath_BE/scrape"
)

// Handler serves the search endpoints and the server-held board.
type Handler struct {
	Board        *session.Session
	MaxGridCells int
	StreamBuffer int
	StepDelay    time.Duration
}

func New(cfg config.Config, board *session.Session) *Handler {
	return &Handler{
		Board:        board,
		MaxGridCells: cfg.MaxGridCells,
		StreamBuffer: cfg.StreamBuffer,
		StepDelay:    cfg.StepDelay,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, pathfinding.ErrInvalidConfig),
		errors.Is(err, grid.ErrInvalidLayout),
		errors.Is(err, grid.ErrOutOfBounds),
		errors.Is(err, grid.ErrBlocked),
		errors.Is(err, scrape.ErrNoGrid):
		return http.StatusUnprocessableEntity
	case errors.Is(err, pathfinding.ErrUnknownAlgorithm):
		return http.StatusBadRequest
	case errors.Is(err, pathfinding.ErrSearchInProgress):
		return http.StatusConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

func respondWithError(c *gin.Context, status int, err error) {
	log.Printf("[WARN] %s %s: %d %v", c.Request.Method, c.Request.URL.Path, status, err)
	c.AbortWithStatusJSON(status, errorResponse{Error: err.Error()})
}

// parseLayout parses text rows and enforces the configured size limit.
func (h *Handler) parseLayout(rows []string) (*grid.Layout, error) {
	layout, err := grid.ParseLayout(rows)
	if err != nil {
		return nil, err
	}
	if cells := layout.Width * layout.Height; h.MaxGridCells > 0 && cells > h.MaxGridCells {
		return nil, fmt.Errorf("%w: %dx%d grid has %d cells, limit is %d",
			grid.ErrInvalidLayout, layout.Width, layout.Height, cells, h.MaxGridCells)
	}
	return layout, nil
}

func elapsedMs(started time.Time) float64 {
	return float64(time.Since(started).Microseconds()) / 1000.0
}
