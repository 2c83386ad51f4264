package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Starath/GridPath_BE/grid"
)

type BoardResponse struct {
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Start     grid.Coordinate   `json:"start"`
	Goal      grid.Coordinate   `json:"goal"`
	Obstacles []grid.Coordinate `json:"obstacles"`
	Rows      []string          `json:"rows"`
	Busy      bool              `json:"busy"`
}

type PutBoardRequest struct {
	Rows []string `json:"rows" binding:"required,min=1"`
}

type ToggleRequest struct {
	X *int `json:"x" binding:"required"`
	Y *int `json:"y" binding:"required"`
}

type MoveRequest struct {
	Endpoint  string `json:"endpoint" binding:"required,oneof=start goal"`
	Direction string `json:"direction" binding:"required,oneof=up down left right"`
}

type BoardSearchRequest struct {
	Algorithm string `json:"algorithm" binding:"required"`
}

func (h *Handler) boardResponse() BoardResponse {
	g := h.Board.Snapshot()
	return BoardResponse{
		Width:     g.Width,
		Height:    g.Height,
		Start:     g.Start,
		Goal:      g.Goal,
		Obstacles: g.Obstacles(),
		Rows:      g.Layout().Rows(),
		Busy:      h.Board.Busy(),
	}
}

func (h *Handler) GetBoard(c *gin.Context) {
	c.JSON(http.StatusOK, h.boardResponse())
}

// PutBoard replaces the board with the posted layout.
func (h *Handler) PutBoard(c *gin.Context) {
	var req PutBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, err)
		return
	}
	layout, err := h.parseLayout(req.Rows)
	if err != nil {
		respondWithError(c, statusFor(err), err)
		return
	}
	if err := h.Board.Replace(layout); err != nil {
		respondWithError(c, statusFor(err), err)
		return
	}
	log.Printf("[INFO] Board replaced: %dx%d\n", layout.Width, layout.Height)
	c.JSON(http.StatusOK, h.boardResponse())
}

func (h *Handler) ToggleObstacle(c *gin.Context) {
	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, err)
		return
	}
	cell := grid.Coordinate{X: *req.X, Y: *req.Y}
	err := h.Board.Update(func(g *grid.Grid) error {
		if !g.InBounds(cell) {
			return fmt.Errorf("toggle %s: %w", cell, grid.ErrOutOfBounds)
		}
		if !g.ToggleObstacle(cell) {
			return fmt.Errorf("toggle %s: endpoint %w", cell, grid.ErrBlocked)
		}
		return nil
	})
	if err != nil {
		respondWithError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, h.boardResponse())
}

// MoveEndpoint shifts start or goal one cell.
func (h *Handler) MoveEndpoint(c *gin.Context) {
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, err)
		return
	}
	delta := grid.DirectionByName[req.Direction]
	err := h.Board.Update(func(g *grid.Grid) error {
		if req.Endpoint == "start" {
			return g.MoveStart(delta)
		}
		return g.MoveGoal(delta)
	})
	if err != nil {
		respondWithError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, h.boardResponse())
}

func (h *Handler) ClearObstacles(c *gin.Context) {
	err := h.Board.Update(func(g *grid.Grid) error {
		g.ClearObstacles()
		return nil
	})
	if err != nil {
		respondWithError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, h.boardResponse())
}

// SearchBoard searches the server-held board. A second search while one is
// running is rejected with 409.
func (h *Handler) SearchBoard(c *gin.Context) {
	var req BoardSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, err)
		return
	}
	started := time.Now()
	result, err := h.Board.Run(c.Request.Context(), req.Algorithm, nil)
	if err != nil {
		respondWithError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, newSearchResponse(result, elapsedMs(started)))
}
