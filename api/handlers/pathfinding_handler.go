package handlers

import (
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Starath/GridPath_BE/grid"
	"github.com/Starath/GridPath_BE/pathfinding"
	"github.com/Starath/GridPath_BE/pathfinding/session"
	"github.com/Starath/GridPath_BE/scrape"
)

const maxHTMLBody = 1 << 20

type SearchRequest struct {
	Rows      []string `json:"rows" binding:"required,min=1"`
	Algorithm string   `json:"algorithm" binding:"required"`
}

type SearchResponse struct {
	Algorithm     pathfinding.Algorithm `json:"algorithm"`
	Start         grid.Coordinate       `json:"start"`
	Goal          grid.Coordinate       `json:"goal"`
	Found         bool                  `json:"found"`
	Visited       []grid.Coordinate     `json:"visited"`
	Path          []grid.Coordinate     `json:"path"`
	NodesVisited  int                   `json:"nodesVisited"`
	NodesExpanded int                   `json:"nodesExpanded"`
	Hops          int                   `json:"hops"`
	Cost          float64               `json:"cost"`
	ExecutionTime float64               `json:"executionTimeMs"`
	Error         string                `json:"error,omitempty"`
}

func newSearchResponse(result *pathfinding.Result, executionTime float64) SearchResponse {
	resp := SearchResponse{
		Algorithm:     result.Algorithm,
		Start:         result.Start,
		Goal:          result.Goal,
		Found:         result.Found,
		Visited:       result.Visited,
		Path:          result.Path,
		NodesVisited:  result.NodesVisited,
		NodesExpanded: result.NodesExpanded,
		Hops:          result.Hops(),
		Cost:          result.Cost,
		ExecutionTime: executionTime,
	}
	if resp.Path == nil {
		resp.Path = []grid.Coordinate{}
	}
	if !resp.Found {
		resp.Error = "no path between start and goal"
	}
	return resp
}

type CompareRequest struct {
	Rows       []string `json:"rows" binding:"required,min=1"`
	Algorithms []string `json:"algorithms"`
}

type CompareEntry struct {
	Algorithm     pathfinding.Algorithm `json:"algorithm"`
	Found         bool                  `json:"found"`
	NodesVisited  int                   `json:"nodesVisited"`
	NodesExpanded int                   `json:"nodesExpanded"`
	Hops          int                   `json:"hops"`
	Cost          float64               `json:"cost"`
	ExecutionTime float64               `json:"executionTimeMs"`
}

type LayoutResponse struct {
	Name   string   `json:"name,omitempty"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Rows   []string `json:"rows"`
}

func (h *Handler) Algorithms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"algorithms": session.Algorithms()})
}

// Search runs one search on the posted layout.
func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, err)
		return
	}
	layout, err := h.parseLayout(req.Rows)
	if err != nil {
		respondWithError(c, statusFor(err), err)
		return
	}

	log.Printf("[INFO] Received search request: Algorithm=%s, Size=%dx%d\n", req.Algorithm, layout.Width, layout.Height)
	started := time.Now()
	result, err := session.NewFromLayout(layout).Run(c.Request.Context(), req.Algorithm, nil)
	if err != nil {
		respondWithError(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, newSearchResponse(result, elapsedMs(started)))
	log.Printf("[INFO] Sent response for Algorithm=%s (Found: %t)\n", result.Algorithm, result.Found)
}

// SearchStream runs the search in the background and relays every trace
// event as a server-sent event named after its kind, then a "done" event
// carrying the summary.
func (h *Handler) SearchStream(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, err)
		return
	}
	layout, err := h.parseLayout(req.Rows)
	if err != nil {
		respondWithError(c, statusFor(err), err)
		return
	}

	s := session.NewFromLayout(layout)
	s.SetStepDelay(h.StepDelay)
	started := time.Now()
	run, err := s.Start(c.Request.Context(), req.Algorithm, h.StreamBuffer)
	if err != nil {
		respondWithError(c, statusFor(err), err)
		return
	}

	c.Header("Cache-Control", "no-cache")
	events := run.Events()
	clientGone := c.Stream(func(w io.Writer) bool {
		event, ok := <-events
		if !ok {
			return false
		}
		c.SSEvent(string(event.Kind), event.Cell)
		return true
	})
	if clientGone {
		run.Cancel()
		run.Wait()
		log.Printf("[WARN] Client left during %s stream\n", req.Algorithm)
		return
	}

	result, err := run.Wait()
	if err != nil {
		c.SSEvent("error", errorResponse{Error: err.Error()})
		return
	}
	c.SSEvent("done", newSearchResponse(result, elapsedMs(started)))
}

// Compare runs several algorithms on the posted layout, all of them when
// none are named.
func (h *Handler) Compare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, err)
		return
	}
	layout, err := h.parseLayout(req.Rows)
	if err != nil {
		respondWithError(c, statusFor(err), err)
		return
	}

	comparisons, err := session.Compare(c.Request.Context(), grid.FromLayout(layout), req.Algorithms...)
	if err != nil {
		respondWithError(c, statusFor(err), err)
		return
	}

	entries := make([]CompareEntry, 0, len(comparisons))
	for _, cmp := range comparisons {
		entries = append(entries, CompareEntry{
			Algorithm:     cmp.Algorithm,
			Found:         cmp.Result.Found,
			NodesVisited:  cmp.Result.NodesVisited,
			NodesExpanded: cmp.Result.NodesExpanded,
			Hops:          cmp.Result.Hops(),
			Cost:          cmp.Result.Cost,
			ExecutionTime: float64(cmp.Duration.Microseconds()) / 1000.0,
		})
	}
	c.JSON(http.StatusOK, gin.H{"results": entries})
}

// LayoutHTML converts a posted HTML page holding a grid table into rows.
func (h *Handler) LayoutHTML(c *gin.Context) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxHTMLBody)
	page, err := scrape.ParseLayoutHTML(body)
	if err != nil {
		respondWithError(c, statusFor(err), err)
		return
	}
	if _, err := h.parseLayout(page.Layout.Rows()); err != nil {
		respondWithError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, LayoutResponse{
		Name:   page.Name,
		Width:  page.Layout.Width,
		Height: page.Layout.Height,
		Rows:   page.Layout.Rows(),
	})
}
