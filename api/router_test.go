package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Starath/GridPath_BE/api/handlers"
	"github.com/Starath/GridPath_BE/config"
	"github.com/Starath/GridPath_BE/grid"
	"github.com/Starath/GridPath_BE/pathfinding/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, *session.Session) {
	t.Helper()
	cfg := config.Default()
	cfg.MaxGridCells = 100
	board := session.New(DefaultBoard(5, 5))
	return SetupRouter(cfg, board), board
}

func doJSON(router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestSearch(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doJSON(router, http.MethodPost, "/api/search", gin.H{
		"rows":      []string{"S..", "...", "..G"},
		"algorithm": "bfs",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[handlers.SearchResponse](t, w)
	assert.True(t, resp.Found)
	assert.Equal(t, 4, resp.Hops)
	assert.Len(t, resp.Visited, 8)
	assert.Equal(t, []grid.Coordinate{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2}}, resp.Path)
	assert.Empty(t, resp.Error)
}

func TestSearchNoPathIsOK(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doJSON(router, http.MethodPost, "/api/search", gin.H{
		"rows":      []string{"S#.", "##.", "..G"},
		"algorithm": "astar",
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[handlers.SearchResponse](t, w)
	assert.False(t, resp.Found)
	assert.Equal(t, -1, resp.Hops)
	assert.Empty(t, resp.Path)
	assert.Empty(t, resp.Visited)
	assert.NotEmpty(t, resp.Error)
}

func TestSearchErrors(t *testing.T) {
	big := make([]string, 10)
	for i := range big {
		big[i] = strings.Repeat(".", 11)
	}

	tests := []struct {
		name string
		body any
		want int
	}{
		{"malformed", `{"rows": [`, http.StatusBadRequest},
		{"missing algorithm", gin.H{"rows": []string{"SG"}}, http.StatusBadRequest},
		{"unknown algorithm", gin.H{"rows": []string{"SG"}, "algorithm": "dfs"}, http.StatusBadRequest},
		{"two starts", gin.H{"rows": []string{"S.S", "..G"}, "algorithm": "bfs"}, http.StatusUnprocessableEntity},
		{"too large", gin.H{"rows": big, "algorithm": "bfs"}, http.StatusUnprocessableEntity},
		{"goal on obstacle", gin.H{"rows": []string{"S.", ".#"}, "algorithm": "dijkstra"}, http.StatusUnprocessableEntity},
	}
	router, _ := newTestRouter(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/api/search", tc.body)
			assert.Equal(t, tc.want, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestCompare(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doJSON(router, http.MethodPost, "/api/compare", gin.H{
		"rows": []string{
			"S....",
			".###.",
			"....G",
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[struct {
		Results []handlers.CompareEntry `json:"results"`
	}](t, w)
	require.Len(t, resp.Results, 3)
	assert.EqualValues(t, "bfs", resp.Results[0].Algorithm)
	assert.EqualValues(t, "dijkstra", resp.Results[1].Algorithm)
	assert.EqualValues(t, "astar", resp.Results[2].Algorithm)
	for _, r := range resp.Results {
		assert.True(t, r.Found)
		assert.Equal(t, 6, r.Hops)
	}
	assert.LessOrEqual(t, resp.Results[2].NodesVisited, resp.Results[1].NodesVisited)

	w = doJSON(router, http.MethodPost, "/api/compare", gin.H{"rows": []string{"SG"}, "algorithms": []string{"bfs", "nope"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLayoutHTML(t *testing.T) {
	router, _ := newTestRouter(t)
	html := `<html><head><title>tiny</title></head><body><table>
		<tr><td class="start"></td><td class="obstacle"></td></tr>
		<tr><td></td><td data-state="goal"></td></tr>
	</table></body></html>`
	req := httptest.NewRequest(http.MethodPost, "/api/layout/html", strings.NewReader(html))
	req.Header.Set("Content-Type", "text/html")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[handlers.LayoutResponse](t, w)
	assert.Equal(t, "tiny", resp.Name)
	assert.Equal(t, []string{"S#", ".G"}, resp.Rows)

	req = httptest.NewRequest(http.MethodPost, "/api/layout/html", strings.NewReader("<p>none</p>"))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestBoardEditing(t *testing.T) {
	router, _ := newTestRouter(t)

	board := decode[handlers.BoardResponse](t, doJSON(router, http.MethodGet, "/api/board", nil))
	assert.Equal(t, 5, board.Width)
	assert.Equal(t, grid.Coordinate{X: 1, Y: 1}, board.Start)
	assert.Equal(t, grid.Coordinate{X: 3, Y: 3}, board.Goal)
	assert.Empty(t, board.Obstacles)

	w := doJSON(router, http.MethodPost, "/api/board/toggle", gin.H{"x": 2, "y": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	board = decode[handlers.BoardResponse](t, w)
	assert.Equal(t, []grid.Coordinate{{X: 2, Y: 2}}, board.Obstacles)
	assert.Equal(t, "..#..", board.Rows[2])

	assert.Equal(t, http.StatusUnprocessableEntity, doJSON(router, http.MethodPost, "/api/board/toggle", gin.H{"x": 1, "y": 1}).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, doJSON(router, http.MethodPost, "/api/board/toggle", gin.H{"x": 9, "y": 0}).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(router, http.MethodPost, "/api/board/toggle", gin.H{"x": 1}).Code)

	w = doJSON(router, http.MethodPost, "/api/board/move", gin.H{"endpoint": "start", "direction": "up"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = doJSON(router, http.MethodPost, "/api/board/move", gin.H{"endpoint": "goal", "direction": "right"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	board = decode[handlers.BoardResponse](t, w)
	assert.Equal(t, grid.Coordinate{X: 1, Y: 0}, board.Start)
	assert.Equal(t, grid.Coordinate{X: 4, Y: 3}, board.Goal)

	assert.Equal(t, http.StatusUnprocessableEntity, doJSON(router, http.MethodPost, "/api/board/move", gin.H{"endpoint": "start", "direction": "up"}).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(router, http.MethodPost, "/api/board/move", gin.H{"endpoint": "start", "direction": "sideways"}).Code)

	w = doJSON(router, http.MethodDelete, "/api/board/obstacles", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[handlers.BoardResponse](t, w).Obstacles)

	w = doJSON(router, http.MethodPost, "/api/board/search", gin.H{"algorithm": "dijkstra"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[handlers.SearchResponse](t, w)
	assert.True(t, resp.Found)
	assert.Equal(t, 6, resp.Hops)
}

func TestPutBoard(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doJSON(router, http.MethodPut, "/api/board", gin.H{"rows": []string{"S.#", "..G"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	board := decode[handlers.BoardResponse](t, w)
	assert.Equal(t, 3, board.Width)
	assert.Equal(t, 2, board.Height)
	assert.Equal(t, []string{"S.#", "..G"}, board.Rows)

	assert.Equal(t, http.StatusUnprocessableEntity, doJSON(router, http.MethodPut, "/api/board", gin.H{"rows": []string{"S..", "."}}).Code)
}

func TestBoardRejectsEditsDuringSearch(t *testing.T) {
	router, board := newTestRouter(t)

	// Unbuffered and undrained: the run holds the board until cancelled.
	run, err := board.Start(context.Background(), "bfs", 0)
	require.NoError(t, err)

	assert.Equal(t, http.StatusConflict, doJSON(router, http.MethodPost, "/api/board/toggle", gin.H{"x": 0, "y": 0}).Code)
	assert.Equal(t, http.StatusConflict, doJSON(router, http.MethodPost, "/api/board/search", gin.H{"algorithm": "astar"}).Code)
	assert.True(t, decode[handlers.BoardResponse](t, doJSON(router, http.MethodGet, "/api/board", nil)).Busy)

	run.Cancel()
	_, err = run.Wait()
	assert.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, http.StatusOK, doJSON(router, http.MethodPost, "/api/board/toggle", gin.H{"x": 0, "y": 0}).Code)
}

func TestSearchStream(t *testing.T) {
	router, _ := newTestRouter(t)
	server := httptest.NewServer(router)
	defer server.Close()

	body, _ := json.Marshal(gin.H{"rows": []string{"S.G"}, "algorithm": "bfs"})
	res, err := http.Post(server.URL+"/api/search/stream", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Header.Get("Content-Type"), "text/event-stream")

	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	stream := string(data)

	assert.Equal(t, 2, strings.Count(stream, "event:visited"))
	assert.Equal(t, 3, strings.Count(stream, "event:path"))
	assert.Equal(t, 0, strings.Count(stream, "event:no_path"))
	require.Equal(t, 1, strings.Count(stream, "event:done"))
	assert.Less(t, strings.LastIndex(stream, "event:path"), strings.Index(stream, "event:done"))
	assert.Contains(t, stream, `"found":true`)
}

func TestSearchStreamNoPathAndErrors(t *testing.T) {
	router, _ := newTestRouter(t)
	server := httptest.NewServer(router)
	defer server.Close()

	body, _ := json.Marshal(gin.H{"rows": []string{"S#G"}, "algorithm": "dijkstra"})
	res, err := http.Post(server.URL+"/api/search/stream", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	data, err := io.ReadAll(res.Body)
	res.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "event:no_path"))
	assert.Contains(t, string(data), `"found":false`)

	body, _ = json.Marshal(gin.H{"rows": []string{"S#G"}, "algorithm": "greedy"})
	res, err = http.Post(server.URL+"/api/search/stream", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doJSON(router, http.MethodOptions, "/api/search", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, config.DefaultAllowedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestBrotliResponses(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/board", nil)
	req.Header.Set("Accept-Encoding", "gzip, br;q=0.9")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "br", w.Header().Get("Content-Encoding"))

	plain, err := io.ReadAll(brotli.NewReader(w.Body))
	require.NoError(t, err)
	var board handlers.BoardResponse
	require.NoError(t, json.Unmarshal(plain, &board))
	assert.Equal(t, 5, board.Width)

	w = doJSON(router, http.MethodGet, "/api/board", nil)
	assert.Empty(t, w.Header().Get("Content-Encoding"))
}

func TestAcceptsBrotli(t *testing.T) {
	assert.True(t, acceptsBrotli("br"))
	assert.True(t, acceptsBrotli("gzip, deflate, br"))
	assert.True(t, acceptsBrotli("gzip;q=1.0, br;q=0.5"))
	assert.False(t, acceptsBrotli("gzip, deflate"))
	assert.False(t, acceptsBrotli(""))
}

func TestNewBoard(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()

	cfg.LayoutPath = filepath.Join(dir, "missing.json")
	board, err := NewBoard(cfg)
	require.NoError(t, err)
	g := board.Snapshot()
	assert.Equal(t, config.DefaultBoardWidth, g.Width)
	assert.Equal(t, config.DefaultBoardHeight, g.Height)
	assert.Equal(t, grid.Coordinate{X: 1, Y: 1}, g.Start)
	assert.Equal(t, grid.Coordinate{X: 38, Y: 18}, g.Goal)

	layout, err := grid.ParseLayout([]string{"S..", ".#.", "..G"})
	require.NoError(t, err)
	cfg.LayoutPath = filepath.Join(dir, "board.json")
	require.NoError(t, grid.SaveLayout(cfg.LayoutPath, "board", layout))

	board, err = NewBoard(cfg)
	require.NoError(t, err)
	assert.Equal(t, []grid.Coordinate{{X: 1, Y: 1}}, board.Snapshot().Obstacles())

	cfg.MaxGridCells = 4
	_, err = NewBoard(cfg)
	assert.ErrorIs(t, err, grid.ErrInvalidLayout)
}

func TestNewBoardPlacesMissingEndpoints(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()

	bare, err := grid.ParseLayout([]string{"......", "......", "......", "......"})
	require.NoError(t, err)
	cfg.LayoutPath = filepath.Join(dir, "bare.json")
	require.NoError(t, grid.SaveLayout(cfg.LayoutPath, "bare", bare))

	board, err := NewBoard(cfg)
	require.NoError(t, err)
	g := board.Snapshot()
	assert.Equal(t, grid.Coordinate{X: 1, Y: 1}, g.Start)
	assert.Equal(t, grid.Coordinate{X: 4, Y: 2}, g.Goal)

	// endpoints stay put across searches since the layout has none
	result, err := board.Run(context.Background(), "bfs", nil)
	require.NoError(t, err)
	assert.Equal(t, grid.Coordinate{X: 1, Y: 1}, result.Start)
	assert.Equal(t, grid.Coordinate{X: 4, Y: 2}, result.Goal)

	withGoal, err := grid.ParseLayout([]string{"G.....", "......", "......", "......"})
	require.NoError(t, err)
	cfg.LayoutPath = filepath.Join(dir, "goal.json")
	require.NoError(t, grid.SaveLayout(cfg.LayoutPath, "goal", withGoal))

	board, err = NewBoard(cfg)
	require.NoError(t, err)
	g = board.Snapshot()
	assert.Equal(t, grid.Coordinate{X: 1, Y: 1}, g.Start)
	assert.Equal(t, grid.Coordinate{X: 0, Y: 0}, g.Goal)
}
