package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Starath/GridPath_BE/api/handlers"
	"github.com/Starath/GridPath_BE/config"
	"github.com/Starath/GridPath_BE/pathfinding/session"
)

func SetupRouter(cfg config.Config, board *session.Session) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), CORSMiddleware(cfg.AllowedOrigin))

	h := handlers.New(cfg, board)

	api := router.Group("/api")
	api.POST("/search/stream", h.SearchStream)

	compressed := api.Group("", BrotliMiddleware())
	compressed.GET("/algorithms", h.Algorithms)
	compressed.POST("/search", h.Search)
	compressed.POST("/compare", h.Compare)
	compressed.POST("/layout/html", h.LayoutHTML)

	compressed.GET("/board", h.GetBoard)
	compressed.PUT("/board", h.PutBoard)
	compressed.POST("/board/toggle", h.ToggleObstacle)
	compressed.POST("/board/move", h.MoveEndpoint)
	compressed.DELETE("/board/obstacles", h.ClearObstacles)
	compressed.POST("/board/search", h.SearchBoard)

	return router
}
