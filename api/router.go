package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Starath/pathfindr/api/handlers"
	"github.com/Starath/pathfindr/pathfinding/astar"
)

func SetupRouter(engine *astar.Engine, allowedOrigin string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), handlers.CORSMiddleware(allowedOrigin))

	pathfinding := handlers.NewPathfindingHandler(engine)

	router.GET("/healthz", handlers.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.GET("/grid", pathfinding.Grid)
	api.POST("/pathfinding/astar", pathfinding.AStar)

	return router
}
