package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Starath/pathfindr/pathfinding"
	"github.com/Starath/pathfindr/pathfinding/astar"
)

type AStarRequest struct {
	Start         *pathfinding.Coordinate `json:"start" binding:"required"`
	Target        *pathfinding.Coordinate `json:"target" binding:"required"`
	AllowDiagonal *bool                   `json:"allowDiagonal"`
}

type AStarResponse struct {
	Results       *pathfinding.Result `json:"results"`
	Error         string              `json:"error,omitempty"`
	ExecutionTime float64             `json:"executionTimeMs"`
}

type GridResponse struct {
	Size      int   `json:"size"`
	Forbidden []int `json:"forbidden"`
}

// PathfindingHandler serves queries against one shared engine.
type PathfindingHandler struct {
	engine *astar.Engine
}

func NewPathfindingHandler(engine *astar.Engine) *PathfindingHandler {
	return &PathfindingHandler{engine: engine}
}

// CORSMiddleware answers preflight requests and sets the CORS headers for
// allowedOrigin.
func CORSMiddleware(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept, Origin, Cache-Control, X-Requested-With")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Grid describes the engine's grid.
func (h *PathfindingHandler) Grid(c *gin.Context) {
	grid := h.engine.Grid()
	c.JSON(http.StatusOK, GridResponse{Size: grid.Size(), Forbidden: grid.ForbiddenIDs()})
}

// AStar runs one query. A missing route is a 200 with found=false; only bad
// input is rejected.
func (h *PathfindingHandler) AStar(c *gin.Context) {
	var req AStarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[WARN] Bad request on %s: %v", c.Request.URL.Path, err)
		pathQueryTotal.WithLabelValues("bad_request").Inc()
		respondWithError(c, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	allowDiagonal := true
	if req.AllowDiagonal != nil {
		allowDiagonal = *req.AllowDiagonal
	}

	start := time.Now()
	result, err := h.engine.FindPath(*req.Start, *req.Target, allowDiagonal)
	elapsed := time.Since(start)
	pathQueryDuration.Observe(elapsed.Seconds())

	if err != nil {
		if errors.Is(err, astar.ErrOutOfBounds) {
			pathQueryTotal.WithLabelValues("out_of_bounds").Inc()
			respondWithError(c, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("[ERROR] Query %s -> %s failed: %v", req.Start, req.Target, err)
		pathQueryTotal.WithLabelValues("error").Inc()
		respondWithError(c, "Failed to find path: "+err.Error(), http.StatusInternalServerError)
		return
	}

	pathQueryTotal.WithLabelValues(string(result.Outcome)).Inc()
	if result.Found {
		pathLength.Observe(float64(len(result.Path)))
	}
	log.Printf("[INFO] Query %s -> %s (diagonal: %t): %s, %d nodes visited",
		req.Start, req.Target, allowDiagonal, result.Outcome, result.NodesVisited)

	c.JSON(http.StatusOK, AStarResponse{
		Results:       result,
		ExecutionTime: float64(elapsed.Microseconds()) / 1000.0,
	})
}

func respondWithError(c *gin.Context, errorMsg string, statusCode int) {
	c.AbortWithStatusJSON(statusCode, AStarResponse{Error: errorMsg})
}
