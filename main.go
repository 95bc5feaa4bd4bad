package main

import (
	"context"
	"flag"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/Starath/pathfindr/api"
	"github.com/Starath/pathfindr/config"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[FATAL] Failed to load config: %v\n", err)
	}

	engine, err := api.NewEngine(context.Background(), cfg)
	if err != nil {
		log.Fatalf("[FATAL] Failed to build engine: %v\n", err)
	}
	grid := engine.Grid()
	log.Printf("[INFO] Engine ready on a %dx%d grid (%d forbidden cells, frontier %s, max iterations %d)\n",
		grid.Size(), grid.Size(), len(grid.ForbiddenIDs()), cfg.Engine.Frontier, cfg.Engine.MaxIterations)

	gin.SetMode(gin.ReleaseMode)
	router := api.SetupRouter(engine, cfg.Server.AllowedOrigin)

	log.Printf("[INFO] Server running on port %s\n", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("[FATAL] Server stopped: %v\n", err)
	}
}
