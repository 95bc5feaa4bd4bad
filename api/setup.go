package api

import (
	"context"
	"log"

	"github.com/Starath/pathfindr/config"
	"github.com/Starath/pathfindr/gridscript"
	"github.com/Starath/pathfindr/loadgrid"
	"github.com/Starath/pathfindr/pathfinding/astar"
	"github.com/Starath/pathfindr/scrape"
)

// ResolveGrid builds the grid definition from the first configured source:
// grid file, host page, Lua script, then the inline size and ids.
func ResolveGrid(ctx context.Context, cfg config.GridConfig) (*loadgrid.GridDefinition, error) {
	switch {
	case cfg.File != "":
		return loadgrid.LoadGrid(cfg.File)
	case cfg.ScrapeURL != "":
		return scrape.ScrapeGrid(ctx, nil, cfg.ScrapeURL)
	case cfg.Script != "":
		log.Printf("[INFO] Generating %dx%d grid from script %s", cfg.Size, cfg.Size, cfg.Script)
		return gridscript.ForbiddenFile(ctx, cfg.Script, cfg.Size)
	}
	return loadgrid.NewGridDefinition(cfg.Size, cfg.Forbidden)
}

// NewEngine resolves the configured grid and builds the shared engine.
func NewEngine(ctx context.Context, cfg config.Config) (*astar.Engine, error) {
	def, err := ResolveGrid(ctx, cfg.Grid)
	if err != nil {
		return nil, err
	}
	return astar.NewEngine(def.Size, def.Forbidden, cfg.EngineOptions()...)
}
