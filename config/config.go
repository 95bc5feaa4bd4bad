// Package config loads the server configuration from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Starath/pathfindr/pathfinding/astar"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

type ServerConfig struct {
	Port          string `yaml:"port"`
	AllowedOrigin string `yaml:"allowedOrigin"`
}

// GridConfig names where the grid comes from. The first non-empty source in
// the order file, scrapeURL, script wins; otherwise Size and Forbidden are
// used as given.
type GridConfig struct {
	File      string `yaml:"file"`
	ScrapeURL string `yaml:"scrapeURL"`
	Script    string `yaml:"script"`
	Size      int    `yaml:"size"`
	Forbidden []int  `yaml:"forbidden"`
}

type EngineConfig struct {
	DiagonalMoveCost float64 `yaml:"diagonalMoveCost"`
	AdjacentMoveCost float64 `yaml:"adjacentMoveCost"`
	MaxIterations    int     `yaml:"maxIterations"`
	LoggingEnabled   bool    `yaml:"loggingEnabled"`
	Frontier         string  `yaml:"frontier"`
}

type Config struct {
	Server ServerConfig `yaml:"server"`
	Grid   GridConfig   `yaml:"grid"`
	Engine EngineConfig `yaml:"engine"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{Port: "8080", AllowedOrigin: "*"},
		Grid:   GridConfig{Size: 10},
		Engine: EngineConfig{
			DiagonalMoveCost: astar.DefaultDiagonalMoveCost,
			AdjacentMoveCost: astar.DefaultAdjacentMoveCost,
			MaxIterations:    astar.DefaultMaxIterations,
			Frontier:         string(astar.FrontierHeap),
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("PORT"); ok && v != "" {
		c.Server.Port = v
	}
	if v, ok := lookup("PATHFINDR_ALLOWED_ORIGIN"); ok && v != "" {
		c.Server.AllowedOrigin = v
	}
	if v, ok := lookup("PATHFINDR_GRID_FILE"); ok && v != "" {
		c.Grid.File = v
	}
	if v, ok := lookup("PATHFINDR_LOGGING"); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: PATHFINDR_LOGGING=%q", ErrInvalidConfig, v)
		}
		c.Engine.LoggingEnabled = enabled
	}
	return nil
}

// Validate checks the values an engine and server cannot start without.
func (c Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("%w: server.port is empty", ErrInvalidConfig)
	}
	if c.Grid.File == "" && c.Grid.ScrapeURL == "" && c.Grid.Size <= 0 {
		return fmt.Errorf("%w: grid.size must be positive without a grid file or page", ErrInvalidConfig)
	}
	if c.Grid.Size > astar.MaxGridSize {
		return fmt.Errorf("%w: grid.size %d exceeds %d", ErrInvalidConfig, c.Grid.Size, astar.MaxGridSize)
	}
	if c.Engine.DiagonalMoveCost <= 0 || c.Engine.AdjacentMoveCost <= 0 {
		return fmt.Errorf("%w: move costs must be positive", ErrInvalidConfig)
	}
	if c.Engine.MaxIterations <= 0 {
		return fmt.Errorf("%w: engine.maxIterations must be positive", ErrInvalidConfig)
	}
	if _, err := astar.ParseFrontierKind(c.Engine.Frontier); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// EngineOptions converts the engine section into astar options.
func (c Config) EngineOptions() []astar.Option {
	frontier, _ := astar.ParseFrontierKind(c.Engine.Frontier)
	return []astar.Option{
		astar.WithDiagonalMoveCost(c.Engine.DiagonalMoveCost),
		astar.WithAdjacentMoveCost(c.Engine.AdjacentMoveCost),
		astar.WithMaxIterations(c.Engine.MaxIterations),
		astar.WithLogging(c.Engine.LoggingEnabled),
		astar.WithFrontier(frontier),
	}
}
