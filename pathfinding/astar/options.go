package astar

import (
	"fmt"
	"strings"
)

const (
	DefaultDiagonalMoveCost = 1.41
	DefaultAdjacentMoveCost = 1.0
	DefaultMaxIterations    = 10_000
)

// FrontierKind selects how the next expansion parent is chosen.
type FrontierKind string

const (
	// FrontierHeap keeps discovered nodes in a min-heap keyed by f.
	FrontierHeap FrontierKind = "heap"
	// FrontierScan keeps a plain list and scans it for the minimum f on
	// every step.
	FrontierScan FrontierKind = "scan"
)

// ParseFrontierKind maps a configuration string to a FrontierKind. The empty
// string selects FrontierHeap.
func ParseFrontierKind(s string) (FrontierKind, error) {
	switch FrontierKind(strings.ToLower(strings.TrimSpace(s))) {
	case "", FrontierHeap:
		return FrontierHeap, nil
	case FrontierScan:
		return FrontierScan, nil
	}
	return "", fmt.Errorf("%w: unknown frontier %q", ErrInvalidConfiguration, s)
}

// Options defines parameters for an Engine.
type Options struct {
	DiagonalMoveCost float64
	AdjacentMoveCost float64
	MaxIterations    int
	LoggingEnabled   bool
	Frontier         FrontierKind
	Sink             EventSink
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithDiagonalMoveCost sets the cost of a step that changes both axes.
func WithDiagonalMoveCost(cost float64) Option {
	return func(options *Options) { options.DiagonalMoveCost = cost }
}

// WithAdjacentMoveCost sets the cost of a step along one axis.
func WithAdjacentMoveCost(cost float64) Option {
	return func(options *Options) { options.AdjacentMoveCost = cost }
}

// WithMaxIterations caps the number of expansions a single query may run.
func WithMaxIterations(maxIterations int) Option {
	return func(options *Options) { options.MaxIterations = maxIterations }
}

// WithLogging enables informational diagnostic events.
func WithLogging(enabled bool) Option {
	return func(options *Options) { options.LoggingEnabled = enabled }
}

// WithFrontier selects the frontier implementation.
func WithFrontier(kind FrontierKind) Option {
	return func(options *Options) { options.Frontier = kind }
}

// WithEventSink routes diagnostic events to sink instead of the standard logger.
func WithEventSink(sink EventSink) Option {
	return func(options *Options) { options.Sink = sink }
}

func defaultOptions() Options {
	return Options{
		DiagonalMoveCost: DefaultDiagonalMoveCost,
		AdjacentMoveCost: DefaultAdjacentMoveCost,
		MaxIterations:    DefaultMaxIterations,
		Frontier:         FrontierHeap,
		Sink:             LogSink,
	}
}

func (o Options) validate() error {
	if o.DiagonalMoveCost <= 0 || o.AdjacentMoveCost <= 0 {
		return fmt.Errorf("%w: move costs must be positive (diagonal %v, adjacent %v)",
			ErrInvalidConfiguration, o.DiagonalMoveCost, o.AdjacentMoveCost)
	}
	if o.MaxIterations <= 0 {
		return fmt.Errorf("%w: max iterations must be positive, got %d", ErrInvalidConfiguration, o.MaxIterations)
	}
	if _, err := ParseFrontierKind(string(o.Frontier)); err != nil {
		return err
	}
	return nil
}
