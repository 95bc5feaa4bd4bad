package astar

import "errors"

var (
	// ErrOutOfBounds is returned when a query coordinate lies outside the grid.
	ErrOutOfBounds = errors.New("coordinate out of bounds")

	// ErrInvalidConfiguration is returned when an engine or grid is built with
	// a non-positive size or with unusable options.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)
