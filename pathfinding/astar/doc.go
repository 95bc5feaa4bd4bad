// Package astar finds a shortest walkable route between two cells of a fixed
// size square grid.
//
// A Grid is built once from its size and the ids of its permanently forbidden
// cells (ids are assigned row-major, id = y*size + x). An Engine owns one Grid
// and answers any number of FindPath queries against it:
//
//   - every query resets the per-node search state and recomputes the
//     Manhattan heuristic towards the query's target;
//   - the expansion loop closes the current parent, discovers its open
//     neighbours in the surrounding 3x3 block and relaxes them when they are
//     reached for the first time or reached more cheaply;
//   - the query is solved as soon as the target is discovered, after which the
//     parent chain is walked back into a start-to-target route.
//
// A query that cannot reach its target, or that runs past the configured
// iteration cap, returns a Result with Found == false. Only out of bounds
// coordinates and invalid construction parameters are reported as errors.
//
// Node state lives in a single arena shared by all queries of an Engine.
// Queries are serialised by the Engine, so one Engine may be shared between
// goroutines, but they never run in parallel.
package astar
