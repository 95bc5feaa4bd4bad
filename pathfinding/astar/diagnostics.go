package astar

import (
	"log"

	"github.com/Starath/pathfindr/pathfinding"
)

// Level is the severity of a diagnostic event.
type Level string

const (
	LevelInfo Level = "INFO"
	LevelWarn Level = "WARN"
)

// EventKind names what a diagnostic event reports.
type EventKind string

const (
	EventQueryNodes     EventKind = "query_nodes"
	EventSolved         EventKind = "solved"
	EventIterationLimit EventKind = "iteration_limit"
)

// Event is an observational record emitted by the engine. Events never
// affect the result of a query.
type Event struct {
	Level      Level
	Kind       EventKind
	Start      pathfinding.Coordinate
	Target     pathfinding.Coordinate
	StartID    int
	TargetID   int
	Iterations int
}

// EventSink receives diagnostic events.
type EventSink func(Event)

// LogSink writes events to the standard logger.
func LogSink(ev Event) {
	switch ev.Kind {
	case EventQueryNodes:
		log.Printf("[%s] Pathfindr -> Start Node: %d %s, Target Node: %d %s",
			ev.Level, ev.StartID, ev.Start, ev.TargetID, ev.Target)
	case EventSolved:
		log.Printf("[%s] Pathfindr -> Solved %s to %s after %d iterations",
			ev.Level, ev.Start, ev.Target, ev.Iterations)
	case EventIterationLimit:
		log.Printf("[%s] Pathfindr: Max iterations reached (%d) searching %s to %s",
			ev.Level, ev.Iterations, ev.Start, ev.Target)
	default:
		log.Printf("[%s] Pathfindr: %s", ev.Level, ev.Kind)
	}
}

// DiscardSink drops every event.
func DiscardSink(Event) {}
