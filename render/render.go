// Package render draws a grid and a route, either as text or on a tcell screen.
package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/Starath/pathfindr/pathfinding"
)

const (
	RuneFree      = '.'
	RuneForbidden = '#'
	RuneRoute     = '*'
	RuneStart     = 'S'
	RuneTarget    = 'T'
)

// Grid is the read-only view of a grid needed for drawing.
type Grid interface {
	Size() int
	Forbidden(c pathfinding.Coordinate) bool
}

// Scene is one query to draw: its endpoints, the route if one was found and
// a free-form status line.
type Scene struct {
	Start  pathfinding.Coordinate
	Target pathfinding.Coordinate
	Path   []pathfinding.Coordinate
	Status string
}

func (s Scene) runes(g Grid) [][]rune {
	size := g.Size()
	rows := make([][]rune, size)
	for y := range rows {
		rows[y] = make([]rune, size)
		for x := range rows[y] {
			if g.Forbidden(pathfinding.Coordinate{X: x, Y: y}) {
				rows[y][x] = RuneForbidden
			} else {
				rows[y][x] = RuneFree
			}
		}
	}
	put := func(c pathfinding.Coordinate, r rune) {
		if c.X >= 0 && c.X < size && c.Y >= 0 && c.Y < size {
			rows[c.Y][c.X] = r
		}
	}
	for _, p := range s.Path {
		put(p, RuneRoute)
	}
	put(s.Start, RuneStart)
	put(s.Target, RuneTarget)
	return rows
}

// Dump renders the scene as text, row y = 0 first, one line per row.
func Dump(g Grid, s Scene) string {
	var b strings.Builder
	for _, row := range s.runes(g) {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// StyleFor returns the style used for a cell rune.
func StyleFor(r rune) tcell.Style {
	style := tcell.StyleDefault
	switch r {
	case RuneForbidden:
		return style.Foreground(tcell.ColorGray).Background(tcell.ColorGray)
	case RuneRoute:
		return style.Foreground(tcell.ColorYellow).Bold(true)
	case RuneStart:
		return style.Foreground(tcell.ColorGreen).Bold(true)
	case RuneTarget:
		return style.Foreground(tcell.ColorRed).Bold(true)
	}
	return style.Dim(true)
}

// Draw clears screen and paints the scene at the top left corner, with the
// status line below the grid.
func Draw(screen tcell.Screen, g Grid, s Scene) {
	screen.Clear()
	rows := s.runes(g)
	for y, row := range rows {
		for x, r := range row {
			screen.SetContent(x, y, r, nil, StyleFor(r))
		}
	}
	for i, r := range []rune(s.Status) {
		screen.SetContent(i, len(rows)+1, r, nil, tcell.StyleDefault)
	}
	screen.Show()
}
