package loadgrid

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"github.com/Starath/pathfindr/pathfinding/astar"
)

// ErrInvalidGrid is returned when a grid definition cannot describe a square
// grid.
var ErrInvalidGrid = errors.New("invalid grid definition")

// GridInput is the JSON shape of a grid file. Forbidden ids and layout rows
// may be combined; the union of both is forbidden.
type GridInput struct {
	Size      int      `json:"size"`
	Forbidden []int    `json:"forbidden"`
	Layout    []string `json:"layout"`
}

// GridDefinition is everything an engine needs to build its grid.
type GridDefinition struct {
	Size      int   `json:"size"`
	Forbidden []int `json:"forbidden"`
}

// NewGridDefinition sorts and de-duplicates forbidden and checks every id
// names a cell of a size x size grid.
func NewGridDefinition(size int, forbidden []int) (*GridDefinition, error) {
	if size <= 0 || size > astar.MaxGridSize {
		return nil, fmt.Errorf("%w: size must be in 1..%d, got %d", ErrInvalidGrid, astar.MaxGridSize, size)
	}
	seen := make(map[int]bool, len(forbidden))
	ids := make([]int, 0, len(forbidden))
	for _, id := range forbidden {
		if id < 0 || id >= size*size {
			return nil, fmt.Errorf("%w: forbidden id %d outside %dx%d grid", ErrInvalidGrid, id, size, size)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return &GridDefinition{Size: size, Forbidden: ids}, nil
}

// LayoutIDs converts rows of '#' (forbidden) and '.' or '_' (free) into
// row-major ids. Rows are read top to bottom as y = 0, 1, ...
func LayoutIDs(layout []string) (int, []int, error) {
	size := len(layout)
	var ids []int
	for y, row := range layout {
		cells := []rune(row)
		if len(cells) != size {
			return 0, nil, fmt.Errorf("%w: layout row %d has %d cells, expected %d", ErrInvalidGrid, y, len(cells), size)
		}
		for x, cell := range cells {
			switch cell {
			case '#':
				ids = append(ids, y*size+x)
			case '.', '_':
			default:
				return 0, nil, fmt.Errorf("%w: unexpected layout cell %q at (%d,%d)", ErrInvalidGrid, cell, x, y)
			}
		}
	}
	return size, ids, nil
}

// ParseGrid decodes a grid file's JSON content.
func ParseGrid(r io.Reader) (*GridDefinition, error) {
	var input GridInput
	if err := json.NewDecoder(r).Decode(&input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGrid, err)
	}

	size := input.Size
	forbidden := append([]int{}, input.Forbidden...)
	if len(input.Layout) > 0 {
		layoutSize, ids, err := LayoutIDs(input.Layout)
		if err != nil {
			return nil, err
		}
		if size != 0 && size != layoutSize {
			return nil, fmt.Errorf("%w: size %d does not match %d layout rows", ErrInvalidGrid, size, layoutSize)
		}
		size = layoutSize
		forbidden = append(forbidden, ids...)
	}

	return NewGridDefinition(size, forbidden)
}

// LoadGrid reads a grid definition from a JSON file.
func LoadGrid(filepath string) (*GridDefinition, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	def, err := ParseGrid(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath, err)
	}

	log.Printf("[INFO] Grid successfully loaded from '%s'. Size: %dx%d. Forbidden cells: %d.\n",
		filepath, def.Size, def.Size, len(def.Forbidden))
	return def, nil
}
