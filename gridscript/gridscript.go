// Package gridscript builds obstacle layouts from Lua scripts.
//
// A script runs with the global "size" set to the grid's side length and
// either returns a table of forbidden ids, or defines a global function
// forbidden(x, y, size) that is called once per cell and returns true for
// obstacles. Only the base, table, string and math libraries are available.
package gridscript

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/Starath/pathfindr/loadgrid"
	"github.com/Starath/pathfindr/pathfinding/astar"
)

// DefaultTimeout bounds the run time of one script.
const DefaultTimeout = 5 * time.Second

// ErrNoLayout is returned when a script neither returns an id table nor
// defines a forbidden function.
var ErrNoLayout = errors.New("script produced no layout")

// Forbidden runs script for a size x size grid and returns the resulting
// grid definition.
func Forbidden(ctx context.Context, script string, size int) (*loadgrid.GridDefinition, error) {
	if size <= 0 || size > astar.MaxGridSize {
		return nil, fmt.Errorf("%w: size must be in 1..%d, got %d", loadgrid.ErrInvalidGrid, astar.MaxGridSize, size)
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibraries(L)
	L.SetContext(ctx)
	L.SetGlobal("size", lua.LNumber(size))

	chunk, err := L.LoadString(script)
	if err != nil {
		return nil, fmt.Errorf("load script: %w", err)
	}
	L.Push(chunk)
	if err := L.PCall(0, 1, nil); err != nil {
		return nil, fmt.Errorf("run script: %w", err)
	}
	ret := L.Get(-1)
	L.Pop(1)

	var ids []int
	switch {
	case ret.Type() == lua.LTTable:
		ids, err = tableIDs(ret.(*lua.LTable))
	case L.GetGlobal("forbidden").Type() == lua.LTFunction:
		ids, err = predicateIDs(L, L.GetGlobal("forbidden"), size)
	default:
		return nil, ErrNoLayout
	}
	if err != nil {
		return nil, err
	}

	return loadgrid.NewGridDefinition(size, ids)
}

// ForbiddenFile reads a script from path and runs it like Forbidden.
func ForbiddenFile(ctx context.Context, path string, size int) (*loadgrid.GridDefinition, error) {
	script, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	def, err := Forbidden(ctx, string(script), size)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

func tableIDs(table *lua.LTable) ([]int, error) {
	var ids []int
	var bad lua.LValue
	table.ForEach(func(_, value lua.LValue) {
		n, ok := value.(lua.LNumber)
		if !ok || float64(n) != float64(int(n)) {
			if bad == nil {
				bad = value
			}
			return
		}
		ids = append(ids, int(n))
	})
	if bad != nil {
		return nil, fmt.Errorf("%w: forbidden id %s is not an integer", loadgrid.ErrInvalidGrid, bad.String())
	}
	return ids, nil
}

func predicateIDs(L *lua.LState, fn lua.LValue, size int) ([]int, error) {
	var ids []int
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true},
				lua.LNumber(x), lua.LNumber(y), lua.LNumber(size))
			if err != nil {
				return nil, fmt.Errorf("forbidden(%d, %d): %w", x, y, err)
			}
			ret := L.Get(-1)
			L.Pop(1)
			if lua.LVAsBool(ret) {
				ids = append(ids, y*size+x)
			}
		}
	}
	return ids, nil
}
