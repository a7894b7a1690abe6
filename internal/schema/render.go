// pattern: Functional Core (segment selection) + Imperative Shell (lipgloss rendering)

// Package schema renders a block's wing diagram for the terminal. One
// parameterized wing renderer covers every registered block type; the
// dispatcher resolves the type through the registry and renders
// nothing for unconfigured or unknown types.
package schema

import (
	catppuccin "github.com/catppuccin/go"

	"fiberdesk/internal/blocktype"
	"fiberdesk/internal/layout"
)

// Context carries what a renderer needs besides the block itself.
// FocusedFloor is the floor index the editor cursor is on, -1 for none.
type Context struct {
	Flavor       catppuccin.Flavor
	FocusedFloor int
}

// Render resolves the block's type and draws its diagram. Unknown or
// empty types yield the empty string, never an error: callers show a
// blank diagram area for unconfigured blocks.
func Render(block layout.Block, ctx Context) string {
	desc, ok := blocktype.Lookup(block.BlockType)
	if !ok {
		return ""
	}
	if len(block.Floors) == 0 {
		return ""
	}

	switch desc.Kind {
	case blocktype.KindWing:
		return renderWing(block, ctx, wingOpts{orientation: desc.Orientation})
	case blocktype.KindApartment:
		return renderWing(block, ctx, wingOpts{orientation: desc.Orientation, boxed: true})
	case blocktype.KindNoGroundWing:
		return renderWing(block, ctx, wingOpts{orientation: desc.Orientation, skipGround: true})
	case blocktype.KindStraightWing:
		return renderWing(block, ctx, wingOpts{orientation: desc.Orientation, straight: true})
	case blocktype.KindDoubleWing:
		return renderWing(block, ctx, wingOpts{orientation: desc.Orientation, double: true})
	}
	return ""
}

// floorPosition classifies a floor within its block. Boundary floors
// draw distinct connector segments from interior floors; this
// three-way branch recurs across every wing shape.
type floorPosition int

const (
	positionOnly floorPosition = iota
	positionTop
	positionMiddle
	positionBottom
)

// classifyFloor returns the position of floor index within count floors.
func classifyFloor(index, count int) floorPosition {
	switch {
	case count == 1:
		return positionOnly
	case index == count-1:
		return positionTop
	case index == 0:
		return positionBottom
	default:
		return positionMiddle
	}
}

// connector returns the structural segment glyph for a floor row. The
// straight variant runs the cable past every floor without branching.
func connector(pos floorPosition, straight bool) string {
	if straight {
		return "│"
	}
	switch pos {
	case positionOnly:
		return "─"
	case positionTop:
		return "┌"
	case positionBottom:
		return "└"
	default:
		return "├"
	}
}
