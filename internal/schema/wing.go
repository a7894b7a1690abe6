// pattern: Imperative Shell

package schema

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fiberdesk/internal/blocktype"
	"fiberdesk/internal/layout"
)

// wingOpts parameterize the shared wing renderer. The source system
// drew each combination as its own diagram; the shapes differ only in
// stairwell side, ground-floor treatment, cable routing and flat
// column count.
type wingOpts struct {
	orientation blocktype.Orientation
	boxed       bool // apartment block: flats drawn inside a framed shaft
	skipGround  bool // ground floor rendered as crawl space, no flat cell
	straight    bool // cable runs straight past every floor
	double      bool // two flat columns sharing one stairwell
}

const stairwellGlyph = "▤"

// renderWing draws the block top floor first. Each row is a connector
// segment (three-way first/middle/last branch), the stairwell on the
// configured side, and the floor's cell text.
func renderWing(block layout.Block, ctx Context, opts wingOpts) string {
	connStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ctx.Flavor.Surface2().Hex))
	stairStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ctx.Flavor.Mauve().Hex))
	crawlStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ctx.Flavor.Overlay0().Hex))

	count := len(block.Floors)
	rows := make([]string, 0, count)

	for i := count - 1; i >= 0; i-- {
		floor := block.Floors[i]
		pos := classifyFloor(i, count)

		if opts.skipGround && i == 0 {
			rows = append(rows, crawlStyle.Render("  ░░ crawl space"))
			continue
		}

		seg := connStyle.Render(connector(pos, opts.straight))
		stair := stairStyle.Render(stairwellGlyph)
		cell := renderCell(floor, ctx, i == ctx.FocusedFloor)

		var row string
		switch {
		case opts.double:
			// Mirrored cell on the far side of the shared stairwell.
			row = fmt.Sprintf("%s %s%s%s %s", cell, seg, stair, seg, cell)
		case opts.orientation == blocktype.OrientRight:
			row = fmt.Sprintf("%s %s%s", cell, seg, stair)
		case opts.orientation == blocktype.OrientCenter:
			row = fmt.Sprintf("%s%s %s", seg, stair, cell)
		default:
			row = fmt.Sprintf("%s%s %s", stair, seg, cell)
		}
		rows = append(rows, row)
	}

	diagram := strings.Join(rows, "\n")
	if opts.boxed {
		frame := lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(ctx.Flavor.Surface1().Hex)).
			Padding(0, 1)
		return frame.Render(diagram)
	}
	return diagram
}

// renderCell formats one floor's number, flat and cable fields.
// Unassigned fields render as placeholders so columns stay aligned.
func renderCell(floor layout.Floor, ctx Context, focused bool) string {
	textStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ctx.Flavor.Text().Hex))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ctx.Flavor.Overlay0().Hex))
	cableStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ctx.Flavor.Teal().Hex))

	flat := floor.Flat
	if flat == "" {
		flat = "·"
	}

	cable := "      "
	if floor.CableNumber != nil {
		if floor.CableLength != nil {
			cable = fmt.Sprintf("c%d %dm", *floor.CableNumber, *floor.CableLength)
		} else {
			cable = fmt.Sprintf("c%d", *floor.CableNumber)
		}
	}

	cell := fmt.Sprintf("%s %s %s",
		dimStyle.Render(fmt.Sprintf("%2d", floor.Floor)),
		textStyle.Render(fmt.Sprintf("%-6s", flat)),
		cableStyle.Render(cable),
	)
	if focused {
		return lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ctx.Flavor.Mauve().Hex)).
			Render("▸ ") + cell
	}
	return "  " + cell
}
