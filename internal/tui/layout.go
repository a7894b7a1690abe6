// pattern: Functional Core

package tui

// Region defines a rectangular area within the terminal.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Layout holds computed regions for the screen chrome. The content
// area splits 40/60 horizontally between the floor grid and the
// diagram when the editor is open, and 40/60 vertically between
// content and logs when the log panel is open.
type Layout struct {
	Header    Region // Title + breadcrumb (2 lines)
	Content   Region // Main content area
	Grid      Region // Editor floor grid (left)
	Diagram   Region // Editor diagram panel (right)
	Logs      Region // Log panel when open
	StatusBar Region // Status bar (1 line)
	Separator Region // Separator above logs (1 line when open)
}

// Fixed heights for chrome elements
const (
	headerHeight    = 2
	statusBarHeight = 1
	marginHeight    = 2
	separatorHeight = 1
)

// ComputeLayout calculates regions from terminal dimensions.
func ComputeLayout(width, height int, logPanelOpen, diagramOpen bool) Layout {
	fixedHeight := headerHeight + statusBarHeight + marginHeight
	availableHeight := height - fixedHeight
	if availableHeight < 4 {
		availableHeight = 4
	}

	var contentHeight, logsHeight int
	if logPanelOpen {
		contentHeight = int(float64(availableHeight) * 0.4)
		logsHeight = availableHeight - contentHeight
	} else {
		contentHeight = availableHeight
	}

	y := 0
	header := Region{X: 0, Y: y, Width: width, Height: headerHeight}
	y += headerHeight

	content := Region{X: 0, Y: y, Width: width, Height: contentHeight}

	var grid, diagram Region
	if diagramOpen {
		gridWidth := int(float64(width) * 0.4)
		grid = Region{X: 0, Y: content.Y, Width: gridWidth, Height: contentHeight}
		diagram = Region{X: gridWidth, Y: content.Y, Width: width - gridWidth, Height: contentHeight}
	} else {
		grid = Region{X: 0, Y: content.Y, Width: width, Height: contentHeight}
	}

	y += contentHeight

	var separator, logs Region
	if logPanelOpen {
		separator = Region{X: 0, Y: y, Width: width, Height: separatorHeight}
		y += separatorHeight
		logs = Region{X: 0, Y: y, Width: width, Height: logsHeight}
		y += logsHeight
	}

	statusBar := Region{X: 0, Y: y, Width: width, Height: statusBarHeight}

	return Layout{
		Header:    header,
		Content:   content,
		Grid:      grid,
		Diagram:   diagram,
		Logs:      logs,
		StatusBar: statusBar,
		Separator: separator,
	}
}

// ContentListHeight returns the rows available for a bubbles list
// after its own chrome.
func (l Layout) ContentListHeight() int {
	h := l.Content.Height - 2
	if h < 1 {
		h = 1
	}
	return h
}
