// pattern: Functional Core

package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"fiberdesk/internal/api"
)

// placeItem adapts a navigation node to the bubbles list.
type placeItem struct {
	place api.Place
}

func (i placeItem) Title() string       { return i.place.Name }
func (i placeItem) Description() string { return "" }
func (i placeItem) FilterValue() string { return i.place.Name }

// buildingItem adapts a building to the bubbles list. The description
// line shows the flat count and whether a layout exists yet.
type buildingItem struct {
	building api.Building
}

func (i buildingItem) Title() string { return i.building.Adres }

func (i buildingItem) Description() string {
	desc := fmt.Sprintf("%d flats", len(i.building.Flats))
	if i.building.Layout == nil || len(i.building.Layout.Blocks) == 0 {
		return desc + " · no layout"
	}
	return fmt.Sprintf("%s · %d blocks", desc, len(i.building.Layout.Blocks))
}

func (i buildingItem) FilterValue() string { return i.building.Adres }

// newPlaceDelegate styles the shared navigation list for the active
// flavor.
func newPlaceDelegate(styles *Styles) list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	flavor := styles.Flavor()

	d.Styles.SelectedTitle = d.Styles.SelectedTitle.
		Foreground(lipgloss.Color(flavor.Teal().Hex)).
		BorderLeftForeground(lipgloss.Color(flavor.Teal().Hex))
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.
		Foreground(lipgloss.Color(flavor.Subtext0().Hex)).
		BorderLeftForeground(lipgloss.Color(flavor.Teal().Hex))
	d.Styles.NormalTitle = d.Styles.NormalTitle.
		Foreground(lipgloss.Color(flavor.Text().Hex))
	d.Styles.NormalDesc = d.Styles.NormalDesc.
		Foreground(lipgloss.Color(flavor.Overlay1().Hex))

	return d
}

// placeItems converts places to list items.
func placeItems(places []api.Place) []list.Item {
	items := make([]list.Item, len(places))
	for i, p := range places {
		items[i] = placeItem{place: p}
	}
	return items
}

// buildingItems converts buildings to list items.
func buildingItems(buildings []api.Building) []list.Item {
	items := make([]list.Item, len(buildings))
	for i, b := range buildings {
		items[i] = buildingItem{building: b}
	}
	return items
}
