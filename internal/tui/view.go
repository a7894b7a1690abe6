// pattern: Imperative Shell

package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fiberdesk/internal/blocktype"
	"fiberdesk/internal/layout"
	"fiberdesk/internal/schema"
)

// View renders the active screen with the shared chrome.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	l := ComputeLayout(m.width, m.height, m.logPanelOpen, m.screen == ScreenEditor)

	var content string
	switch m.screen {
	case ScreenLogin:
		content = m.viewLogin(l)
	case ScreenPlaces:
		content = m.viewPlaces(l)
	case ScreenEditor:
		content = m.viewEditor(l)
	case ScreenUsers:
		content = m.viewUsers(l)
	}

	sections := []string{m.viewHeader(), content}
	if m.logPanelOpen && m.logReady {
		separator := m.styles.SubtitleStyle().Render(strings.Repeat("─", max(m.width, 1)))
		sections = append(sections, separator, m.logViewport.View())
	}
	sections = append(sections, m.viewStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewHeader() string {
	title := m.styles.TitleStyle().Render("fiberdesk")
	crumb := m.breadcrumb()
	if crumb == "" {
		return title
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", m.styles.SubtitleStyle().Render(crumb))
}

// breadcrumb shows where the user is in the place tree.
func (m Model) breadcrumb() string {
	if m.screen == ScreenLogin {
		return ""
	}
	parts := make([]string, 0, 5)
	for _, c := range m.crumbs {
		parts = append(parts, c.Name)
	}
	if m.screen == ScreenEditor && m.sess != nil {
		parts = append(parts, m.sess.Building().Adres)
	}
	if m.screen == ScreenUsers {
		parts = append(parts, "users")
	}
	if len(parts) == 0 {
		return "cities"
	}
	return strings.Join(parts, " › ")
}

func (m Model) viewLogin(l Layout) string {
	var sb strings.Builder
	sb.WriteString(m.styles.SubtitleStyle().Render("sign in"))
	sb.WriteString("\n\n")
	sb.WriteString(m.loginEmail.View())
	sb.WriteString("\n")
	sb.WriteString(m.loginPassword.View())
	sb.WriteString("\n")

	switch {
	case m.loggingIn:
		sb.WriteString("\n" + m.statusSpinner.View() + " " + m.styles.AccentStyle().Render(m.loginStage+"…"))
	case m.loginErr != "":
		sb.WriteString("\n" + m.styles.ErrorStyle().Render(m.loginErr))
	}

	box := m.styles.BoxStyle().Width(44).Render(sb.String())
	return lipgloss.Place(l.Content.Width, l.Content.Height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) viewPlaces(l Layout) string {
	help := m.styles.HelpStyle().Render(m.placesHelp())
	return lipgloss.JoinVertical(lipgloss.Left, m.placeList.View(), help)
}

func (m Model) placesHelp() string {
	help := "enter open · esc back"
	if m.identity.IsAdmin() {
		help += " · u users"
	}
	return help + " · ctrl+l logs · ctrl+c quit"
}

func (m Model) viewEditor(l Layout) string {
	if m.sess == nil {
		return ""
	}

	grid := m.viewGrid(l.Grid)
	diagram := m.viewDiagram(l.Diagram)
	body := lipgloss.JoinHorizontal(lipgloss.Top, grid, diagram)

	var overlay string
	switch {
	case m.confirmOpen:
		overlay = m.styles.BoxStyle().Render(
			m.styles.WarnStyle().Render(m.confirmText) + "\n" + m.styles.HelpStyle().Render("y leave · n stay"))
	case m.scheduleOpen:
		overlay = m.viewScheduleForm()
	case m.typePickerOpen:
		overlay = m.viewTypePicker()
	case m.boundInputOpen:
		label := "top floor"
		if m.boundKind == "first" {
			label = "first floor"
		}
		overlay = m.styles.BoxStyle().Render(m.styles.SubtitleStyle().Render(label) + "\n" + m.boundInput.View())
	}
	if overlay != "" {
		return lipgloss.JoinVertical(lipgloss.Left, body, overlay)
	}

	help := m.styles.HelpStyle().Render(
		"↑↓←→ move · enter edit · tab block · t top · f first · y type · a add · d delete · s schedule · ctrl+s save · esc back")
	return lipgloss.JoinVertical(lipgloss.Left, body, help)
}

// viewGrid renders the block tab line and the floor table, top floor
// first to match the diagram.
func (m Model) viewGrid(r Region) string {
	blocks := m.sess.Blocks()

	var tabs []string
	for i, b := range blocks {
		label := fmt.Sprintf("block %d", i+1)
		if d, ok := blocktype.Lookup(b.BlockType); ok {
			label = d.Icon + " " + label
		}
		if i == m.blockIndex {
			tabs = append(tabs, m.styles.AccentStyle().Bold(true).Render("["+label+"]"))
		} else {
			tabs = append(tabs, m.styles.SubtitleStyle().Render(" "+label+" "))
		}
	}
	tabLine := strings.Join(tabs, " ")

	block := blocks[m.blockIndex]
	var rows []string
	rows = append(rows, m.styles.SubtitleStyle().Render(m.blockSummary(block)))
	rows = append(rows, m.styles.SubtitleStyle().Render("floor  flat          cable  length"))

	for i := len(block.Floors) - 1; i >= 0; i-- {
		rows = append(rows, m.gridRow(block.Floors[i], i))
	}
	if len(block.Floors) == 0 {
		rows = append(rows, m.styles.SubtitleStyle().Render("set top floor (t) to generate floors"))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, append([]string{tabLine, ""}, rows...)...)
	return lipgloss.NewStyle().Width(r.Width).MaxHeight(r.Height).Render(body)
}

func (m Model) blockSummary(b layout.Block) string {
	typeLabel := "no type"
	if d, ok := blocktype.Lookup(b.BlockType); ok {
		typeLabel = d.Label
	}
	top := "?"
	if b.TopFloor != nil {
		top = strconv.Itoa(*b.TopFloor)
	}
	return fmt.Sprintf("%s · floors %d–%s", typeLabel, b.FirstFloor, top)
}

func (m Model) gridRow(f layout.Floor, index int) string {
	cells := []string{
		fmt.Sprintf("%5d", f.Floor),
		fmt.Sprintf("%-12s", orDash(f.Flat)),
		fmt.Sprintf("%5s", orDashInt(f.CableNumber)),
		fmt.Sprintf("%6s", orDashInt(f.CableLength)),
	}

	if index == m.floorIndex {
		if m.editing {
			cells[m.fieldIndex+1] = m.fieldInput.View()
		} else {
			cells[m.fieldIndex+1] = m.styles.AccentStyle().Bold(true).Underline(true).Render(cells[m.fieldIndex+1])
		}
		return m.styles.InfoStyle().Render("▸ " + strings.Join(cells, "  "))
	}
	return m.styles.InfoStyle().Render("  " + strings.Join(cells, "  "))
}

func (m Model) viewDiagram(r Region) string {
	block := m.sess.Blocks()[m.blockIndex]
	diagram := schema.Render(block, schema.Context{
		Flavor:       m.styles.Flavor(),
		FocusedFloor: m.floorIndex,
	})
	if diagram == "" {
		diagram = m.styles.SubtitleStyle().Render("no diagram · pick a block type (y)")
	}

	cables := m.sess.CableNumbers()
	if len(cables) > 0 {
		parts := make([]string, len(cables))
		for i, c := range cables {
			parts[i] = strconv.Itoa(c)
		}
		diagram += "\n\n" + m.styles.SubtitleStyle().Render("cables: "+strings.Join(parts, ", "))
	}

	return lipgloss.NewStyle().Width(r.Width).MaxHeight(r.Height).PaddingLeft(2).Render(diagram)
}

func (m Model) viewTypePicker() string {
	var sb strings.Builder
	sb.WriteString(m.styles.SubtitleStyle().Render("block type"))
	idx := 0
	for _, cat := range blocktype.Categories {
		sb.WriteString("\n" + m.styles.AccentStyle().Render(cat.Name))
		for _, d := range cat.Types {
			line := "  " + d.Icon + " " + d.Label
			if idx == m.typeIndex {
				line = m.styles.AccentStyle().Bold(true).Render("▸ " + d.Icon + " " + d.Label)
			}
			sb.WriteString("\n" + line)
			idx++
		}
	}
	return m.styles.BoxStyle().Render(sb.String())
}

func (m Model) viewScheduleForm() string {
	cables := m.sess.CableNumbers()

	cableLabel := "no cables assigned yet"
	flatCount := 0
	if m.scheduleCable >= 0 && m.scheduleCable < len(cables) {
		cable := cables[m.scheduleCable]
		cableLabel = fmt.Sprintf("cable %d (%d/%d)", cable, m.scheduleCable+1, len(cables))
		flatCount = len(m.sess.FlatsForCable(cable))
	}
	if m.scheduleFocus == 0 {
		cableLabel = m.styles.AccentStyle().Bold(true).Render("◂ " + cableLabel + " ▸")
	} else {
		cableLabel = m.styles.InfoStyle().Render(cableLabel)
	}

	var sb strings.Builder
	sb.WriteString(m.styles.SubtitleStyle().Render("schedule installation"))
	sb.WriteString("\n" + cableLabel)
	sb.WriteString("\n" + m.styles.SubtitleStyle().Render(fmt.Sprintf("%d flats in this window", flatCount)))
	for i := range m.scheduleInputs {
		sb.WriteString("\n" + m.scheduleInputs[i].View())
	}
	sb.WriteString("\n" + m.styles.HelpStyle().Render("tab next · enter submit · esc close"))
	return m.styles.BoxStyle().Render(sb.String())
}

func (m Model) viewUsers(l Layout) string {
	if m.userFormOpen {
		return m.viewUserForm(l)
	}

	var rows []string
	rows = append(rows, m.styles.SubtitleStyle().Render(fmt.Sprintf("%d accounts", len(m.users))))
	for _, u := range m.users {
		name := lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.userColors.Color(u.ID))).
			Bold(true).
			Render(u.Name)
		rows = append(rows, fmt.Sprintf("%s  %s  %s", name,
			m.styles.InfoStyle().Render(u.Email),
			m.styles.SubtitleStyle().Render(strings.Join(u.Roles, ", "))))
	}
	rows = append(rows, m.styles.HelpStyle().Render("n new user · esc back"))

	body := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.NewStyle().MaxHeight(l.Content.Height).Render(body)
}

func (m Model) viewUserForm(l Layout) string {
	role := "no roles loaded"
	if m.userRoleIdx >= 0 && m.userRoleIdx < len(m.roles) {
		role = m.roles[m.userRoleIdx]
	}
	if m.userFocus == 3 {
		role = m.styles.AccentStyle().Bold(true).Render("◂ " + role + " ▸")
	} else {
		role = m.styles.InfoStyle().Render(role)
	}

	var sb strings.Builder
	sb.WriteString(m.styles.SubtitleStyle().Render("new user"))
	for i := range m.userInputs {
		sb.WriteString("\n" + m.userInputs[i].View())
	}
	sb.WriteString("\nrole: " + role)
	if m.userFormErr != "" {
		sb.WriteString("\n" + m.styles.ErrorStyle().Render(m.userFormErr))
	}
	sb.WriteString("\n" + m.styles.HelpStyle().Render("tab next · enter create · esc cancel"))

	box := m.styles.BoxStyle().Width(44).Render(sb.String())
	return lipgloss.Place(l.Content.Width, l.Content.Height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) viewStatusBar() string {
	switch m.statusLevel {
	case StatusLoading:
		return m.statusSpinner.View() + " " + m.styles.AccentStyle().Render(m.statusMessage)
	case StatusInfo:
		return m.styles.AccentStyle().Render(m.statusMessage)
	case StatusWarn:
		return m.styles.WarnStyle().Render(m.statusMessage)
	case StatusError:
		return m.styles.ErrorStyle().Render(m.statusMessage)
	}

	if m.sess != nil && m.sess.Dirty() {
		return m.styles.WarnStyle().Render("unsaved changes")
	}
	if m.identity.Name != "" {
		return m.styles.SubtitleStyle().Render(m.identity.Name)
	}
	return ""
}

// logContent renders the buffered entries for the log viewport.
func (m Model) logContent() string {
	lines := make([]string, len(m.logEntries))
	for i, e := range m.logEntries {
		lines[i] = e.String()
	}
	return strings.Join(lines, "\n")
}

// levelNoun names a navigation level for status messages.
func levelNoun(level NavLevel) string {
	switch level {
	case LevelCity:
		return "cities"
	case LevelArea:
		return "areas"
	case LevelDistrict:
		return "districts"
	default:
		return "buildings"
	}
}

// discardNotice phrases the regeneration warning.
func discardNotice(count int) string {
	if count == 1 {
		return "floors regenerated, 1 assignment discarded"
	}
	return fmt.Sprintf("floors regenerated, %d assignments discarded", count)
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

func orDashInt(v *int) string {
	if v == nil {
		return "—"
	}
	return strconv.Itoa(*v)
}
