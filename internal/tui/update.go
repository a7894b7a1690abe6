// pattern: Imperative Shell

package tui

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"fiberdesk/internal/api"
	"fiberdesk/internal/blocktype"
	"fiberdesk/internal/instance"
	"fiberdesk/internal/layout"
	"fiberdesk/internal/logging"
	"fiberdesk/internal/session"
)

const maxLogEntries = 500

// Update routes messages to the active screen.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.statusSpinner, cmd = m.statusSpinner.Update(msg)
		return m, cmd

	case logEntryMsg:
		m.logEntries = append(m.logEntries, logging.Entry(msg))
		if len(m.logEntries) > maxLogEntries {
			m.logEntries = m.logEntries[len(m.logEntries)-maxLogEntries:]
		}
		if m.logReady {
			atBottom := m.logViewport.AtBottom()
			m.logViewport.SetContent(m.logContent())
			if atBottom {
				m.logViewport.GotoBottom()
			}
		}
		return m, m.pumpLogs()

	case logClosedMsg:
		return m, nil

	case ConfigChangedMsg:
		m.ApplyConfig(msg.Config)
		m.logger.Info("configuration reloaded", "theme", m.themeName)
		return m.setStatus(StatusInfo, "configuration reloaded")

	case loginStageMsg:
		if m.loggingIn && msg.seq == m.loginSeq {
			m.loginStage = msg.stage
		}
		return m, nil

	case loginDoneMsg:
		return m.handleLoginDone(msg)

	case placesLoadedMsg:
		return m.handlePlacesLoaded(msg)

	case buildingsLoadedMsg:
		if msg.err != nil {
			return m.backendError(msg.err)
		}
		m.buildings = msg.buildings
		m.navLevel = LevelBuilding
		m.placeList.SetItems(buildingItems(msg.buildings))
		m.selectRestoredOrFirst()
		m, _ = m.clearStatus()
		return m, nil

	case buildingLoadedMsg:
		if msg.err != nil {
			return m.backendError(msg.err)
		}
		m.sess = session.New(msg.building, m.logs.For("session"))
		m.screen = ScreenEditor
		m.blockIndex = 0
		m.floorIndex = 0
		m.fieldIndex = 0
		m.editing = false
		m.scheduleOpen = false
		m.scheduleCable = -1
		m, _ = m.clearStatus()
		return m, nil

	case layoutSavedMsg:
		m.saving = false
		if msg.err != nil {
			return m.backendError(msg.err)
		}
		m.sess.MarkSaved()
		return m.setStatus(StatusInfo, "layout saved")

	case scheduleSubmittedMsg:
		if msg.err != nil {
			return m.backendError(msg.err)
		}
		// Keep the cable selection for the next window on the same
		// cable; only the date and times reset.
		for i := range m.scheduleInputs {
			m.scheduleInputs[i].SetValue("")
		}
		m.scheduleFocus = 0
		return m.setStatus(StatusInfo, "schedule submitted")

	case usersLoadedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, context.Canceled) {
				return m, nil
			}
			return m.backendError(msg.err)
		}
		m.users = msg.users
		m.roles = msg.roles
		m, _ = m.clearStatus()
		return m, nil

	case userCreatedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrSessionExpired) {
				return m.expireToLogin()
			}
			m.userFormErr = msg.err.Error()
			return m, nil
		}
		m.userFormOpen = false
		m.resetUserForm()
		ctx, cancel := context.WithCancel(context.Background())
		if m.usersCancel != nil {
			m.usersCancel()
		}
		m.usersCancel = cancel
		var cmd tea.Cmd
		m, cmd = m.setStatus(StatusInfo, "user created")
		return m, tea.Batch(cmd, m.loadUsersCmd(ctx))

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			return m.clearStatus()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.forwardToFocused(msg)
}

// handleKey routes keys: global chords first, then the active screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		now := time.Now()
		if now.Sub(m.lastCtrlCTime) < 2*time.Second {
			return m, tea.Quit
		}
		m.lastCtrlCTime = now
		return m.setStatus(StatusWarn, "press ctrl+c again to quit")

	case "ctrl+d":
		return m, tea.Quit

	case "ctrl+l":
		m.logPanelOpen = !m.logPanelOpen
		m.resize()
		return m, nil
	}

	switch m.screen {
	case ScreenLogin:
		return m.updateLogin(msg)
	case ScreenPlaces:
		return m.updatePlaces(msg)
	case ScreenEditor:
		return m.updateEditor(msg)
	case ScreenUsers:
		return m.updateUsers(msg)
	}
	return m, nil
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loggingIn {
		return m, nil
	}

	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		m.loginFocus = (m.loginFocus + 1) % 2
		if m.loginFocus == 0 {
			m.loginEmail.Focus()
			m.loginPassword.Blur()
		} else {
			m.loginEmail.Blur()
			m.loginPassword.Focus()
		}
		return m, nil

	case "enter":
		email := strings.TrimSpace(m.loginEmail.Value())
		password := m.loginPassword.Value()
		if email == "" || password == "" {
			m.loginErr = "email and password are required"
			return m, nil
		}
		m.loggingIn = true
		m.loginErr = ""
		m.loginSeq++
		m.loginStage = "checking credentials"
		m.logger.Info("login started", "email", email)
		return m, tea.Batch(
			m.loginCmd(email, password),
			loginStageCmd("fetching profile", m.loginSeq, 600*time.Millisecond),
			loginStageCmd("preparing workspace", m.loginSeq, 1200*time.Millisecond),
		)
	}

	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.loginEmail, cmd = m.loginEmail.Update(msg)
	} else {
		m.loginPassword, cmd = m.loginPassword.Update(msg)
	}
	return m, cmd
}

func (m Model) handleLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	m.loggingIn = false
	m.loginStage = ""
	if msg.err != nil {
		m.loginErr = msg.err.Error()
		m.logger.Warn("login failed", "error", msg.err)
		return m, nil
	}
	m.identity = msg.identity
	m.screen = ScreenPlaces
	m.logger.Info("login succeeded", "user", msg.identity.Name, "admin", msg.identity.IsAdmin())

	// Resume where the user left off last time.
	level := m.restoreNav()
	m.navLevel = level
	var cmd tea.Cmd
	m, cmd = m.setStatus(StatusLoading, "loading "+levelNoun(level))
	return m, tea.Batch(cmd, m.loadPlacesCmd(level))
}

func (m Model) handlePlacesLoaded(msg placesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.backendError(msg.err)
	}
	m.navLevel = msg.level
	m.placeList.SetItems(placeItems(msg.places))
	m.selectRestoredOrFirst()
	m, _ = m.clearStatus()
	return m, nil
}

// backendError routes a failed backend result. An expired session is
// unrecoverable and always drops to the login screen; everything else
// lands in the status bar.
func (m Model) backendError(err error) (tea.Model, tea.Cmd) {
	if errors.Is(err, api.ErrSessionExpired) {
		return m.expireToLogin()
	}
	return m.setStatus(StatusError, err.Error())
}

// selectRestoredOrFirst applies the one pending restored list index,
// or resets the selection.
func (m *Model) selectRestoredOrFirst() {
	if m.pendingIndex >= 0 && m.pendingIndex < len(m.placeList.Items()) {
		m.placeList.Select(m.pendingIndex)
	} else {
		m.placeList.ResetSelected()
	}
	m.pendingIndex = -1
}

func (m Model) updatePlaces(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.descend()

	case "esc", "backspace":
		return m.ascend()

	case "u":
		if !m.identity.IsAdmin() {
			return m.setStatus(StatusWarn, "administrator access required")
		}
		return m.openUsers()
	}

	var cmd tea.Cmd
	m.placeList, cmd = m.placeList.Update(msg)
	return m, cmd
}

// descend selects the current list entry and loads the next level.
func (m Model) descend() (tea.Model, tea.Cmd) {
	if m.navLevel == LevelBuilding {
		item, ok := m.placeList.SelectedItem().(buildingItem)
		if !ok {
			return m, nil
		}
		m.saveNav()
		var cmd tea.Cmd
		m, cmd = m.setStatus(StatusLoading, "loading building")
		return m, tea.Batch(cmd, m.loadBuildingCmd(item.building.ID))
	}

	item, ok := m.placeList.SelectedItem().(placeItem)
	if !ok {
		return m, nil
	}
	m.crumbs = append(m.crumbs[:m.navLevel], item.place)
	next := m.navLevel + 1
	m.saveNav()
	var cmd tea.Cmd
	m, cmd = m.setStatus(StatusLoading, "loading "+levelNoun(next))
	return m, tea.Batch(cmd, m.loadPlacesCmd(next))
}

// ascend reloads the parent level, or stays put at the city list.
func (m Model) ascend() (tea.Model, tea.Cmd) {
	if m.navLevel == LevelCity {
		return m, nil
	}
	parent := m.navLevel - 1
	m.crumbs = m.crumbs[:parent]
	m.saveNav()
	var cmd tea.Cmd
	m, cmd = m.setStatus(StatusLoading, "loading "+levelNoun(parent))
	return m, tea.Batch(cmd, m.loadPlacesCmd(parent))
}

func (m Model) openUsers() (tea.Model, tea.Cmd) {
	m.screen = ScreenUsers
	m.users = nil
	m.roles = nil
	ctx, cancel := context.WithCancel(context.Background())
	if m.usersCancel != nil {
		m.usersCancel()
	}
	m.usersCancel = cancel
	var cmd tea.Cmd
	m, cmd = m.setStatus(StatusLoading, "loading users")
	return m, tea.Batch(cmd, m.loadUsersCmd(ctx))
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.confirmOpen:
		return m.updateConfirm(msg)
	case m.scheduleOpen:
		return m.updateSchedule(msg)
	case m.typePickerOpen:
		return m.updateTypePicker(msg)
	case m.boundInputOpen:
		return m.updateBoundInput(msg)
	case m.editing:
		return m.updateFieldEdit(msg)
	}

	block := m.currentBlock()

	switch msg.String() {
	case "up":
		if block != nil && m.floorIndex < len(block.Floors)-1 {
			m.floorIndex++
		}
		return m, nil

	case "down":
		if m.floorIndex > 0 {
			m.floorIndex--
		}
		return m, nil

	case "left":
		if m.fieldIndex > 0 {
			m.fieldIndex--
		}
		return m, nil

	case "right":
		if m.fieldIndex < len(floorFields)-1 {
			m.fieldIndex++
		}
		return m, nil

	case "tab":
		if n := len(m.sess.Blocks()); n > 0 {
			m.blockIndex = (m.blockIndex + 1) % n
			m.clampCursor()
		}
		return m, nil

	case "shift+tab":
		if n := len(m.sess.Blocks()); n > 0 {
			m.blockIndex = (m.blockIndex + n - 1) % n
			m.clampCursor()
		}
		return m, nil

	case "enter":
		return m.startFieldEdit()

	case "t":
		return m.openBoundInput("top")

	case "f":
		return m.openBoundInput("first")

	case "y":
		m.typePickerOpen = true
		m.typeIndex = m.currentTypeIndex()
		return m, nil

	case "a":
		m.sess.AddBlock()
		m.blockIndex = len(m.sess.Blocks()) - 1
		m.clampCursor()
		return m, nil

	case "d":
		if err := m.sess.RemoveBlock(m.blockIndex); err != nil {
			return m.setStatus(StatusWarn, "a building keeps at least one block")
		}
		if m.blockIndex >= len(m.sess.Blocks()) {
			m.blockIndex = len(m.sess.Blocks()) - 1
		}
		m.clampCursor()
		return m, nil

	case "s":
		m.scheduleOpen = true
		m.scheduleFocus = 0
		if m.scheduleCable < 0 && len(m.sess.CableNumbers()) > 0 {
			m.scheduleCable = 0
		}
		return m, nil

	case "ctrl+s":
		if m.saving {
			return m, nil
		}
		m.saving = true
		var cmd tea.Cmd
		m, cmd = m.setStatus(StatusLoading, "saving layout")
		return m, tea.Batch(cmd, m.saveLayoutCmd())

	case "esc":
		if m.sess.Dirty() {
			m.confirmOpen = true
			m.confirmText = "unsaved changes will be lost, leave anyway?"
			return m, nil
		}
		return m.leaveEditor()
	}

	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.confirmOpen = false
		return m.leaveEditor()
	case "n", "esc":
		m.confirmOpen = false
		return m, nil
	}
	return m, nil
}

func (m Model) leaveEditor() (tea.Model, tea.Cmd) {
	m.sess = nil
	m.screen = ScreenPlaces
	m.scheduleOpen = false
	var cmd tea.Cmd
	m, cmd = m.setStatus(StatusLoading, "loading buildings")
	return m, tea.Batch(cmd, m.loadPlacesCmd(LevelBuilding))
}

func (m Model) startFieldEdit() (tea.Model, tea.Cmd) {
	block := m.currentBlock()
	if block == nil || m.floorIndex >= len(block.Floors) {
		return m, nil
	}
	floor := block.Floors[m.floorIndex]

	in := textinput.New()
	switch floorFields[m.fieldIndex] {
	case layout.FieldFlat:
		in.Placeholder = "flat id"
		in.SetValue(floor.Flat)
	case layout.FieldCableNumber:
		in.Placeholder = "cable number"
		if floor.CableNumber != nil {
			in.SetValue(strconv.Itoa(*floor.CableNumber))
		}
	case layout.FieldCableLength:
		in.Placeholder = "cable length (m)"
		if floor.CableLength != nil {
			in.SetValue(strconv.Itoa(*floor.CableLength))
		}
	}
	in.Focus()
	m.fieldInput = in
	m.editing = true
	return m, nil
}

func (m Model) updateFieldEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		value := strings.TrimSpace(m.fieldInput.Value())
		field := floorFields[m.fieldIndex]
		if field == layout.FieldFlat && value != "" && !m.sess.ValidFlat(value) {
			return m.setStatus(StatusWarn, "flat does not belong to this building")
		}
		m.sess.SetFloorField(m.blockIndex, m.floorIndex, field, value)
		m.editing = false
		return m, nil
	case "esc":
		m.editing = false
		return m, nil
	}
	var cmd tea.Cmd
	m.fieldInput, cmd = m.fieldInput.Update(msg)
	return m, cmd
}

func (m Model) openBoundInput(kind string) (tea.Model, tea.Cmd) {
	block := m.currentBlock()
	if block == nil {
		return m, nil
	}
	in := textinput.New()
	if kind == "top" {
		in.Placeholder = "top floor"
		if block.TopFloor != nil {
			in.SetValue(strconv.Itoa(*block.TopFloor))
		}
	} else {
		in.Placeholder = "first floor"
		in.SetValue(strconv.Itoa(block.FirstFloor))
	}
	in.Focus()
	m.boundInput = in
	m.boundKind = kind
	m.boundInputOpen = true
	return m, nil
}

func (m Model) updateBoundInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		raw := strings.TrimSpace(m.boundInput.Value())
		var discarded int
		if m.boundKind == "top" {
			discarded = m.sess.SetTopFloor(m.blockIndex, raw)
		} else {
			discarded = m.sess.SetFirstFloor(m.blockIndex, raw)
		}
		m.boundInputOpen = false
		m.clampCursor()
		if discarded > 0 {
			return m.setStatus(StatusWarn, discardNotice(discarded))
		}
		return m, nil
	case "esc":
		m.boundInputOpen = false
		return m, nil
	}
	var cmd tea.Cmd
	m.boundInput, cmd = m.boundInput.Update(msg)
	return m, cmd
}

func (m Model) updateTypePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	all := blocktype.All()
	switch msg.String() {
	case "up":
		if m.typeIndex > 0 {
			m.typeIndex--
		}
		return m, nil
	case "down":
		if m.typeIndex < len(all)-1 {
			m.typeIndex++
		}
		return m, nil
	case "enter":
		discarded := m.sess.SetBlockType(m.blockIndex, all[m.typeIndex].Value)
		m.typePickerOpen = false
		m.clampCursor()
		if discarded > 0 {
			return m.setStatus(StatusWarn, discardNotice(discarded))
		}
		return m, nil
	case "esc":
		m.typePickerOpen = false
		return m, nil
	}
	return m, nil
}

func (m Model) updateSchedule(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cables := m.sess.CableNumbers()

	switch msg.String() {
	case "esc":
		m.scheduleOpen = false
		m.blurScheduleInputs()
		return m, nil

	case "tab", "down":
		m.scheduleFocus = (m.scheduleFocus + 1) % 4
		m.focusScheduleInput()
		return m, nil

	case "shift+tab", "up":
		m.scheduleFocus = (m.scheduleFocus + 3) % 4
		m.focusScheduleInput()
		return m, nil

	case "left":
		if m.scheduleFocus == 0 && m.scheduleCable > 0 {
			m.scheduleCable--
			return m, nil
		}

	case "right":
		if m.scheduleFocus == 0 && m.scheduleCable < len(cables)-1 {
			m.scheduleCable++
			return m, nil
		}

	case "enter":
		if m.scheduleFocus < 3 {
			m.scheduleFocus++
			m.focusScheduleInput()
			return m, nil
		}
		return m.submitSchedule(cables)
	}

	if m.scheduleFocus > 0 {
		var cmd tea.Cmd
		idx := m.scheduleFocus - 1
		m.scheduleInputs[idx], cmd = m.scheduleInputs[idx].Update(msg)
		return m, cmd
	}
	return m, nil
}

// submitSchedule assembles the window for the selected cable. The
// gateway refuses invalid input locally, so a failed validation never
// reaches the network.
func (m Model) submitSchedule(cables []int) (tea.Model, tea.Cmd) {
	if m.scheduleCable < 0 || m.scheduleCable >= len(cables) {
		return m.setStatus(StatusWarn, "pick a cable first")
	}
	cable := cables[m.scheduleCable]
	s := api.Schedule{
		CableNumber: cable,
		Date:        strings.TrimSpace(m.scheduleInputs[0].Value()),
		From:        strings.TrimSpace(m.scheduleInputs[1].Value()),
		Till:        strings.TrimSpace(m.scheduleInputs[2].Value()),
		Flats:       m.sess.FlatsForCable(cable),
	}
	if err := api.ValidateSchedule(s); err != nil {
		return m.setStatus(StatusWarn, err.Error())
	}
	var cmd tea.Cmd
	m, cmd = m.setStatus(StatusLoading, "submitting schedule")
	return m, tea.Batch(cmd, m.submitScheduleCmd(s))
}

func (m *Model) focusScheduleInput() {
	m.blurScheduleInputs()
	if m.scheduleFocus > 0 {
		m.scheduleInputs[m.scheduleFocus-1].Focus()
	}
}

func (m *Model) blurScheduleInputs() {
	for i := range m.scheduleInputs {
		m.scheduleInputs[i].Blur()
	}
}

func (m Model) updateUsers(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.userFormOpen {
		return m.updateUserForm(msg)
	}

	switch msg.String() {
	case "esc":
		if m.usersCancel != nil {
			m.usersCancel()
			m.usersCancel = nil
		}
		m.screen = ScreenPlaces
		return m, nil

	case "n":
		m.userFormOpen = true
		m.userFocus = 0
		m.userFormErr = ""
		m.userInputs[0].Focus()
		return m, nil
	}
	return m, nil
}

func (m Model) updateUserForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.userFormOpen = false
		m.resetUserForm()
		return m, nil

	case "tab", "down":
		m.userFocus = (m.userFocus + 1) % 4
		m.focusUserInput()
		return m, nil

	case "shift+tab", "up":
		m.userFocus = (m.userFocus + 3) % 4
		m.focusUserInput()
		return m, nil

	case "left":
		if m.userFocus == 3 && m.userRoleIdx > 0 {
			m.userRoleIdx--
			return m, nil
		}

	case "right":
		if m.userFocus == 3 && m.userRoleIdx < len(m.roles)-1 {
			m.userRoleIdx++
			return m, nil
		}

	case "enter":
		if m.userFocus < 3 {
			m.userFocus++
			m.focusUserInput()
			return m, nil
		}
		return m.submitUser()
	}

	if m.userFocus < 3 {
		var cmd tea.Cmd
		m.userInputs[m.userFocus], cmd = m.userInputs[m.userFocus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) submitUser() (tea.Model, tea.Cmd) {
	req := api.CreateUserRequest{
		Name:     strings.TrimSpace(m.userInputs[0].Value()),
		Email:    strings.TrimSpace(m.userInputs[1].Value()),
		Password: m.userInputs[2].Value(),
	}
	if m.userRoleIdx >= 0 && m.userRoleIdx < len(m.roles) {
		req.Roles = []string{m.roles[m.userRoleIdx]}
	}
	if err := api.ValidateUser(req); err != nil {
		m.userFormErr = err.Error()
		return m, nil
	}
	m.userFormErr = ""
	var cmd tea.Cmd
	m, cmd = m.setStatus(StatusLoading, "creating user")
	return m, tea.Batch(cmd, m.createUserCmd(req))
}

func (m *Model) focusUserInput() {
	for i := range m.userInputs {
		m.userInputs[i].Blur()
	}
	if m.userFocus < 3 {
		m.userInputs[m.userFocus].Focus()
	}
}

func (m *Model) resetUserForm() {
	for i := range m.userInputs {
		m.userInputs[i].SetValue("")
		m.userInputs[i].Blur()
	}
	m.userRoleIdx = 0
	m.userFocus = 0
	m.userFormErr = ""
}

// expireToLogin drops the session and returns to the login form after
// the refresh interceptor gave up.
func (m Model) expireToLogin() (tea.Model, tea.Cmd) {
	m.backend.Logout()
	m.screen = ScreenLogin
	m.sess = nil
	m.saving = false
	m.scheduleOpen = false
	m.confirmOpen = false
	m.editing = false
	if m.usersCancel != nil {
		m.usersCancel()
		m.usersCancel = nil
	}
	m.loginPassword.SetValue("")
	m.loginErr = "session expired, sign in again"
	m.logger.Warn("session expired")
	return m, nil
}

// forwardToFocused routes non-key messages (cursor blinks) to whichever
// textinput is focused.
func (m Model) forwardToFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.screen == ScreenLogin && m.loginFocus == 0:
		m.loginEmail, cmd = m.loginEmail.Update(msg)
	case m.screen == ScreenLogin:
		m.loginPassword, cmd = m.loginPassword.Update(msg)
	case m.editing:
		m.fieldInput, cmd = m.fieldInput.Update(msg)
	case m.boundInputOpen:
		m.boundInput, cmd = m.boundInput.Update(msg)
	}
	return m, cmd
}

// resize recomputes the layout-dependent component sizes.
func (m *Model) resize() {
	l := ComputeLayout(m.width, m.height, m.logPanelOpen, m.screen == ScreenEditor)
	m.placeList.SetSize(m.width, l.ContentListHeight())

	if m.logPanelOpen {
		if !m.logReady {
			m.logViewport = viewport.New(l.Logs.Width, l.Logs.Height)
			m.logReady = true
		} else {
			m.logViewport.Width = l.Logs.Width
			m.logViewport.Height = l.Logs.Height
		}
		m.logViewport.SetContent(m.logContent())
		m.logViewport.GotoBottom()
	}
}

func (m *Model) clampCursor() {
	block := m.currentBlock()
	if block == nil || len(block.Floors) == 0 {
		m.floorIndex = 0
		return
	}
	if m.floorIndex >= len(block.Floors) {
		m.floorIndex = len(block.Floors) - 1
	}
}

// currentBlock returns a copy of the block under the cursor, nil when
// there is no session or the index is stale.
func (m Model) currentBlock() *layout.Block {
	if m.sess == nil {
		return nil
	}
	blocks := m.sess.Blocks()
	if m.blockIndex < 0 || m.blockIndex >= len(blocks) {
		return nil
	}
	b := blocks[m.blockIndex]
	return &b
}

func (m Model) currentTypeIndex() int {
	block := m.currentBlock()
	if block == nil {
		return 0
	}
	for i, d := range blocktype.All() {
		if d.Value == block.BlockType {
			return i
		}
	}
	return 0
}

// saveNav persists the place selection for the next start.
func (m Model) saveNav() {
	state := instance.NavState{ListIndex: m.placeList.Index()}
	if len(m.crumbs) > 0 {
		state.CityID = m.crumbs[0].ID
		state.CityName = m.crumbs[0].Name
	}
	if len(m.crumbs) > 1 {
		state.AreaID = m.crumbs[1].ID
		state.AreaName = m.crumbs[1].Name
	}
	if len(m.crumbs) > 2 {
		state.DistrictID = m.crumbs[2].ID
		state.DistrictName = m.crumbs[2].Name
	}
	_ = instance.SaveNavState(m.dataDir, state)
}

// setStatus installs a status bar message. Transient levels schedule
// their own expiry.
func (m Model) setStatus(level StatusLevel, message string) (Model, tea.Cmd) {
	m.statusLevel = level
	m.statusMessage = message
	m.statusSeq++
	if level == StatusInfo || level == StatusWarn {
		return m, clearStatusCmd(m.statusSeq)
	}
	return m, nil
}

func (m Model) clearStatus() (Model, tea.Cmd) {
	m.statusLevel = StatusNone
	m.statusMessage = ""
	return m, nil
}
