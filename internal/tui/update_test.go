// pattern: Imperative Shell

package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"fiberdesk/internal/api"
	"fiberdesk/internal/config"
	"fiberdesk/internal/instance"
	"fiberdesk/internal/layout"
	"fiberdesk/internal/logging"
)

// fakeBackend records calls and serves canned data.
type fakeBackend struct {
	identity api.Identity
	loginErr error

	cities    []api.Place
	buildings []api.Building
	building  api.Building

	saveCalls     int
	scheduleCalls int
	schedules     []api.Schedule
}

func (f *fakeBackend) Login(_ context.Context, _, _ string) (api.Identity, error) {
	return f.identity, f.loginErr
}
func (f *fakeBackend) Logout() {}
func (f *fakeBackend) Cities(context.Context) ([]api.Place, error) {
	return f.cities, nil
}
func (f *fakeBackend) Areas(context.Context, string) ([]api.Place, error) {
	return nil, nil
}
func (f *fakeBackend) Districts(context.Context, string) ([]api.Place, error) {
	return nil, nil
}
func (f *fakeBackend) Buildings(context.Context, string) ([]api.Building, error) {
	return f.buildings, nil
}
func (f *fakeBackend) GetBuilding(context.Context, string) (api.Building, error) {
	return f.building, nil
}
func (f *fakeBackend) SaveLayout(context.Context, string, []layout.Block, bool) error {
	f.saveCalls++
	return nil
}
func (f *fakeBackend) SubmitSchedule(_ context.Context, _ string, s api.Schedule) error {
	f.scheduleCalls++
	f.schedules = append(f.schedules, s)
	return nil
}
func (f *fakeBackend) ListUsers(context.Context) ([]api.User, error) {
	return nil, nil
}
func (f *fakeBackend) ListRoles(context.Context) ([]string, error) {
	return []string{"user", "admin"}, nil
}
func (f *fakeBackend) CreateUser(context.Context, api.CreateUserRequest) error {
	return nil
}
func (f *fakeBackend) SetBaseURL(string) {}

func newTestModel(t *testing.T, backend *fakeBackend) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	logs := logging.NewTestManager(64)
	t.Cleanup(func() { _ = logs.Close() })
	m := NewModel(&cfg, backend, logs, t.TempDir())
	m.width = 120
	m.height = 40
	return m
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	out, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T", updated)
	}
	return out
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// editorModel puts the model straight into the editor on a building
// with a persisted two-floor layout.
func editorModel(t *testing.T, backend *fakeBackend) Model {
	t.Helper()
	building := api.Building{
		ID:    "b1",
		Adres: "Dorpsstraat 1",
		Flats: []api.Flat{
			{ID: "f1", Adres: "Dorpsstraat", HuisNummer: "1"},
			{ID: "f2", Adres: "Dorpsstraat", HuisNummer: "3"},
		},
		Layout: &api.BuildingLayout{Blocks: []layout.Block{
			{
				FirstFloor: 0,
				TopFloor:   layout.IntPtr(1),
				BlockType:  "leftWing",
				Floors: []layout.Floor{
					{Floor: 0, Flat: "f1", CableNumber: layout.IntPtr(2)},
					{Floor: 1, Flat: "f2", CableNumber: layout.IntPtr(1)},
				},
			},
		}},
	}
	backend.building = building

	m := newTestModel(t, backend)
	m.crumbs = []api.Place{{ID: "c1"}, {ID: "a1"}, {ID: "d1"}}
	return step(t, m, buildingLoadedMsg{building: building})
}

func TestUpdate_LoginSuccessLoadsCities(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})

	m = step(t, m, loginDoneMsg{identity: api.Identity{Name: "piet", Roles: []string{"admin"}}})

	if m.CurrentScreen() != ScreenPlaces {
		t.Errorf("expected places screen, got %v", m.CurrentScreen())
	}
	if m.navLevel != LevelCity {
		t.Errorf("expected city level, got %v", m.navLevel)
	}
}

func TestUpdate_LoginFailureStaysOnLogin(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})

	m = step(t, m, loginDoneMsg{err: &api.Error{Status: 401, Message: "invalid credentials"}})

	if m.CurrentScreen() != ScreenLogin {
		t.Errorf("expected login screen, got %v", m.CurrentScreen())
	}
	if m.loginErr == "" {
		t.Error("expected a visible login error")
	}
}

func TestUpdate_StaleLoginStageIgnored(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})
	m.loggingIn = true
	m.loginSeq = 2
	m.loginStage = "checking credentials"

	m = step(t, m, loginStageMsg{stage: "fetching profile", seq: 1})

	if m.loginStage != "checking credentials" {
		t.Errorf("stale stage applied: %q", m.loginStage)
	}
}

func TestUpdate_SessionExpiredReturnsToLogin(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})
	m.screen = ScreenPlaces

	m = step(t, m, placesLoadedMsg{level: LevelCity, err: api.ErrSessionExpired})

	if m.CurrentScreen() != ScreenLogin {
		t.Errorf("expected login screen, got %v", m.CurrentScreen())
	}
	if m.loginErr == "" {
		t.Error("expected the expiry to be explained")
	}
}

func TestUpdate_ExpiryDropsToLoginFromEveryBackendPath(t *testing.T) {
	cases := []struct {
		name string
		msg  tea.Msg
	}{
		{"save layout", layoutSavedMsg{err: api.ErrSessionExpired}},
		{"submit schedule", scheduleSubmittedMsg{err: api.ErrSessionExpired}},
		{"load building", buildingLoadedMsg{err: api.ErrSessionExpired}},
		{"load buildings", buildingsLoadedMsg{err: api.ErrSessionExpired}},
		{"load users", usersLoadedMsg{err: api.ErrSessionExpired}},
		{"create user", userCreatedMsg{err: api.ErrSessionExpired}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := editorModel(t, &fakeBackend{})

			m = step(t, m, tc.msg)

			if m.CurrentScreen() != ScreenLogin {
				t.Errorf("expected login screen, got %v", m.CurrentScreen())
			}
			if m.Session() != nil {
				t.Error("expected the edit session to be dropped")
			}
			if m.loginErr == "" {
				t.Error("expected the expiry to be explained")
			}
		})
	}
}

func TestUpdate_LoginResumesSavedPlacePath(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})
	saved := instance.NavState{
		CityID: "c1", CityName: "Utrecht",
		AreaID: "a2", AreaName: "Noord",
		ListIndex: 1,
	}
	if err := instance.SaveNavState(m.dataDir, saved); err != nil {
		t.Fatal(err)
	}

	m = step(t, m, loginDoneMsg{identity: api.Identity{Name: "piet"}})

	if m.navLevel != LevelDistrict {
		t.Fatalf("expected the district level to load, got %v", m.navLevel)
	}
	if len(m.crumbs) != 2 || m.crumbs[0].Name != "Utrecht" || m.crumbs[1].Name != "Noord" {
		t.Errorf("expected the saved breadcrumb, got %+v", m.crumbs)
	}

	places := []api.Place{{ID: "d1", Name: "Oost"}, {ID: "d2", Name: "West"}}
	m = step(t, m, placesLoadedMsg{level: LevelDistrict, places: places})

	if m.placeList.Index() != 1 {
		t.Errorf("expected the saved selection restored, got index %d", m.placeList.Index())
	}

	// The restored index applies once; later loads start at the top.
	m = step(t, m, placesLoadedMsg{level: LevelDistrict, places: places})
	if m.placeList.Index() != 0 {
		t.Errorf("expected a fresh selection on the next load, got %d", m.placeList.Index())
	}
}

func TestUpdate_StaleRestoredIndexIgnored(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})
	saved := instance.NavState{CityID: "c1", CityName: "Utrecht", ListIndex: 9}
	if err := instance.SaveNavState(m.dataDir, saved); err != nil {
		t.Fatal(err)
	}

	m = step(t, m, loginDoneMsg{identity: api.Identity{Name: "piet"}})
	m = step(t, m, placesLoadedMsg{level: LevelArea, places: []api.Place{{ID: "a1", Name: "Zuid"}}})

	if m.placeList.Index() != 0 {
		t.Errorf("expected the selection to fall back to the top, got %d", m.placeList.Index())
	}
}

func TestUpdate_BuildingLoadedOpensEditor(t *testing.T) {
	m := editorModel(t, &fakeBackend{})

	if m.CurrentScreen() != ScreenEditor {
		t.Fatalf("expected editor screen, got %v", m.CurrentScreen())
	}
	if m.Session() == nil {
		t.Fatal("expected an edit session")
	}
	if m.Session().IsNew() {
		t.Error("building with a persisted layout must save as update")
	}
}

func TestUpdate_RemoveLastBlockRefused(t *testing.T) {
	m := editorModel(t, &fakeBackend{})

	m = step(t, m, keyMsg("d"))

	if got := len(m.Session().Blocks()); got != 1 {
		t.Errorf("expected the block to survive, got %d blocks", got)
	}
	if m.statusLevel != StatusWarn {
		t.Errorf("expected a warning, got level %v", m.statusLevel)
	}
}

func TestUpdate_AddBlockFocusesNewBlock(t *testing.T) {
	m := editorModel(t, &fakeBackend{})

	m = step(t, m, keyMsg("a"))

	if got := len(m.Session().Blocks()); got != 2 {
		t.Fatalf("expected 2 blocks, got %d", got)
	}
	if m.blockIndex != 1 {
		t.Errorf("expected focus on the new block, got %d", m.blockIndex)
	}
}

func TestUpdate_SaveMarksSessionClean(t *testing.T) {
	m := editorModel(t, &fakeBackend{})
	m.Session().AddBlock()
	if !m.Session().Dirty() {
		t.Fatal("setup: session should be dirty")
	}

	m = step(t, m, layoutSavedMsg{})

	if m.Session().Dirty() {
		t.Error("expected a clean session after save")
	}
	if m.Session().IsNew() {
		t.Error("expected subsequent saves to be updates")
	}
}

func TestUpdate_DirtyEscAsksForConfirmation(t *testing.T) {
	m := editorModel(t, &fakeBackend{})
	m.Session().AddBlock()

	m = step(t, m, keyMsg("esc"))

	if !m.confirmOpen {
		t.Fatal("expected the leave confirmation")
	}
	if m.CurrentScreen() != ScreenEditor {
		t.Error("must stay in the editor until confirmed")
	}

	m = step(t, m, keyMsg("n"))
	if m.confirmOpen || m.CurrentScreen() != ScreenEditor {
		t.Error("n must dismiss the dialog and stay")
	}
}

func TestUpdate_CleanEscLeavesEditor(t *testing.T) {
	m := editorModel(t, &fakeBackend{})

	m = step(t, m, keyMsg("esc"))

	if m.CurrentScreen() != ScreenPlaces {
		t.Errorf("expected places screen, got %v", m.CurrentScreen())
	}
	if m.Session() != nil {
		t.Error("expected the session to be dropped")
	}
}

func TestUpdate_TypeChangeWarnsAboutDiscards(t *testing.T) {
	m := editorModel(t, &fakeBackend{})

	m = step(t, m, keyMsg("y"))
	if !m.typePickerOpen {
		t.Fatal("expected the type picker")
	}
	m = step(t, m, keyMsg("down"))
	m = step(t, m, keyMsg("enter"))

	if m.typePickerOpen {
		t.Error("expected the picker to close")
	}
	if m.statusLevel != StatusWarn {
		t.Errorf("expected a discard warning, got level %v", m.statusLevel)
	}
	for _, f := range m.Session().Blocks()[0].Floors {
		if f.Flat != "" || f.CableNumber != nil {
			t.Errorf("expected regenerated floors to be empty, got %+v", f)
		}
	}
}

func TestUpdate_ScheduleSubmitKeepsCableClearsWindow(t *testing.T) {
	backend := &fakeBackend{}
	m := editorModel(t, backend)

	m = step(t, m, keyMsg("s"))
	if !m.scheduleOpen {
		t.Fatal("expected the schedule form")
	}
	if m.scheduleCable != 0 {
		t.Fatalf("expected the first cable preselected, got %d", m.scheduleCable)
	}
	m.scheduleInputs[0].SetValue("2026-09-01")
	m.scheduleInputs[1].SetValue("09:00")
	m.scheduleInputs[2].SetValue("12:00")
	m.scheduleFocus = 3

	m = step(t, m, keyMsg("enter"))
	m = step(t, m, scheduleSubmittedMsg{})

	if m.scheduleCable != 0 {
		t.Errorf("cable selection must survive a submit, got %d", m.scheduleCable)
	}
	for i := range m.scheduleInputs {
		if m.scheduleInputs[i].Value() != "" {
			t.Errorf("input %d not cleared: %q", i, m.scheduleInputs[i].Value())
		}
	}
}

func TestUpdate_ScheduleInvalidNeverReachesBackend(t *testing.T) {
	backend := &fakeBackend{}
	m := editorModel(t, backend)

	m = step(t, m, keyMsg("s"))
	m.scheduleFocus = 3
	m = step(t, m, keyMsg("enter")) // date, from, till all empty

	if backend.scheduleCalls != 0 {
		t.Errorf("invalid schedule must not hit the backend, got %d calls", backend.scheduleCalls)
	}
	if m.statusLevel != StatusWarn {
		t.Errorf("expected a validation warning, got level %v", m.statusLevel)
	}
}

func TestUpdate_FlatEditRejectsForeignFlat(t *testing.T) {
	m := editorModel(t, &fakeBackend{})

	m = step(t, m, keyMsg("enter"))
	if !m.editing {
		t.Fatal("expected field editing")
	}
	m.fieldInput.SetValue("not-in-building")
	m = step(t, m, keyMsg("enter"))

	if !m.editing {
		t.Error("expected the edit to stay open on rejection")
	}
	if got := m.Session().Blocks()[0].Floors[0].Flat; got != "f1" {
		t.Errorf("floor must keep its flat, got %q", got)
	}
}

func TestUpdate_UsersScreenNeedsAdmin(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})
	m.screen = ScreenPlaces
	m.identity = api.Identity{Name: "jan", Roles: []string{"user"}}

	m = step(t, m, keyMsg("u"))

	if m.CurrentScreen() != ScreenPlaces {
		t.Errorf("non-admin must stay on places, got %v", m.CurrentScreen())
	}
	if m.statusLevel != StatusWarn {
		t.Errorf("expected a warning, got level %v", m.statusLevel)
	}
}

func TestUpdate_ConfigReloadSwapsTheme(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})
	cfg := config.DefaultConfig()
	cfg.Theme = "latte"

	m = step(t, m, ConfigChangedMsg{Config: cfg})

	if m.themeName != "latte" {
		t.Errorf("expected latte, got %q", m.themeName)
	}
}

func TestUpdate_LogBufferBounded(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})
	for i := 0; i < maxLogEntries+50; i++ {
		m = step(t, m, logEntryMsg(logging.Entry{Message: "x"}))
	}

	if got := len(m.logEntries); got != maxLogEntries {
		t.Errorf("expected %d entries, got %d", maxLogEntries, got)
	}
}

func TestView_EditorShowsBlockAndCables(t *testing.T) {
	m := editorModel(t, &fakeBackend{})

	out := m.View()

	if !strings.Contains(out, "block 1") {
		t.Error("expected the block tab in the view")
	}
	if !strings.Contains(out, "cables: 1, 2") {
		t.Error("expected the distinct sorted cable list in the view")
	}
}

func TestView_LoginSmoke(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})

	if out := m.View(); !strings.Contains(out, "sign in") {
		t.Error("expected the login prompt")
	}
}
