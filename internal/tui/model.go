package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fiberdesk/internal/api"
	"fiberdesk/internal/config"
	"fiberdesk/internal/instance"
	"fiberdesk/internal/layout"
	"fiberdesk/internal/logging"
	"fiberdesk/internal/session"
)

// LogSource provides scoped loggers plus the entry channel feeding
// the log panel. Both logging.Manager and logging.TestManager satisfy it.
type LogSource interface {
	logging.LoggerProvider
	Entries() <-chan logging.Entry
}

// Backend is the slice of the REST gateway the TUI uses. *api.Client
// satisfies it; tests substitute a fake.
type Backend interface {
	Login(ctx context.Context, email, password string) (api.Identity, error)
	Logout()
	Cities(ctx context.Context) ([]api.Place, error)
	Areas(ctx context.Context, cityID string) ([]api.Place, error)
	Districts(ctx context.Context, areaID string) ([]api.Place, error)
	Buildings(ctx context.Context, districtID string) ([]api.Building, error)
	GetBuilding(ctx context.Context, buildingID string) (api.Building, error)
	SaveLayout(ctx context.Context, buildingID string, blocks []layout.Block, isNew bool) error
	SubmitSchedule(ctx context.Context, buildingID string, s api.Schedule) error
	ListUsers(ctx context.Context) ([]api.User, error)
	ListRoles(ctx context.Context) ([]string, error)
	CreateUser(ctx context.Context, req api.CreateUserRequest) error
	SetBaseURL(baseURL string)
}

// Screen identifies which top-level view is active.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenPlaces
	ScreenEditor
	ScreenUsers
)

// NavLevel is the depth within the place navigation tree.
type NavLevel int

const (
	LevelCity NavLevel = iota
	LevelArea
	LevelDistrict
	LevelBuilding
)

// StatusLevel classifies the status bar message.
type StatusLevel int

const (
	StatusNone StatusLevel = iota
	StatusInfo
	StatusLoading
	StatusWarn
	StatusError
)

// Editor floor fields, in left-to-right column order.
var floorFields = []string{layout.FieldFlat, layout.FieldCableNumber, layout.FieldCableLength}

// Model represents the TUI application state.
type Model struct {
	width     int
	height    int
	themeName string
	styles    *Styles

	backend Backend
	logs    LogSource
	logger  *logging.ScopedLogger
	dataDir string

	screen   Screen
	identity api.Identity

	// Login form with its staged submission status.
	loginEmail    textinput.Model
	loginPassword textinput.Model
	loginFocus    int
	loggingIn     bool
	loginStage    string
	loginSeq      int
	loginErr      string

	// Place navigation. pendingIndex is a restored list selection to
	// apply once, -1 when none.
	navLevel     NavLevel
	placeList    list.Model
	crumbs       []api.Place
	buildings    []api.Building
	pendingIndex int

	// Layout editor.
	sess       *session.EditSession
	blockIndex int
	floorIndex int
	fieldIndex int
	editing    bool
	fieldInput textinput.Model
	saving     bool

	typePickerOpen bool
	typeIndex      int

	boundInputOpen bool
	boundKind      string // "top" or "first"
	boundInput     textinput.Model

	// Schedule form.
	scheduleOpen   bool
	scheduleCable  int // index into cable number list, -1 when none
	scheduleInputs [3]textinput.Model
	scheduleFocus  int

	// Users screen.
	users       []api.User
	roles       []string
	userColors  *session.ColorCache
	usersCancel context.CancelFunc

	userFormOpen bool
	userInputs   [3]textinput.Model
	userRoleIdx  int
	userFocus    int
	userFormErr  string

	// Leave-editor confirmation.
	confirmOpen bool
	confirmText string

	statusLevel   StatusLevel
	statusMessage string
	statusSeq     int
	statusSpinner spinner.Model

	logPanelOpen bool
	logEntries   []logging.Entry
	logViewport  viewport.Model
	logReady     bool

	lastCtrlCTime time.Time
}

// NewModel creates the TUI model.
func NewModel(cfg *config.Config, backend Backend, logs LogSource, dataDir string) Model {
	styles := NewStyles(cfg.Theme)

	email := textinput.New()
	email.Placeholder = "email"
	email.Focus()
	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword

	delegate := newPlaceDelegate(styles)
	placeList := list.New([]list.Item{}, delegate, 0, 0)
	placeList.SetShowTitle(false)
	placeList.SetShowStatusBar(false)
	placeList.SetFilteringEnabled(false)
	placeList.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(styles.flavor.Teal().Hex))

	m := Model{
		themeName:     cfg.Theme,
		styles:        styles,
		backend:       backend,
		logs:          logs,
		logger:        logs.For("tui"),
		dataDir:       dataDir,
		screen:        ScreenLogin,
		loginEmail:    email,
		loginPassword: password,
		placeList:     placeList,
		pendingIndex:  -1,
		scheduleCable: -1,
		statusSpinner: sp,
		userColors:    session.NewColorCache(10*time.Minute, styles.UserPalette(), nil),
	}
	m.initScheduleInputs()
	m.initUserInputs()
	return m
}

// Init starts the log pump.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.pumpLogs(), m.statusSpinner.Tick)
}

// ApplyConfig applies a hot-reloaded configuration: theme swap and
// backend base URL.
func (m *Model) ApplyConfig(cfg config.Config) {
	if cfg.Theme != m.themeName {
		m.themeName = cfg.Theme
		m.styles = NewStyles(cfg.Theme)
		m.placeList.SetDelegate(newPlaceDelegate(m.styles))
		m.userColors = session.NewColorCache(10*time.Minute, m.styles.UserPalette(), nil)
	}
	m.backend.SetBaseURL(cfg.APIBaseURL)
}

// Screen returns the active screen, for tests.
func (m Model) CurrentScreen() Screen { return m.screen }

// Session returns the active edit session, nil outside the editor.
func (m Model) Session() *session.EditSession { return m.sess }

// restoreNav rebuilds the place path from the persisted navigation
// state and returns the level to load. Without saved state the user
// starts at the city list.
func (m *Model) restoreNav() NavLevel {
	state := instance.LoadNavState(m.dataDir)
	m.crumbs = nil
	m.pendingIndex = -1
	if state.CityID == "" {
		return LevelCity
	}

	m.crumbs = append(m.crumbs, api.Place{ID: state.CityID, Name: state.CityName})
	m.pendingIndex = state.ListIndex
	if state.AreaID == "" {
		return LevelArea
	}
	m.crumbs = append(m.crumbs, api.Place{ID: state.AreaID, Name: state.AreaName})
	if state.DistrictID == "" {
		return LevelDistrict
	}
	m.crumbs = append(m.crumbs, api.Place{ID: state.DistrictID, Name: state.DistrictName})
	return LevelBuilding
}

func (m *Model) initScheduleInputs() {
	placeholders := []string{"date (2026-01-31)", "from (09:00)", "till (12:00)"}
	for i := range m.scheduleInputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		m.scheduleInputs[i] = in
	}
}

func (m *Model) initUserInputs() {
	placeholders := []string{"name", "email", "password"}
	for i := range m.userInputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		if placeholders[i] == "password" {
			in.EchoMode = textinput.EchoPassword
		}
		m.userInputs[i] = in
	}
}
