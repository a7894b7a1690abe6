// pattern: Imperative Shell

package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"fiberdesk/internal/api"
	"fiberdesk/internal/config"
	"fiberdesk/internal/logging"
)

// Messages delivered to Update. Backend calls run as commands and
// report back with exactly one of these.
type (
	// ConfigChangedMsg is sent from outside the program when the config
	// file changes on disk.
	ConfigChangedMsg struct {
		Config config.Config
	}

	logEntryMsg  logging.Entry
	logClosedMsg struct{}

	loginStageMsg struct {
		stage string
		seq   int
	}
	loginDoneMsg struct {
		identity api.Identity
		err      error
	}

	placesLoadedMsg struct {
		level  NavLevel
		places []api.Place
		err    error
	}
	buildingsLoadedMsg struct {
		buildings []api.Building
		err       error
	}
	buildingLoadedMsg struct {
		building api.Building
		err      error
	}

	layoutSavedMsg struct {
		err error
	}
	scheduleSubmittedMsg struct {
		err error
	}

	usersLoadedMsg struct {
		users []api.User
		roles []string
		err   error
	}
	userCreatedMsg struct {
		err error
	}

	clearStatusMsg struct {
		seq int
	}
)

const backendTimeout = 15 * time.Second

// pumpLogs reads one entry from the log channel. Update re-arms it
// after every logEntryMsg.
func (m Model) pumpLogs() tea.Cmd {
	ch := m.logs.Entries()
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return logClosedMsg{}
		}
		return logEntryMsg(entry)
	}
}

// loginCmd performs the credential exchange.
func (m Model) loginCmd(email, password string) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
		defer cancel()
		identity, err := backend.Login(ctx, email, password)
		return loginDoneMsg{identity: identity, err: err}
	}
}

// loginStageCmd advances the login status line while the exchange is
// in flight. Stale sequence numbers are dropped in Update.
func loginStageCmd(stage string, seq int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return loginStageMsg{stage: stage, seq: seq}
	})
}

func (m Model) loadPlacesCmd(level NavLevel) tea.Cmd {
	backend := m.backend
	crumbs := m.crumbs
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
		defer cancel()

		var (
			places []api.Place
			err    error
		)
		switch level {
		case LevelCity:
			places, err = backend.Cities(ctx)
		case LevelArea:
			places, err = backend.Areas(ctx, crumbs[0].ID)
		case LevelDistrict:
			places, err = backend.Districts(ctx, crumbs[1].ID)
		case LevelBuilding:
			buildings, berr := backend.Buildings(ctx, crumbs[2].ID)
			return buildingsLoadedMsg{buildings: buildings, err: berr}
		}
		return placesLoadedMsg{level: level, places: places, err: err}
	}
}

func (m Model) loadBuildingCmd(buildingID string) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
		defer cancel()
		building, err := backend.GetBuilding(ctx, buildingID)
		return buildingLoadedMsg{building: building, err: err}
	}
}

func (m Model) saveLayoutCmd() tea.Cmd {
	backend := m.backend
	buildingID := m.sess.Building().ID
	blocks := m.sess.Blocks()
	isNew := m.sess.IsNew()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
		defer cancel()
		return layoutSavedMsg{err: backend.SaveLayout(ctx, buildingID, blocks, isNew)}
	}
}

func (m Model) submitScheduleCmd(s api.Schedule) tea.Cmd {
	backend := m.backend
	buildingID := m.sess.Building().ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
		defer cancel()
		return scheduleSubmittedMsg{err: backend.SubmitSchedule(ctx, buildingID, s)}
	}
}

// loadUsersCmd fetches users and roles under a cancellable context so
// leaving the screen aborts an in-flight fetch.
func (m Model) loadUsersCmd(ctx context.Context) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		users, err := backend.ListUsers(ctx)
		if err != nil {
			return usersLoadedMsg{err: err}
		}
		roles, err := backend.ListRoles(ctx)
		return usersLoadedMsg{users: users, roles: roles, err: err}
	}
}

func (m Model) createUserCmd(req api.CreateUserRequest) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
		defer cancel()
		return userCreatedMsg{err: backend.CreateUser(ctx, req)}
	}
}

// clearStatusCmd clears a transient status message after a delay.
func clearStatusCmd(seq int) tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
