// Package tui is the terminal front end: a bubbletea program over the list
// controller, the session manager and the API client. All model updates run
// on the bubbletea event loop; network calls run as commands and report
// back through the message types in messages.go.
package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/flfe/adminctl/internal/client/api"
	"github.com/flfe/adminctl/internal/client/list"
	"github.com/flfe/adminctl/internal/client/models"
	"github.com/flfe/adminctl/internal/client/session"
	"github.com/flfe/adminctl/internal/common"
	"github.com/flfe/adminctl/internal/logging"
)

// View identifies which screen is active.
type View int

const (
	// ViewLanding is the anonymous start screen with the sign-in options.
	ViewLanding View = iota
	// ViewList is the paginated user table.
	ViewList
	// ViewDetail shows a single record.
	ViewDetail
	// ViewCreate is the new-user form.
	ViewCreate
	// ViewEdit is the edit form (admin only).
	ViewEdit
	// ViewConfirmDelete asks for the irreversible-delete acknowledgment.
	ViewConfirmDelete
	// ViewConfirmSave asks for the explicit confirmation before an update
	// is submitted.
	ViewConfirmSave
	// ViewStats is the admin dashboard.
	ViewStats
	// ViewLoggingIn waits for the browser OAuth flow to land.
	ViewLoggingIn
)

// FocusRegion identifies where keystrokes go within the list view.
type FocusRegion int

const (
	// FocusList means navigation keys move the row cursor.
	FocusList FocusRegion = iota
	// FocusSearch means keystrokes go to the search input.
	FocusSearch
)

// adminRequiredNotice is shown both for the client-side pre-check and for a
// backend 403: the operator sees the same denial either way.
const adminRequiredNotice = "Access denied: admin privileges required"

// Params wires the model's collaborators. The session provider is passed
// in explicitly so tests can substitute a manager over a fake store.
type Params struct {
	API        api.Client
	Sessions   *session.Manager
	Controller *list.Controller
	Log        logging.Logger

	BackendURL         string
	CallbackListenAddr string
	DebounceInterval   time.Duration
}

// Model is the bubbletea model for the whole program.
type Model struct {
	api        api.Client
	sessions   *session.Manager
	controller *list.Controller
	log        logging.Logger

	backendURL string
	listenAddr string
	debounce   time.Duration

	view  View
	focus FocusRegion
	keys  keyMap
	st    styles

	searchInput textinput.Model
	cursor      int

	detail       models.UserRecord
	createForm   form
	editForm     form
	editTarget   models.UserRecord
	deleteTarget models.UserRecord
	stats        models.Stats

	notice string
	errMsg string

	width  int
	height int
}

func New(p Params) Model {
	if p.DebounceInterval <= 0 {
		p.DebounceInterval = 500 * time.Millisecond
	}

	searchInput := textinput.New()
	searchInput.Placeholder = "search users..."
	searchInput.CharLimit = 64
	searchInput.Width = 30

	return Model{
		api:         p.API,
		sessions:    p.Sessions,
		controller:  p.Controller,
		log:         p.Log.With("component", "tui"),
		backendURL:  p.BackendURL,
		listenAddr:  p.CallbackListenAddr,
		debounce:    p.DebounceInterval,
		view:        ViewLanding,
		keys:        defaultKeyMap(),
		st:          newStyles(DefaultTheme),
		searchInput: searchInput,
	}
}

// Init implements tea.Model. A session restored from the credential store
// goes straight to the list; otherwise the anonymous landing screen shows.
func (m Model) Init() tea.Cmd {
	if _, ok := m.sessions.Current(); ok {
		return func() tea.Msg { return sessionReadyMsg{} }
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(message)

	case debounceFiredMsg:
		request, ok := m.controller.DebounceFired(message.generation)
		if !ok {
			// A newer keystroke superseded this timer.
			return m, nil
		}
		return m, m.loadCmd(request)

	case listResultMsg:
		return m.handleListResult(message)

	case userLoadedMsg:
		return m.handleUserLoaded(message)

	case userCreatedMsg:
		if message.err != nil {
			m.errMsg = humane(message.err)
			return m, nil
		}
		m.notice = fmt.Sprintf("User created: %s (ID: %d)", message.user.Name, message.user.ID)
		return m.enterList()

	case userUpdatedMsg:
		if message.err != nil {
			if errors.Is(message.err, common.ErrAdminRequired) {
				// The local admin flag was stale; the backend is the
				// authoritative enforcer.
				m.errMsg = adminRequiredNotice
			} else {
				m.errMsg = humane(message.err)
			}
			m.view = ViewEdit
			return m, nil
		}
		m.notice = fmt.Sprintf("User %d updated", message.user.ID)
		return m.enterList()

	case userDeletedMsg:
		if message.err != nil {
			if errors.Is(message.err, common.ErrAdminRequired) {
				m.errMsg = adminRequiredNotice
			} else {
				m.errMsg = humane(message.err)
			}
			m.view = ViewList
			return m, nil
		}
		m.notice = fmt.Sprintf("User %d deleted", message.id)
		m.view = ViewList
		return m, m.loadCmd(m.controller.Reload())

	case statsLoadedMsg:
		if message.err != nil {
			m.errMsg = humane(message.err)
			m.view = ViewList
			return m, nil
		}
		m.stats = message.stats
		m.view = ViewStats
		return m, nil

	case loginResultMsg:
		if message.err != nil {
			if errors.Is(message.err, common.ErrLoginAborted) {
				m.errMsg = "Sign-in was cancelled"
			} else {
				m.errMsg = humane(message.err)
			}
			m.view = ViewLanding
			return m, nil
		}
		// Establish the session before navigating anywhere: the list
		// view reads it as soon as it loads.
		return m, m.establishSessionCmd(message.token)

	case signedOutMsg:
		if message.err != nil {
			m.errMsg = humane(message.err)
		}
		return m, nil

	case sessionReadyMsg:
		if message.err != nil {
			m.errMsg = humane(message.err)
			m.view = ViewLanding
			return m, nil
		}
		sess, _ := m.sessions.Current()
		m.notice = "Signed in as " + sess.SubjectID
		return m.enterList()
	}

	return m, nil
}

// enterList resets list state and issues the initial load.
func (m Model) enterList() (Model, tea.Cmd) {
	m.view = ViewList
	m.focus = FocusList
	m.cursor = 0
	m.searchInput.SetValue("")
	m.searchInput.Blur()
	m.controller.Reset()
	return m, m.loadCmd(m.controller.Reload())
}

// handleListResult reconciles a finished fetch. Stale results are dropped.
// An authorization denial on a list load means the stored session is likely
// stale or revoked, so the whole session drops back to anonymous.
func (m Model) handleListResult(message listResultMsg) (Model, tea.Cmd) {
	stale, err := m.controller.Apply(message.result)
	if stale {
		return m, nil
	}
	if err != nil {
		if errors.Is(err, common.ErrAdminRequired) || errors.Is(err, common.ErrUnauthorized) {
			m.errMsg = "Session expired, signed out"
			m.view = ViewLanding
			return m, m.signOutCmd()
		}
		m.errMsg = humane(err)
		return m, nil
	}

	m.errMsg = ""
	if max := len(m.controller.Items()) - 1; m.cursor > max {
		if max < 0 {
			max = 0
		}
		m.cursor = max
	}
	return m, nil
}

func (m Model) handleUserLoaded(message userLoadedMsg) (Model, tea.Cmd) {
	if message.err != nil {
		if message.forEdit && errors.Is(message.err, common.ErrAdminRequired) {
			m.errMsg = adminRequiredNotice
		} else {
			m.errMsg = humane(message.err)
		}
		m.view = ViewList
		return m, nil
	}

	if message.forEdit {
		m.editTarget = message.user
		m.editForm = newEditForm(message.user)
		m.view = ViewEdit
		return m, textinput.Blink
	}
	m.detail = message.user
	m.view = ViewDetail
	return m, nil
}

func (m Model) handleKey(message tea.KeyMsg) (Model, tea.Cmd) {
	// Global quit, except while a form owns the keyboard.
	if m.view != ViewCreate && m.view != ViewEdit && m.focus != FocusSearch {
		if key.Matches(message, m.keys.Quit) {
			return m, tea.Quit
		}
	}
	if message.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.view {
	case ViewLanding:
		return m.handleLandingKeys(message)
	case ViewList:
		if m.focus == FocusSearch {
			return m.handleSearchKeys(message)
		}
		return m.handleListKeys(message)
	case ViewDetail:
		return m.handleDetailKeys(message)
	case ViewCreate, ViewEdit:
		return m.handleFormKeys(message)
	case ViewConfirmDelete:
		return m.handleConfirmDeleteKeys(message)
	case ViewConfirmSave:
		return m.handleConfirmSaveKeys(message)
	case ViewStats:
		if key.Matches(message, m.keys.Back) {
			m.view = ViewList
		}
		return m, nil
	case ViewLoggingIn:
		// Waiting on the browser; nothing to do but quit.
		return m, nil
	}
	return m, nil
}

func (m Model) handleLandingKeys(message tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(message, m.keys.Login):
		m.view = ViewLoggingIn
		m.errMsg = ""
		return m, m.loginCmd(false)
	case key.Matches(message, m.keys.LoginAdm):
		m.view = ViewLoggingIn
		m.errMsg = ""
		return m, m.loginCmd(true)
	}
	return m, nil
}

func (m Model) handleListKeys(message tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(message, m.keys.Search):
		m.focus = FocusSearch
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(message, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(message, m.keys.Down):
		if m.cursor < len(m.controller.Items())-1 {
			m.cursor++
		}

	case key.Matches(message, m.keys.PrevPage):
		if request, ok := m.controller.PrevPage(); ok {
			m.cursor = 0
			return m, m.loadCmd(request)
		}

	case key.Matches(message, m.keys.NextPage):
		if request, ok := m.controller.NextPage(); ok {
			m.cursor = 0
			return m, m.loadCmd(request)
		}

	case key.Matches(message, m.keys.CycleSort):
		return m, m.loadCmd(m.controller.CycleSort())

	case key.Matches(message, m.keys.Refresh):
		return m, m.loadCmd(m.controller.Reload())

	case key.Matches(message, m.keys.Open):
		if user, ok := m.selectedUser(); ok {
			return m, m.getUserCmd(user.ID, false)
		}

	case key.Matches(message, m.keys.Create):
		m.createForm = newCreateForm()
		m.errMsg = ""
		m.view = ViewCreate
		return m, textinput.Blink

	case key.Matches(message, m.keys.Edit):
		if user, ok := m.selectedUser(); ok {
			// UX gate only; the backend re-checks on submit.
			if !m.sessions.IsAdmin() {
				m.errMsg = adminRequiredNotice
				return m, nil
			}
			m.errMsg = ""
			return m, m.getUserCmd(user.ID, true)
		}

	case key.Matches(message, m.keys.Delete):
		if user, ok := m.selectedUser(); ok {
			// Pre-check gives an immediate denial without a round trip.
			// The backend still enforces on its side.
			if !m.sessions.IsAdmin() {
				m.errMsg = adminRequiredNotice
				return m, nil
			}
			m.deleteTarget = user
			m.view = ViewConfirmDelete
		}

	case key.Matches(message, m.keys.Stats):
		return m, m.statsCmd()

	case key.Matches(message, m.keys.Logout):
		m.view = ViewLanding
		m.notice = "Signed out"
		return m, m.signOutCmd()
	}
	return m, nil
}

func (m Model) handleSearchKeys(message tea.KeyMsg) (Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEscape:
		m.focus = FocusList
		m.searchInput.Blur()
		return m, nil
	case tea.KeyEnter:
		// Commit immediately instead of waiting out the quiet period.
		generation := m.controller.SetQuery(m.searchInput.Value())
		m.focus = FocusList
		m.searchInput.Blur()
		return m, func() tea.Msg { return debounceFiredMsg{generation: generation} }
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(message)

	// Every input change restarts the quiet period; earlier timers keep
	// running but their generations are stale by the time they fire.
	generation := m.controller.SetQuery(m.searchInput.Value())
	return m, tea.Batch(cmd, tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return debounceFiredMsg{generation: generation}
	}))
}

func (m Model) handleDetailKeys(message tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(message, m.keys.Back):
		m.view = ViewList
	case key.Matches(message, m.keys.Edit):
		if !m.sessions.IsAdmin() {
			m.errMsg = adminRequiredNotice
			return m, nil
		}
		return m, m.getUserCmd(m.detail.ID, true)
	case key.Matches(message, m.keys.Delete):
		if !m.sessions.IsAdmin() {
			m.errMsg = adminRequiredNotice
			return m, nil
		}
		m.deleteTarget = m.detail
		m.view = ViewConfirmDelete
	}
	return m, nil
}

func (m Model) handleFormKeys(message tea.KeyMsg) (Model, tea.Cmd) {
	activeForm := &m.createForm
	if m.view == ViewEdit {
		activeForm = &m.editForm
	}

	switch message.Type {
	case tea.KeyEscape:
		m.view = ViewList
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		activeForm.nextField()
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		activeForm.prevField()
		return m, nil
	case tea.KeyEnter:
		if !activeForm.onLastField() {
			activeForm.nextField()
			return m, nil
		}
		return m.submitForm()
	}

	return m, activeForm.update(message)
}

// submitForm validates and submits the active form. Create goes straight
// out; edit first asks for confirmation.
func (m Model) submitForm() (Model, tea.Cmd) {
	if m.view == ViewCreate {
		name := m.createForm.value(fieldName)
		email := m.createForm.value(fieldEmail)
		password := m.createForm.value(fieldPassword)
		if name == "" || email == "" || password == "" {
			m.errMsg = "All fields are required"
			return m, nil
		}
		m.errMsg = ""
		return m, m.createCmd(models.CreateUserRequest{Name: name, Email: email, Password: password})
	}

	if m.editForm.value(fieldName) == "" || m.editForm.value(fieldEmail) == "" {
		m.errMsg = "Name and email are required"
		return m, nil
	}
	m.errMsg = ""
	m.view = ViewConfirmSave
	return m, nil
}

func (m Model) handleConfirmDeleteKeys(message tea.KeyMsg) (Model, tea.Cmd) {
	switch message.String() {
	case "y", "enter":
		return m, m.deleteCmd(m.deleteTarget.ID)
	case "n", "esc":
		m.view = ViewList
	}
	return m, nil
}

func (m Model) handleConfirmSaveKeys(message tea.KeyMsg) (Model, tea.Cmd) {
	switch message.String() {
	case "y", "enter":
		request := models.UpdateUserRequest{
			Name:     m.editForm.value(fieldName),
			Email:    m.editForm.value(fieldEmail),
			Password: m.editForm.value(fieldPassword),
		}
		return m, m.updateCmd(m.editTarget.ID, request, m.editForm.value(fieldPicture))
	case "n", "esc":
		m.view = ViewEdit
	}
	return m, nil
}

func (m Model) selectedUser() (models.UserRecord, bool) {
	items := m.controller.Items()
	if m.cursor < 0 || m.cursor >= len(items) {
		return models.UserRecord{}, false
	}
	return items[m.cursor], true
}

// humane strips wrapping noise from an error for the status bar.
func humane(err error) string {
	switch {
	case errors.Is(err, common.ErrUnavailable):
		return "Server unavailable, try again"
	case errors.Is(err, common.ErrAdminRequired):
		return adminRequiredNotice
	case errors.Is(err, common.ErrUnauthorized):
		return "Not signed in"
	case errors.Is(err, common.ErrNotFound):
		return "Not found"
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
