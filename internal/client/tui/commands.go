package tui

import (
	"context"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/flfe/adminctl/internal/client/list"
	"github.com/flfe/adminctl/internal/client/models"
	"github.com/flfe/adminctl/internal/client/oauth"
)

// loginWait bounds how long the program waits for the browser redirect.
const loginWait = 3 * time.Minute

// loadCmd runs one list fetch in the background. The controller snapshot in
// req is immutable, so the goroutine never touches shared state.
func (m Model) loadCmd(req list.Request) tea.Cmd {
	controller := m.controller
	return func() tea.Msg {
		return listResultMsg{result: controller.Do(context.Background(), req)}
	}
}

func (m Model) getUserCmd(id int64, forEdit bool) tea.Cmd {
	client := m.api
	return func() tea.Msg {
		user, err := client.GetUser(context.Background(), id)
		return userLoadedMsg{user: user, err: err, forEdit: forEdit}
	}
}

func (m Model) createCmd(req models.CreateUserRequest) tea.Cmd {
	client := m.api
	return func() tea.Msg {
		user, err := client.CreateUser(context.Background(), req)
		return userCreatedMsg{user: user, err: err}
	}
}

// updateCmd submits an edit. When picturePath is set the file is uploaded
// first and the returned URL goes out with the same update, so the record
// changes in one request.
func (m Model) updateCmd(id int64, req models.UpdateUserRequest, picturePath string) tea.Cmd {
	client := m.api
	return func() tea.Msg {
		ctx := context.Background()

		if picturePath != "" {
			f, err := os.Open(picturePath)
			if err != nil {
				return userUpdatedMsg{err: err}
			}
			url, err := client.UploadFile(ctx, filepath.Base(picturePath), f)
			f.Close()
			if err != nil {
				return userUpdatedMsg{err: err}
			}
			req.Picture = url
		}

		user, err := client.UpdateUser(ctx, id, req)
		return userUpdatedMsg{user: user, err: err}
	}
}

func (m Model) deleteCmd(id int64) tea.Cmd {
	client := m.api
	return func() tea.Msg {
		err := client.DeleteUser(context.Background(), id)
		return userDeletedMsg{id: id, err: err}
	}
}

func (m Model) statsCmd() tea.Cmd {
	client := m.api
	return func() tea.Msg {
		stats, err := client.AdminStats(context.Background())
		return statsLoadedMsg{stats: stats, err: err}
	}
}

// loginCmd runs the whole browser flow: start the loopback listener, open
// the entry point, block for the redirect. If the browser cannot be opened
// the URL is logged so the operator can paste it by hand.
func (m Model) loginCmd(admin bool) tea.Cmd {
	backendURL := m.backendURL
	listenAddr := m.listenAddr
	log := m.log
	return func() tea.Msg {
		login, err := oauth.Begin(backendURL, admin, listenAddr, log)
		if err != nil {
			return loginResultMsg{err: err}
		}
		defer login.Close()

		if err := oauth.OpenBrowser(login.AuthURL()); err != nil {
			log.Warn(context.Background(), "could not open browser, visit the URL manually",
				"url", login.AuthURL(), "error", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), loginWait)
		defer cancel()

		token, err := login.Wait(ctx)
		return loginResultMsg{token: token, err: err}
	}
}

// establishSessionCmd decodes, persists and publishes the captured token.
func (m Model) establishSessionCmd(token string) tea.Cmd {
	sessions := m.sessions
	return func() tea.Msg {
		_, err := sessions.Login(context.Background(), token)
		return sessionReadyMsg{err: err}
	}
}

// signOutCmd clears the stored credential. Runs as a command so a slow
// store write never blocks a keystroke.
func (m Model) signOutCmd() tea.Cmd {
	sessions := m.sessions
	controller := m.controller
	controller.Reset()
	return func() tea.Msg {
		return signedOutMsg{err: sessions.Logout(context.Background())}
	}
}
