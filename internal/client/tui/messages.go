package tui

import (
	"github.com/flfe/adminctl/internal/client/list"
	"github.com/flfe/adminctl/internal/client/models"
)

// listResultMsg delivers a completed list fetch. The controller decides
// whether the result is still current; stale ones are dropped without
// touching the view.
type listResultMsg struct {
	result list.Result
}

// debounceFiredMsg is sent when a search input quiet period elapses. Only
// the newest generation triggers a fetch; older timers fire into the void.
type debounceFiredMsg struct {
	generation uint64
}

// userLoadedMsg delivers a single-record fetch for the detail or edit view.
type userLoadedMsg struct {
	user    models.UserRecord
	err     error
	forEdit bool
}

// userCreatedMsg delivers the result of a create submission.
type userCreatedMsg struct {
	user models.UserRecord
	err  error
}

// userUpdatedMsg delivers the result of an edit submission (including the
// optional picture upload that precedes it).
type userUpdatedMsg struct {
	user models.UserRecord
	err  error
}

// userDeletedMsg delivers the result of a confirmed delete.
type userDeletedMsg struct {
	id  int64
	err error
}

// statsLoadedMsg delivers the admin dashboard payload.
type statsLoadedMsg struct {
	stats models.Stats
	err   error
}

// loginResultMsg delivers the outcome of the browser OAuth flow: the
// captured token, or the reason the flow ended without one.
type loginResultMsg struct {
	token string
	err   error
}

// signedOutMsg reports the outcome of clearing the stored credential. The
// UI already shows the anonymous landing screen by the time it arrives.
type signedOutMsg struct {
	err error
}

// sessionReadyMsg is sent once the captured token has been decoded,
// persisted and published. Navigation to the list happens only after this
// point, so the list view's own session read can never race the login.
type sessionReadyMsg struct {
	err error
}
