// Package oauth drives the browser sign-in flow. The backend owns the
// actual Google consent dance; this package opens the entry point in a
// browser and runs a short-lived loopback listener that captures the bearer
// token from the redirect's query string.
package oauth

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"

	"github.com/flfe/adminctl/internal/common"
	"github.com/flfe/adminctl/internal/logging"
	"github.com/google/uuid"
)

const callbackPath = "/callback"

// successPage is shown in the browser after the token is captured.
const successPage = `<!doctype html><html><body>
<p>Signed in. You can close this window and return to the terminal.</p>
</body></html>`

// result carries the callback outcome to Wait.
type result struct {
	token string
	err   error
}

// Login is one in-progress sign-in attempt. Begin starts the loopback
// listener; the caller opens AuthURL in a browser and blocks on Wait.
type Login struct {
	server   *http.Server
	listener net.Listener
	authURL  string
	state    string
	results  chan result
	once     sync.Once
	log      logging.Logger
}

// Begin starts the loopback listener and builds the backend entry-point
// URL. admin selects the admin-role entry point. listenAddr is usually
// "127.0.0.1:0" so the port is chosen by the OS.
func Begin(backendURL string, admin bool, listenAddr string, log logging.Logger) (*Login, error) {
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to start callback listener: %w", err)
	}

	entry := backendURL + "/auth/login/google"
	if admin {
		entry += "/admin"
	}

	l := &Login{
		listener: listener,
		state:    uuid.NewString(),
		results:  make(chan result, 1),
		log:      log.With("component", "oauth"),
	}

	redirect := "http://" + listener.Addr().String() + callbackPath
	params := url.Values{}
	params.Set("redirect_uri", redirect)
	params.Set("state", l.state)
	l.authURL = entry + "?" + params.Encode()

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, l.handleCallback)
	l.server = &http.Server{Handler: mux}

	go func() {
		if err := l.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			l.results <- result{err: err}
		}
	}()

	return l, nil
}

// AuthURL is the backend entry point to open in the operator's browser.
func (l *Login) AuthURL() string {
	return l.authURL
}

// handleCallback captures the token from the redirect. The body runs at
// most once: re-renders of the landing page (browser refresh, prefetch)
// must not replay the login.
func (l *Login) handleCallback(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("state") != l.state {
		l.log.Warn(r.Context(), "callback with unexpected state rejected")
		http.Error(w, "unexpected state", http.StatusBadRequest)
		return
	}

	l.once.Do(func() {
		token := r.URL.Query().Get("token")
		if token == "" {
			// The provider bounced the user back without a credential:
			// an aborted or failed consent, not an error to retry here.
			l.results <- result{err: common.ErrLoginAborted}
			return
		}
		l.results <- result{token: token}
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, successPage)
}

// Wait blocks until the redirect lands or ctx expires, and returns the
// captured bearer token.
func (l *Login) Wait(ctx context.Context) (string, error) {
	select {
	case res := <-l.results:
		return res.token, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Close stops the loopback listener.
func (l *Login) Close() error {
	return l.server.Close()
}
