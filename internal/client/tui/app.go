package tui

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/flfe/adminctl/internal/client/api"
	"github.com/flfe/adminctl/internal/client/config"
	"github.com/flfe/adminctl/internal/client/creds"
	"github.com/flfe/adminctl/internal/client/list"
	"github.com/flfe/adminctl/internal/client/session"
	"github.com/flfe/adminctl/internal/logging"

	_ "modernc.org/sqlite"
)

// App owns the wired-up program: local database, credential store, session
// manager, API client and the bubbletea model on top of them.
type App struct {
	config   *config.Config
	db       *sql.DB
	sessions *session.Manager
	model    Model
	log      logging.Logger
}

// NewApp wires the application from its configuration. The stored session,
// if any, is restored before the UI starts so the first frame already knows
// who is signed in.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})
	log := logging.NewSlogLogger(slog.New(handler))

	db, err := creds.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, err
	}

	store := creds.NewSQLiteStore(db)
	sessions := session.NewManager(store, log)
	if err := sessions.Init(ctx); err != nil {
		db.Close()
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.BackendURL, c.HTTPTimeout, store, log)

	model := New(Params{
		API:                apiClient,
		Sessions:           sessions,
		Controller:         list.NewController(apiClient, c.PageSize),
		Log:                log,
		BackendURL:         c.BackendURL,
		CallbackListenAddr: c.CallbackListenAddr,
		DebounceInterval:   c.DebounceInterval,
	})

	return &App{config: c, db: db, sessions: sessions, model: model, log: log}, nil
}

// Run blocks until the operator quits the UI.
func (a *App) Run() error {
	defer a.db.Close()

	_, err := tea.NewProgram(a.model, tea.WithAltScreen()).Run()
	return err
}
