package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/sicmundus/tracker/internal/client/client"
	"github.com/sicmundus/tracker/internal/client/config"
	"github.com/sicmundus/tracker/internal/client/services"
	"github.com/sicmundus/tracker/internal/client/storage"
	"github.com/sicmundus/tracker/internal/client/tokens"
	"github.com/sicmundus/tracker/internal/logging"
)

type App struct {
	config  *config.Config
	db      *sql.DB
	clock   clockwork.Clock
	logger  logging.Logger
	session *services.SessionService
	store   *services.EntityStore
	timer   *services.TimerController
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp opens the local database and builds the services on top of the
// configured server.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", cfg.DatabasePath, "err", err)
		return nil, err
	}
	return newApp(cfg, db, &http.Client{}, clockwork.NewRealClock(), logger, os.Stdin, os.Stdout), nil
}

func newApp(cfg *config.Config, db *sql.DB, httpClient *http.Client, clock clockwork.Clock, logger logging.Logger, in io.Reader, out io.Writer) *App {
	a := &App{
		config: cfg,
		db:     db,
		clock:  clock,
		logger: logger,
		reader: bufio.NewReader(in),
		out:    out,
	}

	gw := client.NewGateway(cfg.ServerURL, httpClient, client.TokenFunc(func() string { return a.session.Token() }), logger)
	api := client.NewHTTPClient(gw)

	a.session = services.NewSessionService(api, tokens.NewSQLiteStore(db, cfg.SessionTTL, clock), logger)
	a.store = services.NewEntityStore(api, logger)
	a.timer = services.NewTimerController(api, a.store, clock, logger)
	a.session.OnEnded(a.sessionEnded)
	return a
}

// Run restores the previous session and blocks in the REPL until exit.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.println("Welcome to the tracker CLI (type 'help' for commands)")
	a.bootstrap(ctx)

	runREPL(ctx, a, a.status, a.reader, a.out)
}

// Close stops the timer clock and closes the database.
func (a *App) Close() {
	a.timer.Close()
	if err := a.db.Close(); err != nil {
		a.logger.Warn(context.Background(), "close database", "err", err)
	}
}

func (a *App) bootstrap(ctx context.Context) {
	a.session.Restore(ctx)
	if !a.session.IsAuthenticated() {
		a.println("Not logged in. Use 'login' or 'register'.")
		return
	}
	if err := a.loadAll(ctx); err != nil {
		a.println(renderError(err))
	}
	if u := a.session.User(); u != nil {
		a.println("Welcome back,", u.Username)
	}
	if a.session.MustChangePassword() {
		a.println("You must change your password before continuing (passwd).")
	}
}

// loadAll fetches tasks, projects and the active timer. Each fetch clears the
// store's error flag, so it is read after every step and the failures joined.
func (a *App) loadAll(ctx context.Context) error {
	var errs []error
	a.store.FetchTasks(ctx)
	if err := a.store.Err(); err != nil {
		errs = append(errs, fmt.Errorf("load tasks: %w", err))
	}
	a.store.FetchProjects(ctx)
	if err := a.store.Err(); err != nil {
		errs = append(errs, fmt.Errorf("load projects: %w", err))
	}
	a.timer.FetchActive(ctx)
	return errors.Join(errs...)
}

func (a *App) sessionEnded(ctx context.Context, reason services.EndReason) {
	a.store.Reset()
	a.timer.Reset()
	if reason == services.EndReasonStale {
		a.println("Your session has expired.")
	}
	a.println("Please log in (login) or create an account (register).")
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) mustChangePassword() bool {
	return a.session.MustChangePassword()
}

func (a *App) status() string {
	s := ""
	if u := a.session.User(); u != nil {
		s = u.Username
	}
	if a.timer.HasActive() {
		if s != "" {
			s += " "
		}
		s += renderElapsed(a.timer.ElapsedSeconds())
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
