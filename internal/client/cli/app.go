// Package cli implements the interactive shell of the Aerofy client: an
// authentication view, send/receive views with pagination, and a profile
// view, all gated by the navigation guard.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/aerofy/aerofy-cli/internal/client/api"
	"github.com/aerofy/aerofy-cli/internal/client/config"
	"github.com/aerofy/aerofy-cli/internal/client/guard"
	"github.com/aerofy/aerofy-cli/internal/client/models"
	"github.com/aerofy/aerofy-cli/internal/client/session"
	"github.com/aerofy/aerofy-cli/internal/client/stores"
	"github.com/aerofy/aerofy-cli/internal/logging"
)

// defaultPageSize is the rows-per-page of every list view.
const defaultPageSize = 5

// authStore, sendStore and receiveStore define the slices of the state
// containers the views need. Tests provide lightweight fakes.
type authStore interface {
	Restore(ctx context.Context)
	Login(ctx context.Context, email, password string) bool
	Register(ctx context.Context, name, email, password, passwordConfirm string) bool
	VerifyAuth(ctx context.Context) bool
	Logout(ctx context.Context)
	UpdateName(ctx context.Context, name string) bool
	UpdatePassword(ctx context.Context, oldPassword, newPassword, newPasswordConfirm string) bool
	IsAuthenticated() bool
	User() *models.User
	Err() string
}

type sendStore interface {
	UploadFiles(ctx context.Context, paths []string, recipientEmail, password string, expiration time.Time) bool
	GetRecentFiles(ctx context.Context, page, limit int) bool
	ValidateEmail(ctx context.Context, email string) stores.EmailValidation
	RecentFiles() []models.SentFile
	TotalFiles() int
	Progress() int
	ResetProgress()
	Err() string
}

type receiveStore interface {
	GetPendingFiles(ctx context.Context, page, limit int) bool
	GetReceivedFiles(ctx context.Context, page, limit int) bool
	AcceptFile(ctx context.Context, sharedID, password string) bool
	DownloadFile(ctx context.Context, sharedID, fallbackName string) (string, bool)
	PendingFiles() []models.PendingFile
	ReceivedFiles() []models.ReceivedFile
	TotalPendingFiles() int
	TotalReceivedFiles() int
	Err() string
}

// App owns the shell state: the stores, the guard, the current route, and
// the per-view pagination cursors.
type App struct {
	config  *config.Config
	auth    authStore
	send    sendStore
	receive receiveStore
	guard   *guard.Guard
	log     logging.Logger
	reader  *bufio.Reader

	db        *sql.DB
	apiClient *api.HTTPClient

	route string
	// from remembers the originally requested route across a guard
	// redirect, for the post-login jump.
	from string

	sentPage     int
	pendingPage  int
	receivedPage int
}

func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := session.InitDatabase(ctx, cfg.SessionCachePath)
	if err != nil {
		return nil, err
	}

	apiClient, err := api.New(cfg.APIBaseURL, cfg.RequestTimeout, log)
	if err != nil {
		db.Close()
		return nil, err
	}

	cache := session.NewSQLiteStore(db)
	auth := stores.NewAuthStore(apiClient, cache, log)
	// Any 401 anywhere flows through this one reconciliation function.
	apiClient.SetUnauthorizedHook(auth.ForceLogout)

	return &App{
		config:       cfg,
		auth:         auth,
		send:         stores.NewSendStore(apiClient, log),
		receive:      stores.NewReceiveStore(apiClient, cfg.DownloadDir, log),
		guard:        guard.New(),
		log:          log,
		reader:       bufio.NewReader(os.Stdin),
		db:           db,
		apiClient:    apiClient,
		route:        guard.AuthPath,
		sentPage:     1,
		pendingPage:  1,
		receivedPage: 1,
	}, nil
}

func (a *App) Close() error {
	if a.apiClient != nil {
		a.apiClient.Close()
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Run restores the cached identity, reconciles it against the server once,
// and enters the command loop.
func (a *App) Run(ctx context.Context) {
	a.auth.Restore(ctx)
	printlnFn("Welcome to Aerofy CLI (type 'help' for commands)")

	if a.auth.VerifyAuth(ctx) {
		a.route = guard.HomePath
	} else {
		a.route = guard.AuthPath
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

func (a *App) isLoggedIn() bool {
	return a.auth.IsAuthenticated()
}

func (a *App) getStatus() string {
	s := ""
	if u := a.auth.User(); u != nil {
		s = u.Email + " "
	}
	s += a.route
	return fmt.Sprintf("(%s)", s)
}

// navigate runs the guard for the target route. A redirect to the auth view
// remembers where the user wanted to go.
func (a *App) navigate(route string) bool {
	d := a.guard.Decide(route, a.auth.IsAuthenticated())
	if d.Allow {
		a.route = route
		return true
	}
	a.route = d.RedirectTo
	if d.RedirectTo == guard.AuthPath {
		a.from = d.From
		printlnFn("Please log in first")
	}
	return false
}

// enterProtected combines the guard check with the defensive on-entry
// re-verification every protected view performs: the guard's decision may
// be stale if the session expired since the last check.
func (a *App) enterProtected(ctx context.Context, route string) bool {
	if !a.navigate(route) {
		return false
	}
	if !a.auth.VerifyAuth(ctx) {
		printlnFn("Session expired, please log in again")
		a.from = route
		a.route = guard.AuthPath
		return false
	}
	return true
}

// afterLogin jumps to the route the guard redirected away from, or home.
func (a *App) afterLogin() {
	target := a.from
	a.from = ""
	if target == "" {
		target = guard.HomePath
	}
	a.navigate(target)
}
