// Package stores contains the client-side state containers. Each store
// wraps remote API calls, keeps mutex-guarded state for the view layer, and
// converts expected failures into user-facing error strings instead of
// propagating them. Operations report success as a boolean.
package stores

import (
	"context"
	"strings"
	"sync"

	"github.com/aerofy/aerofy-cli/internal/client/api"
	"github.com/aerofy/aerofy-cli/internal/client/models"
	"github.com/aerofy/aerofy-cli/internal/client/session"
	"github.com/aerofy/aerofy-cli/internal/logging"
)

// AuthStore holds the current user and authentication flag. The flag always
// equals the outcome of the most recent server verification: Login and
// Register report success only through VerifyAuth, and any 401 anywhere
// forces it back to false via ForceLogout.
type AuthStore struct {
	mu sync.Mutex

	client api.Client
	cache  session.Store
	log    logging.Logger

	user          *models.User
	authenticated bool
	loading       bool
	lastErr       string
}

func NewAuthStore(client api.Client, cache session.Store, log logging.Logger) *AuthStore {
	return &AuthStore{client: client, cache: cache, log: log}
}

// Restore pre-populates the in-memory state from the persisted snapshot.
// The snapshot is display-only; callers must still run VerifyAuth before
// trusting the authenticated flag.
func (s *AuthStore) Restore(ctx context.Context) {
	snap, err := s.cache.Load(ctx)
	if err != nil {
		s.log.Warn(ctx, "failed to load session snapshot", "error", err)
		return
	}
	if snap == nil {
		return
	}
	s.mu.Lock()
	s.user = snap.User
	s.authenticated = snap.Authenticated
	s.mu.Unlock()
}

// Login creates a session and then confirms it through VerifyAuth. It
// returns true only when verification succeeds; the login call's own
// success is never trusted.
func (s *AuthStore) Login(ctx context.Context, email, password string) bool {
	if email == "" || password == "" {
		s.setError("Email and password are required")
		return false
	}

	s.setLoading(true)
	if err := s.client.Login(ctx, email, password); err != nil {
		s.fail(ctx, err, "Login failed")
		return false
	}
	return s.VerifyAuth(ctx)
}

// Register creates an account and confirms the resulting session the same
// way Login does. Password mismatch is caught before any network call.
func (s *AuthStore) Register(ctx context.Context, name, email, password, passwordConfirm string) bool {
	if name == "" || email == "" || password == "" {
		s.setError("Name, email and password are required")
		return false
	}
	if password != passwordConfirm {
		s.setError("Passwords do not match")
		return false
	}

	s.setLoading(true)
	if err := s.client.Register(ctx, name, email, password, passwordConfirm); err != nil {
		s.fail(ctx, err, "Registration failed")
		return false
	}
	return s.VerifyAuth(ctx)
}

// VerifyAuth is the single reconciliation point with the server. On success
// it stores the returned user, flips authenticated to true, and refreshes
// the persisted snapshot. On any failure it clears both. Safe to call
// repeatedly.
func (s *AuthStore) VerifyAuth(ctx context.Context) bool {
	s.setLoading(true)

	verified, err := s.client.Verify(ctx)
	if err != nil || !verified {
		if err != nil {
			s.log.Warn(ctx, "session verification failed", "error", err)
		}
		s.clearLocal(ctx)
		return false
	}

	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		s.log.Warn(ctx, "failed to load current user", "error", err)
		s.clearLocal(ctx)
		return false
	}

	s.mu.Lock()
	s.user = user
	s.authenticated = true
	s.loading = false
	s.mu.Unlock()

	if err := s.cache.Save(ctx, &session.Snapshot{User: user, Authenticated: true}); err != nil {
		s.log.Warn(ctx, "failed to persist session snapshot", "error", err)
	}
	return true
}

// Logout calls the server endpoint best-effort and then unconditionally
// clears local state and the persisted snapshot.
func (s *AuthStore) Logout(ctx context.Context) {
	if err := s.client.Logout(ctx); err != nil {
		s.log.Warn(ctx, "remote logout failed", "error", err)
	}
	s.clearLocal(ctx)
}

// ForceLogout is the 401 reconciliation function registered as the API
// client's unauthorized hook. Local-only: no server call.
func (s *AuthStore) ForceLogout() {
	s.clearLocal(context.Background())
}

// UpdateName patches the cached user's name only after the server accepted
// the change. The cache stays untouched on failure.
func (s *AuthStore) UpdateName(ctx context.Context, name string) bool {
	if strings.TrimSpace(name) == "" {
		s.setError("Name is required")
		return false
	}

	s.setLoading(true)
	if err := s.client.UpdateName(ctx, name); err != nil {
		s.fail(ctx, err, "Failed to update name")
		return false
	}

	s.mu.Lock()
	if s.user != nil {
		patched := *s.user
		patched.Name = name
		s.user = &patched
	}
	s.loading = false
	s.mu.Unlock()
	return true
}

// UpdatePassword is a pure pass-through; it never mutates the cached user.
func (s *AuthStore) UpdatePassword(ctx context.Context, oldPassword, newPassword, newPasswordConfirm string) bool {
	if oldPassword == "" || newPassword == "" {
		s.setError("Old and new passwords are required")
		return false
	}
	if newPassword != newPasswordConfirm {
		s.setError("Passwords do not match")
		return false
	}

	s.setLoading(true)
	if err := s.client.UpdatePassword(ctx, oldPassword, newPassword, newPasswordConfirm); err != nil {
		s.fail(ctx, err, "Failed to update password")
		return false
	}
	s.setLoading(false)
	return true
}

// User returns a copy of the cached user, or nil when logged out.
func (s *AuthStore) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *AuthStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

func (s *AuthStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *AuthStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *AuthStore) ClearError() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
}

func (s *AuthStore) clearLocal(ctx context.Context) {
	s.mu.Lock()
	s.user = nil
	s.authenticated = false
	s.loading = false
	s.mu.Unlock()

	if err := s.cache.Clear(ctx); err != nil {
		s.log.Warn(ctx, "failed to clear session snapshot", "error", err)
	}
}

func (s *AuthStore) fail(ctx context.Context, err error, fallback string) {
	s.log.Warn(ctx, "auth operation failed", "error", err)
	s.mu.Lock()
	s.lastErr = api.Message(err, fallback)
	s.loading = false
	s.mu.Unlock()
}

func (s *AuthStore) setError(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.loading = false
	s.mu.Unlock()
}

func (s *AuthStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.lastErr = ""
	s.mu.Unlock()
}
