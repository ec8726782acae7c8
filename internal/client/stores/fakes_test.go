package stores

import (
	"context"
	"sync"

	"github.com/aerofy/aerofy-cli/internal/client/api"
	"github.com/aerofy/aerofy-cli/internal/client/models"
	"github.com/aerofy/aerofy-cli/internal/client/session"
	"github.com/aerofy/aerofy-cli/internal/logging"
)

// nopLogger keeps test output quiet.
type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (l nopLogger) With(...any) logging.Logger          { return l }

// fakeClient implements api.Client for unit tests. Call counters let tests
// assert that validation failures short-circuit before the network.
type fakeClient struct {
	loginErr    error
	loginCalls  int
	registerErr error
	regCalls    int
	logoutErr   error
	logoutCalls int

	verifyOK    bool
	verifyErr   error
	verifyCalls int

	user    *models.User
	userErr error

	updateNameErr error
	updatePwdErr  error

	emails    []string
	searchErr error

	uploadErr      error
	uploadCalls    int
	uploadReq      api.UploadRequest
	uploadProgress []int // percentages emitted during Upload

	sentFn     func(page, limit int) ([]models.SentFile, int, error)
	pendingFn  func(page, limit int) ([]models.PendingFile, int, error)
	receivedFn func(page, limit int) ([]models.ReceivedFile, int, error)

	acceptErr      error
	acceptCalls    int
	acceptSharedID string
	acceptPassword string

	download    *api.Download
	retrieveErr error
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) Login(_ context.Context, email, password string) error {
	f.loginCalls++
	return f.loginErr
}

func (f *fakeClient) Register(_ context.Context, name, email, password, passwordConfirm string) error {
	f.regCalls++
	return f.registerErr
}

func (f *fakeClient) Logout(context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeClient) Verify(context.Context) (bool, error) {
	f.verifyCalls++
	return f.verifyOK, f.verifyErr
}

func (f *fakeClient) CurrentUser(context.Context) (*models.User, error) {
	return f.user, f.userErr
}

func (f *fakeClient) UpdateName(_ context.Context, name string) error {
	return f.updateNameErr
}

func (f *fakeClient) UpdatePassword(_ context.Context, oldPassword, newPassword, newPasswordConfirm string) error {
	return f.updatePwdErr
}

func (f *fakeClient) SearchEmails(_ context.Context, query string) ([]string, error) {
	return f.emails, f.searchErr
}

func (f *fakeClient) Upload(_ context.Context, req api.UploadRequest, onProgress api.ProgressFunc) error {
	f.uploadCalls++
	f.uploadReq = req
	if f.uploadErr != nil {
		return f.uploadErr
	}
	for _, p := range f.uploadProgress {
		if onProgress != nil {
			onProgress(p)
		}
	}
	return nil
}

func (f *fakeClient) ListSent(_ context.Context, page, limit int) ([]models.SentFile, int, error) {
	if f.sentFn != nil {
		return f.sentFn(page, limit)
	}
	return nil, 0, nil
}

func (f *fakeClient) ListPending(_ context.Context, page, limit int) ([]models.PendingFile, int, error) {
	if f.pendingFn != nil {
		return f.pendingFn(page, limit)
	}
	return nil, 0, nil
}

func (f *fakeClient) ListReceived(_ context.Context, page, limit int) ([]models.ReceivedFile, int, error) {
	if f.receivedFn != nil {
		return f.receivedFn(page, limit)
	}
	return nil, 0, nil
}

func (f *fakeClient) AcceptFile(_ context.Context, sharedID, password string) error {
	f.acceptCalls++
	f.acceptSharedID = sharedID
	f.acceptPassword = password
	return f.acceptErr
}

func (f *fakeClient) RetrieveFile(_ context.Context, sharedID string) (*api.Download, error) {
	if f.retrieveErr != nil {
		return nil, f.retrieveErr
	}
	return f.download, nil
}

// fakeCache implements session.Store in memory, recording clears.
type fakeCache struct {
	mu       sync.Mutex
	snap     *session.Snapshot
	saves    int
	clears   int
	loadErr  error
	saveErr  error
	clearErr error
}

func (c *fakeCache) Load(context.Context) (*session.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap, c.loadErr
}

func (c *fakeCache) Save(_ context.Context, snap *session.Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.saveErr != nil {
		return c.saveErr
	}
	c.snap = snap
	c.saves++
	return nil
}

func (c *fakeCache) Clear(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.clearErr != nil {
		return c.clearErr
	}
	c.snap = nil
	c.clears++
	return nil
}

func (c *fakeCache) snapshot() *session.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

func (c *fakeCache) clearCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clears
}
