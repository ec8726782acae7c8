package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aerofy/aerofy-cli/internal/client/guard"
	"github.com/aerofy/aerofy-cli/internal/client/models"
	"github.com/aerofy/aerofy-cli/internal/client/stores"
)

// captureOutput replaces printlnFn for the duration of the test and returns
// the collected lines.
func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimRight(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

// stubInput feeds canned answers through the interactive input seams.
func stubInput(t *testing.T, texts []string, passwords []string) {
	t.Helper()
	origText, origPassword := getSimpleText, getPassword
	ti, pi := 0, 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if ti >= len(texts) {
			t.Fatal("unexpected text prompt")
		}
		v := texts[ti]
		ti++
		return v, nil
	}
	getPassword = func(_ string, _ io.Writer) (string, error) {
		if pi >= len(passwords) {
			t.Fatal("unexpected password prompt")
		}
		v := passwords[pi]
		pi++
		return v, nil
	}
	t.Cleanup(func() { getSimpleText, getPassword = origText, origPassword })
}

func containsLine(lines []string, substr string) bool {
	for _, l := range lines {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

type fakeAuth struct {
	authenticated bool
	user          *models.User
	errMsg        string

	loginOK    bool
	registerOK bool
	verifyOK   bool
	nameOK     bool
	passwordOK bool

	loginEmail    string
	loginPassword string
	registered    [4]string
	newName       string
	verifyCalls   int
	logoutCalls   int
	restoreCalls  int
}

func (f *fakeAuth) Restore(context.Context) { f.restoreCalls++ }

func (f *fakeAuth) Login(_ context.Context, email, password string) bool {
	f.loginEmail, f.loginPassword = email, password
	if f.loginOK {
		f.authenticated = true
	}
	return f.loginOK
}

func (f *fakeAuth) Register(_ context.Context, name, email, password, passwordConfirm string) bool {
	f.registered = [4]string{name, email, password, passwordConfirm}
	if f.registerOK {
		f.authenticated = true
	}
	return f.registerOK
}

func (f *fakeAuth) VerifyAuth(context.Context) bool {
	f.verifyCalls++
	if !f.verifyOK {
		f.authenticated = false
	}
	return f.verifyOK
}

func (f *fakeAuth) Logout(context.Context) {
	f.logoutCalls++
	f.authenticated = false
	f.user = nil
}

func (f *fakeAuth) UpdateName(_ context.Context, name string) bool {
	f.newName = name
	return f.nameOK
}

func (f *fakeAuth) UpdatePassword(_ context.Context, _, _, _ string) bool {
	return f.passwordOK
}

func (f *fakeAuth) IsAuthenticated() bool { return f.authenticated }
func (f *fakeAuth) User() *models.User    { return f.user }
func (f *fakeAuth) Err() string           { return f.errMsg }

type fakeSend struct {
	uploadOK   bool
	listOK     bool
	validation stores.EmailValidation
	files      []models.SentFile
	total      int
	progress   int
	errMsg     string

	uploadedPaths     []string
	uploadedRecipient string
	uploadedPassword  string
	uploadedExpires   time.Time
	listPage          int
	listLimit         int
	resetCalls        int
}

func (f *fakeSend) UploadFiles(_ context.Context, paths []string, recipientEmail, password string, expiration time.Time) bool {
	f.uploadedPaths = paths
	f.uploadedRecipient = recipientEmail
	f.uploadedPassword = password
	f.uploadedExpires = expiration
	return f.uploadOK
}

func (f *fakeSend) GetRecentFiles(_ context.Context, page, limit int) bool {
	f.listPage, f.listLimit = page, limit
	return f.listOK
}

func (f *fakeSend) ValidateEmail(context.Context, string) stores.EmailValidation {
	return f.validation
}

func (f *fakeSend) RecentFiles() []models.SentFile { return f.files }
func (f *fakeSend) TotalFiles() int                { return f.total }
func (f *fakeSend) Progress() int                  { return f.progress }
func (f *fakeSend) ResetProgress()                 { f.resetCalls++ }
func (f *fakeSend) Err() string                    { return f.errMsg }

type fakeReceive struct {
	pendingOK  bool
	receivedOK bool
	acceptOK   bool
	downloadOK bool

	pending       []models.PendingFile
	received      []models.ReceivedFile
	totalPending  int
	totalReceived int
	downloadPath  string
	errMsg        string

	acceptedID       string
	acceptedPassword string
	downloadedID     string
	downloadFallback string
	pendingCalls     int
	receivedCalls    int
	pendingPage      int
	receivedPage     int
}

func (f *fakeReceive) GetPendingFiles(_ context.Context, page, _ int) bool {
	f.pendingCalls++
	f.pendingPage = page
	return f.pendingOK
}

func (f *fakeReceive) GetReceivedFiles(_ context.Context, page, _ int) bool {
	f.receivedCalls++
	f.receivedPage = page
	return f.receivedOK
}

func (f *fakeReceive) AcceptFile(_ context.Context, sharedID, password string) bool {
	f.acceptedID, f.acceptedPassword = sharedID, password
	return f.acceptOK
}

func (f *fakeReceive) DownloadFile(_ context.Context, sharedID, fallbackName string) (string, bool) {
	f.downloadedID, f.downloadFallback = sharedID, fallbackName
	return f.downloadPath, f.downloadOK
}

func (f *fakeReceive) PendingFiles() []models.PendingFile   { return f.pending }
func (f *fakeReceive) ReceivedFiles() []models.ReceivedFile { return f.received }
func (f *fakeReceive) TotalPendingFiles() int               { return f.totalPending }
func (f *fakeReceive) TotalReceivedFiles() int              { return f.totalReceived }
func (f *fakeReceive) Err() string                          { return f.errMsg }

func newTestApp(auth *fakeAuth, send *fakeSend, receive *fakeReceive) *App {
	return &App{
		auth:         auth,
		send:         send,
		receive:      receive,
		guard:        guard.New(),
		reader:       bufio.NewReader(strings.NewReader("")),
		route:        guard.AuthPath,
		sentPage:     1,
		pendingPage:  1,
		receivedPage: 1,
	}
}
