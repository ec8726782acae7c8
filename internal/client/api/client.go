// Package api implements the HTTP client for the Aerofy backend. All
// requests are credentials-included (cookie session) and go through a single
// error-mapping path that converts 401 responses into a forced-logout hook.
package api

import (
	"context"
	"io"
	"time"

	"github.com/aerofy/aerofy-cli/internal/client/models"
)

// UploadRequest describes one multipart upload call.
type UploadRequest struct {
	FilePaths      []string
	RecipientEmail string
	Password       string
	ExpirationDate time.Time
}

// Download is the result of a retrieve call. Body must be closed by the
// caller. FileName is resolved from the Content-Disposition header and may
// be empty. Size is -1 when the server did not send Content-Length.
type Download struct {
	Body     io.ReadCloser
	FileName string
	Size     int64
}

// Client is the remote API surface consumed by the stores. All methods honor
// context cancellation; none of them retry.
type Client interface {
	Close() error

	// Session.
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, name, email, password, passwordConfirm string) error
	Logout(ctx context.Context) error
	Verify(ctx context.Context) (bool, error)

	// Profile.
	CurrentUser(ctx context.Context) (*models.User, error)
	UpdateName(ctx context.Context, name string) error
	UpdatePassword(ctx context.Context, oldPassword, newPassword, newPasswordConfirm string) error
	SearchEmails(ctx context.Context, query string) ([]string, error)

	// Transfers.
	Upload(ctx context.Context, req UploadRequest, onProgress ProgressFunc) error
	ListSent(ctx context.Context, page, limit int) ([]models.SentFile, int, error)
	ListPending(ctx context.Context, page, limit int) ([]models.PendingFile, int, error)
	ListReceived(ctx context.Context, page, limit int) ([]models.ReceivedFile, int, error)
	AcceptFile(ctx context.Context, sharedID, password string) error
	RetrieveFile(ctx context.Context, sharedID string) (*Download, error)
}
