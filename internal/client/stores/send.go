package stores

import (
	"context"
	"regexp"
	"sync"
	"time"

	"github.com/aerofy/aerofy-cli/internal/client/api"
	"github.com/aerofy/aerofy-cli/internal/client/models"
	"github.com/aerofy/aerofy-cli/internal/logging"
	"github.com/google/uuid"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// EmailValidation is the advisory result of a recipient lookup. It is not
// enforced anywhere else in the store.
type EmailValidation struct {
	IsValid bool
	Message string
}

// SendStore tracks upload progress and the sender's transfer history.
// Overlapping list fetches are resolved by a per-call token: only the most
// recently issued request may write its result, so a slow stale response
// can never overwrite a newer page.
type SendStore struct {
	mu sync.Mutex

	client api.Client
	log    logging.Logger

	uploading bool
	progress  int
	recent    []models.SentFile
	total     int
	lastErr   string

	listToken string
}

func NewSendStore(client api.Client, log logging.Logger) *SendStore {
	return &SendStore{client: client, log: log}
}

// UploadFiles validates the request client-side, then issues one multipart
// upload with transport-level progress. Validation failures short-circuit
// before any network call. A failed upload is terminal for the attempt;
// there is no retry.
func (s *SendStore) UploadFiles(ctx context.Context, paths []string, recipientEmail, password string, expiration time.Time) bool {
	if len(paths) == 0 {
		s.setError("No files selected")
		return false
	}
	if recipientEmail == "" {
		s.setError("Recipient email is required")
		return false
	}
	if !emailRe.MatchString(recipientEmail) {
		s.setError("Invalid email format")
		return false
	}
	if password == "" {
		s.setError("Password is required")
		return false
	}
	if !expiration.After(time.Now()) {
		s.setError("Expiration date must be in the future")
		return false
	}

	s.mu.Lock()
	s.uploading = true
	s.progress = 0
	s.lastErr = ""
	s.mu.Unlock()

	req := api.UploadRequest{
		FilePaths:      paths,
		RecipientEmail: recipientEmail,
		Password:       password,
		ExpirationDate: expiration,
	}
	err := s.client.Upload(ctx, req, func(percent int) {
		s.mu.Lock()
		s.progress = percent
		s.mu.Unlock()
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploading = false
	if err != nil {
		// Progress stays at the last observed value.
		s.lastErr = api.Message(err, "Upload failed")
		s.log.Warn(ctx, "upload failed", "recipient", recipientEmail, "error", err)
		return false
	}
	s.progress = 100
	return true
}

// GetRecentFiles fetches one page of transfer history and fully replaces
// the in-memory list and total count. No client-side merging.
func (s *SendStore) GetRecentFiles(ctx context.Context, page, limit int) bool {
	token := uuid.NewString()
	s.mu.Lock()
	s.listToken = token
	s.lastErr = ""
	s.mu.Unlock()

	files, total, err := s.client.ListSent(ctx, page, limit)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listToken != token {
		// A newer fetch already owns the list.
		return err == nil
	}
	if err != nil {
		s.lastErr = api.Message(err, "Failed to load files")
		s.log.Warn(ctx, "sent list fetch failed", "page", page, "error", err)
		return false
	}
	s.recent = files
	s.total = total
	return true
}

// ValidateEmail checks the format locally and then asks the server whether
// the address belongs to a registered user. Advisory only.
func (s *SendStore) ValidateEmail(ctx context.Context, email string) EmailValidation {
	if email == "" {
		return EmailValidation{IsValid: false, Message: "Email is required"}
	}
	if !emailRe.MatchString(email) {
		return EmailValidation{IsValid: false, Message: "Invalid email format"}
	}

	emails, err := s.client.SearchEmails(ctx, email)
	if err != nil {
		return EmailValidation{IsValid: false, Message: api.Message(err, "Validation failed")}
	}
	if len(emails) == 0 {
		return EmailValidation{IsValid: false, Message: "Invalid email address"}
	}
	return EmailValidation{IsValid: true}
}

// RecentFiles returns a copy of the current page.
func (s *SendStore) RecentFiles() []models.SentFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.SentFile, len(s.recent))
	copy(out, s.recent)
	return out
}

func (s *SendStore) TotalFiles() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

func (s *SendStore) IsUploading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploading
}

func (s *SendStore) Progress() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// ResetProgress is called by the view after showing a finished upload.
func (s *SendStore) ResetProgress() {
	s.mu.Lock()
	s.progress = 0
	s.mu.Unlock()
}

func (s *SendStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *SendStore) ClearError() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
}

func (s *SendStore) setError(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}
