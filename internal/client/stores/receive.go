package stores

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/aerofy/aerofy-cli/internal/client/api"
	"github.com/aerofy/aerofy-cli/internal/client/models"
	"github.com/aerofy/aerofy-cli/internal/logging"
	"github.com/google/uuid"
)

// ReceiveStore tracks pending and received shares. The two lists have
// independent loading flags so their fetches never block each other, and
// both use the same stale-response token scheme as SendStore.
type ReceiveStore struct {
	mu sync.Mutex

	client      api.Client
	log         logging.Logger
	downloadDir string

	pending      []models.PendingFile
	totalPending int
	loadingPend  bool
	pendToken    string

	received     []models.ReceivedFile
	totalRecv    int
	loadingRecv  bool
	recvToken    string

	accepting bool

	downloading       bool
	downloadingFileID string
	downloadProgress  int

	lastErr string
}

func NewReceiveStore(client api.Client, downloadDir string, log logging.Logger) *ReceiveStore {
	return &ReceiveStore{client: client, downloadDir: downloadDir, log: log}
}

// GetPendingFiles replaces the pending list with one page of results.
func (s *ReceiveStore) GetPendingFiles(ctx context.Context, page, limit int) bool {
	token := uuid.NewString()
	s.mu.Lock()
	s.pendToken = token
	s.loadingPend = true
	s.lastErr = ""
	s.mu.Unlock()

	files, total, err := s.client.ListPending(ctx, page, limit)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pendToken != token {
		return err == nil
	}
	s.loadingPend = false
	if err != nil {
		s.lastErr = api.Message(err, "Failed to load pending files")
		s.log.Warn(ctx, "pending list fetch failed", "page", page, "error", err)
		return false
	}
	s.pending = files
	s.totalPending = total
	return true
}

// GetReceivedFiles replaces the received list with one page of results.
func (s *ReceiveStore) GetReceivedFiles(ctx context.Context, page, limit int) bool {
	token := uuid.NewString()
	s.mu.Lock()
	s.recvToken = token
	s.loadingRecv = true
	s.lastErr = ""
	s.mu.Unlock()

	files, total, err := s.client.ListReceived(ctx, page, limit)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.recvToken != token {
		return err == nil
	}
	s.loadingRecv = false
	if err != nil {
		s.lastErr = api.Message(err, "Failed to load received files")
		s.log.Warn(ctx, "received list fetch failed", "page", page, "error", err)
		return false
	}
	s.received = files
	s.totalRecv = total
	return true
}

// AcceptFile submits the share password. On success the accepted item is
// removed from the in-memory pending list immediately; the caller is
// expected to re-fetch both lists to reconcile, and the optimistic state may
// be briefly stale until it does. On any failure the list stays unchanged;
// a wrong password gets a distinct message.
func (s *ReceiveStore) AcceptFile(ctx context.Context, sharedID, password string) bool {
	if password == "" {
		s.setError("Password is required")
		return false
	}

	s.mu.Lock()
	s.accepting = true
	s.lastErr = ""
	s.mu.Unlock()

	err := s.client.AcceptFile(ctx, sharedID, password)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.accepting = false
	if err != nil {
		if errors.Is(err, api.ErrInvalidPassword) {
			s.lastErr = "Invalid password"
		} else {
			s.lastErr = api.Message(err, "Failed to accept file")
		}
		s.log.Warn(ctx, "accept failed", "shared_id", sharedID, "error", err)
		return false
	}

	kept := s.pending[:0]
	for _, f := range s.pending {
		if f.SharedID != sharedID {
			kept = append(kept, f)
		}
	}
	s.pending = kept
	return true
}

// DownloadFile streams the share into the download directory, resolving the
// file name from the Content-Disposition header with fallbackName as the
// default. The downloading-file id and progress are cleared on success and
// failure alike so a list UI never sticks in a disabled state. Returns the
// saved path on success.
func (s *ReceiveStore) DownloadFile(ctx context.Context, sharedID, fallbackName string) (string, bool) {
	s.mu.Lock()
	s.downloading = true
	s.downloadingFileID = sharedID
	s.downloadProgress = 0
	s.lastErr = ""
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.downloading = false
		s.downloadingFileID = ""
		s.downloadProgress = 0
		s.mu.Unlock()
	}()

	path, err := s.download(ctx, sharedID, fallbackName)
	if err != nil {
		s.mu.Lock()
		s.lastErr = api.Message(err, "Failed to download file")
		s.mu.Unlock()
		s.log.Warn(ctx, "download failed", "shared_id", sharedID, "error", err)
		return "", false
	}
	return path, true
}

func (s *ReceiveStore) download(ctx context.Context, sharedID, fallbackName string) (string, error) {
	dl, err := s.client.RetrieveFile(ctx, sharedID)
	if err != nil {
		return "", err
	}
	defer dl.Body.Close()

	name := dl.FileName
	if name == "" {
		name = fallbackName
	}
	if name == "" {
		name = "download"
	}
	// Header-provided names are untrusted; strip any path components.
	name = filepath.Base(name)

	if err := os.MkdirAll(s.downloadDir, 0o770); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}
	path := filepath.Join(s.downloadDir, name)

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}

	body := api.NewProgressReader(dl.Body, dl.Size, func(percent int) {
		s.mu.Lock()
		s.downloadProgress = percent
		s.mu.Unlock()
	})

	if _, err := io.Copy(out, body); err != nil {
		out.Close()
		os.Remove(path)
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

func (s *ReceiveStore) PendingFiles() []models.PendingFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.PendingFile, len(s.pending))
	copy(out, s.pending)
	return out
}

func (s *ReceiveStore) ReceivedFiles() []models.ReceivedFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ReceivedFile, len(s.received))
	copy(out, s.received)
	return out
}

func (s *ReceiveStore) TotalPendingFiles() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalPending
}

func (s *ReceiveStore) TotalReceivedFiles() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalRecv
}

func (s *ReceiveStore) IsLoadingPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadingPend
}

func (s *ReceiveStore) IsLoadingReceived() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadingRecv
}

func (s *ReceiveStore) IsAccepting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accepting
}

func (s *ReceiveStore) IsDownloading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.downloading
}

// DownloadingFileID reports which single share is currently downloading so
// a list UI can disable only that row.
func (s *ReceiveStore) DownloadingFileID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.downloadingFileID
}

func (s *ReceiveStore) DownloadProgress() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.downloadProgress
}

func (s *ReceiveStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *ReceiveStore) ClearError() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
}

func (s *ReceiveStore) setError(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}
