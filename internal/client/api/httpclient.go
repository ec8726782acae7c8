package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aerofy/aerofy-cli/internal/client/models"
	"github.com/aerofy/aerofy-cli/internal/logging"
)

// HTTPClient is the concrete Client backed by net/http. A cookie jar keeps
// the server-issued session cookie between calls, mirroring a
// credentials-included browser client.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger

	// onUnauthorized is the single 401 reconciliation hook. It runs before
	// ErrUnauthorized is returned so the auth state never stays stale.
	onUnauthorized func()
}

func New(baseURL string, timeout time.Duration, log logging.Logger) (*HTTPClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: timeout},
		log:     log,
	}, nil
}

// SetUnauthorizedHook registers fn to run on any 401 response except the
// accept call, where 401 means a wrong share password.
func (c *HTTPClient) SetUnauthorizedHook(fn func()) {
	c.onUnauthorized = fn
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	return c.doJSON(ctx, http.MethodPost, "/auth/login", body, nil, true)
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password, passwordConfirm string) error {
	body := map[string]string{
		"name":            name,
		"email":           email,
		"password":        password,
		"passwordConfirm": passwordConfirm,
	}
	return c.doJSON(ctx, http.MethodPost, "/auth/register", body, nil, true)
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil, true)
}

// Verify asks the server whether the current session cookie is valid.
// A 401 here is the authoritative "not logged in" answer, so it is reported
// as (false, nil) rather than as an error.
func (c *HTTPClient) Verify(ctx context.Context) (bool, error) {
	var out struct {
		Verified bool `json:"verified"`
	}
	err := c.doJSON(ctx, http.MethodGet, "/auth/verify", nil, &out, true)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return false, nil
		}
		return false, err
	}
	return out.Verified, nil
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	var out struct {
		Data struct {
			User models.User `json:"user"`
		} `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/users/me", nil, &out, true); err != nil {
		return nil, err
	}
	return &out.Data.User, nil
}

func (c *HTTPClient) UpdateName(ctx context.Context, name string) error {
	return c.doJSON(ctx, http.MethodPut, "/users/name", map[string]string{"name": name}, nil, true)
}

func (c *HTTPClient) UpdatePassword(ctx context.Context, oldPassword, newPassword, newPasswordConfirm string) error {
	body := map[string]string{
		"old_password":         oldPassword,
		"new_password":         newPassword,
		"new_password_confirm": newPasswordConfirm,
	}
	return c.doJSON(ctx, http.MethodPut, "/users/password", body, nil, true)
}

func (c *HTTPClient) SearchEmails(ctx context.Context, query string) ([]string, error) {
	var out struct {
		Emails []struct {
			Email string `json:"email"`
		} `json:"emails"`
	}
	path := "/users/search-emails?query=" + url.QueryEscape(query)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out, true); err != nil {
		return nil, err
	}
	emails := make([]string, 0, len(out.Emails))
	for _, e := range out.Emails {
		emails = append(emails, e.Email)
	}
	return emails, nil
}

// Upload sends one multipart request with every file under the "fileUpload"
// field plus the share parameters. The body is assembled up front so the
// total size is known and progress can be observed at the transport level.
func (c *HTTPClient) Upload(ctx context.Context, req UploadRequest, onProgress ProgressFunc) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, path := range req.FilePaths {
		if err := writeFilePart(mw, path); err != nil {
			return err
		}
	}
	fields := map[string]string{
		"recipient_email": req.RecipientEmail,
		"password":        req.Password,
		"expiration_date": req.ExpirationDate.Format(time.RFC3339),
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return fmt.Errorf("write field %s: %w", name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("finalize multipart body: %w", err)
	}

	total := int64(buf.Len())
	body := NewProgressReader(&buf, total, onProgress)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/file/upload", body)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())
	httpReq.ContentLength = total

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return c.mapError(err)
	}
	defer resp.Body.Close()

	return c.checkStatus(resp, true)
}

func writeFilePart(mw *multipart.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	part, err := mw.CreateFormFile("fileUpload", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) ListSent(ctx context.Context, page, limit int) ([]models.SentFile, int, error) {
	var out struct {
		Status  string            `json:"status"`
		Files   []models.SentFile `json:"files"`
		Results int               `json:"results"`
	}
	if err := c.doJSON(ctx, http.MethodGet, listPath("/list/send", page, limit), nil, &out, true); err != nil {
		return nil, 0, err
	}
	return out.Files, out.Results, nil
}

func (c *HTTPClient) ListPending(ctx context.Context, page, limit int) ([]models.PendingFile, int, error) {
	var out struct {
		Status  string               `json:"status"`
		Files   []models.PendingFile `json:"files"`
		Results int                  `json:"results"`
	}
	if err := c.doJSON(ctx, http.MethodGet, listPath("/list/pendingreceive", page, limit), nil, &out, true); err != nil {
		return nil, 0, err
	}
	return out.Files, out.Results, nil
}

func (c *HTTPClient) ListReceived(ctx context.Context, page, limit int) ([]models.ReceivedFile, int, error) {
	var out struct {
		Status  string                `json:"status"`
		Files   []models.ReceivedFile `json:"files"`
		Results int                   `json:"results"`
	}
	if err := c.doJSON(ctx, http.MethodGet, listPath("/list/receive", page, limit), nil, &out, true); err != nil {
		return nil, 0, err
	}
	return out.Files, out.Results, nil
}

func listPath(base string, page, limit int) string {
	return base + "?page=" + strconv.Itoa(page) + "&limit=" + strconv.Itoa(limit)
}

// AcceptFile submits the share password. The server answers a wrong password
// with 401, which here is a business error, not a stale session, so the
// unauthorized hook is suppressed and ErrInvalidPassword returned instead.
func (c *HTTPClient) AcceptFile(ctx context.Context, sharedID, password string) error {
	body := map[string]string{"shared_id": sharedID, "password": password}
	err := c.doJSON(ctx, http.MethodPost, "/file/accept", body, nil, false)
	if errors.Is(err, ErrUnauthorized) {
		return fmt.Errorf("%w: %s", ErrInvalidPassword, Message(err, "invalid password"))
	}
	return err
}

// RetrieveFile requests the decrypted share contents. The caller owns the
// returned body and is responsible for wrapping it in a ProgressReader.
func (c *HTTPClient) RetrieveFile(ctx context.Context, sharedID string) (*Download, error) {
	payload, err := json.Marshal(map[string]string{"shared_id": sharedID})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/file/retrieve", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.mapError(err)
	}
	if err := c.checkStatus(resp, true); err != nil {
		resp.Body.Close()
		return nil, err
	}

	return &Download{
		Body:     resp.Body,
		FileName: dispositionFileName(resp.Header.Get("Content-Disposition")),
		Size:     resp.ContentLength,
	}, nil
}

func dispositionFileName(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return params["filename"]
}

// doJSON performs one JSON round trip. authHook controls whether a 401 fires
// the unauthorized hook; only the accept call opts out.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body, out any, authHook bool) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.mapError(err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp, authHook); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// checkStatus maps non-2xx responses to errors. The body of an error
// response is read for its message field; the body of a success response is
// left for the caller.
func (c *HTTPClient) checkStatus(resp *http.Response, authHook bool) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	msg := readErrorMessage(resp.Body)

	if resp.StatusCode == http.StatusUnauthorized && authHook && c.onUnauthorized != nil {
		c.onUnauthorized()
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}

func readErrorMessage(r io.Reader) string {
	var body struct {
		Message string `json:"message"`
	}
	data, err := io.ReadAll(io.LimitReader(r, 1<<16))
	if err != nil {
		return ""
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return body.Message
}

// mapError converts transport-level failures into sentinel errors, keeping
// context cancellation visible to callers.
func (c *HTTPClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%w: %v", ErrUnavailable, uerr.Err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return fmt.Errorf("request error: %w", err)
}
