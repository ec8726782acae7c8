package cli

import (
	"context"
	"fmt"
	"os"
)

// Pending lists shares addressed to the current user that still need a
// password.
func (a *App) Pending(ctx context.Context, args []string) error {
	if !a.enterProtected(ctx, "/receive") {
		return nil
	}
	if page, ok := parsePage(args); ok {
		a.pendingPage = page
	}

	if !a.receive.GetPendingFiles(ctx, a.pendingPage, defaultPageSize) {
		printlnFn("Failed: " + a.receive.Err())
		return nil
	}

	files := a.receive.PendingFiles()
	if len(files) == 0 {
		printlnFn("No pending files")
		return nil
	}
	printlnFn(fmt.Sprintf("Pending files (page %d, %d total):", a.pendingPage, a.receive.TotalPendingFiles()))
	for _, f := range files {
		printlnFn(fmt.Sprintf("  %s  %s from %s (expires %s)", f.SharedID, f.FileName, f.SenderEmail, f.ExpirationDate))
	}
	return nil
}

// Received lists accepted shares available for download.
func (a *App) Received(ctx context.Context, args []string) error {
	if !a.enterProtected(ctx, "/receive") {
		return nil
	}
	if page, ok := parsePage(args); ok {
		a.receivedPage = page
	}

	if !a.receive.GetReceivedFiles(ctx, a.receivedPage, defaultPageSize) {
		printlnFn("Failed: " + a.receive.Err())
		return nil
	}

	files := a.receive.ReceivedFiles()
	if len(files) == 0 {
		printlnFn("No received files")
		return nil
	}
	printlnFn(fmt.Sprintf("Received files (page %d, %d total):", a.receivedPage, a.receive.TotalReceivedFiles()))
	for _, f := range files {
		printlnFn(fmt.Sprintf("  %s  %s from %s (expires %s)", f.SharedID, f.FileName, f.SenderEmail, f.ExpirationDate))
	}
	return nil
}

// Accept supplies the share password for a pending file. After a successful
// accept both lists are re-fetched to reconcile the optimistic removal.
func (a *App) Accept(ctx context.Context, args []string) error {
	if !a.enterProtected(ctx, "/receive") {
		return nil
	}
	if len(args) == 0 {
		printlnFn("Usage: accept <shared_id>")
		return nil
	}
	sharedID := args[0]

	password, err := getPassword("Share password", os.Stdout)
	if err != nil {
		return err
	}

	if !a.receive.AcceptFile(ctx, sharedID, password) {
		printlnFn("Accept failed: " + a.receive.Err())
		return nil
	}

	printlnFn("File accepted")
	a.receive.GetPendingFiles(ctx, a.pendingPage, defaultPageSize)
	a.receive.GetReceivedFiles(ctx, a.receivedPage, defaultPageSize)
	return nil
}

// Download retrieves an accepted share into the download directory. An
// optional second argument overrides the fallback file name used when the
// server sends no Content-Disposition.
func (a *App) Download(ctx context.Context, args []string) error {
	if !a.enterProtected(ctx, "/receive") {
		return nil
	}
	if len(args) == 0 {
		printlnFn("Usage: download <shared_id> [name]")
		return nil
	}
	sharedID := args[0]
	fallbackName := ""
	if len(args) > 1 {
		fallbackName = args[1]
	}

	path, ok := a.receive.DownloadFile(ctx, sharedID, fallbackName)
	if !ok {
		printlnFn("Download failed: " + a.receive.Err())
		return nil
	}
	printlnFn("Saved to " + path)
	return nil
}
