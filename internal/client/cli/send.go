package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Send uploads the given files to one recipient. The recipient address is
// validated against the server first (advisory), then the store performs
// its own hard validation before the network call.
func (a *App) Send(ctx context.Context, args []string) error {
	if !a.enterProtected(ctx, "/send") {
		return nil
	}
	if len(args) == 0 {
		printlnFn("Usage: send <file> [file...]")
		return nil
	}

	recipient, err := getSimpleText(a.reader, "Recipient email", os.Stdout)
	if err != nil {
		return err
	}
	if v := a.send.ValidateEmail(ctx, recipient); !v.IsValid {
		printlnFn("Warning: " + v.Message)
	}

	password, err := getPassword("Share password", os.Stdout)
	if err != nil {
		return err
	}

	days, err := getSimpleText(a.reader, "Expires in days (default 7)", os.Stdout)
	if err != nil {
		return err
	}
	expireDays := 7
	if days != "" {
		if n, convErr := strconv.Atoi(days); convErr == nil && n > 0 {
			expireDays = n
		}
	}
	expiration := time.Now().AddDate(0, 0, expireDays)

	ok := a.send.UploadFiles(ctx, args, recipient, password, expiration)
	if !ok {
		printlnFn("Upload failed: " + a.send.Err())
		return nil
	}

	printlnFn(fmt.Sprintf("Uploaded %d file(s) to %s (progress %d%%)", len(args), recipient, a.send.Progress()))
	a.send.ResetProgress()
	return nil
}

// Sent lists one page of the transfer history. An optional page argument
// moves the cursor; the list is fully replaced on every fetch.
func (a *App) Sent(ctx context.Context, args []string) error {
	if !a.enterProtected(ctx, "/send") {
		return nil
	}
	if page, ok := parsePage(args); ok {
		a.sentPage = page
	}

	if !a.send.GetRecentFiles(ctx, a.sentPage, defaultPageSize) {
		printlnFn("Failed: " + a.send.Err())
		return nil
	}

	files := a.send.RecentFiles()
	if len(files) == 0 {
		printlnFn("No sent files")
		return nil
	}
	printlnFn(fmt.Sprintf("Sent files (page %d, %d total):", a.sentPage, a.send.TotalFiles()))
	for _, f := range files {
		printlnFn(fmt.Sprintf("  %s -> %s (expires %s)", f.FileName, f.RecipientEmail, f.ExpirationDate))
	}
	return nil
}

func parsePage(args []string) (int, bool) {
	if len(args) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
