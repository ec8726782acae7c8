package cli

import (
	"context"
	"os"

	"github.com/aerofy/aerofy-cli/internal/client/guard"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates. Success is defined by
// the store's verify outcome, not the login call itself. On success the
// shell jumps to the route the guard redirected away from, or home.
func (a *App) Login(ctx context.Context) error {
	if !a.navigate(guard.AuthPath) {
		// Already authenticated; the guard sent us home.
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}

	if !a.auth.Login(ctx, email, password) {
		printlnFn("Login failed: " + a.auth.Err())
		return nil
	}

	printlnFn("Login successful")
	a.afterLogin()
	return nil
}

// Register prompts for account details and registers. Same session
// confirmation rule as Login.
func (a *App) Register(ctx context.Context) error {
	if !a.navigate(guard.AuthPath) {
		return nil
	}

	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	passwordConfirm, err := getPassword("Confirm password", os.Stdout)
	if err != nil {
		return err
	}

	if !a.auth.Register(ctx, name, email, password, passwordConfirm) {
		printlnFn("Registration failed: " + a.auth.Err())
		return nil
	}

	printlnFn("Registration successful")
	a.afterLogin()
	return nil
}

// Logout clears the session remotely (best effort) and locally, then
// returns the shell to the auth view.
func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout(ctx)
	a.route = guard.AuthPath
	printlnFn("Logged out")
	return nil
}
