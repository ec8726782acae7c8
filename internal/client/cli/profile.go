package cli

import (
	"context"
	"fmt"
	"os"
)

// WhoAmI shows the profile of the current user.
func (a *App) WhoAmI(ctx context.Context) error {
	if !a.enterProtected(ctx, "/profile") {
		return nil
	}
	u := a.auth.User()
	if u == nil {
		printlnFn("Not logged in")
		return nil
	}
	printlnFn(fmt.Sprintf("%s <%s>", u.Name, u.Email))
	return nil
}

// SetName updates the display name. The cached user is patched only after
// the server accepted the change.
func (a *App) SetName(ctx context.Context) error {
	if !a.enterProtected(ctx, "/profile") {
		return nil
	}

	name, err := getSimpleText(a.reader, "Enter new name", os.Stdout)
	if err != nil {
		return err
	}

	if !a.auth.UpdateName(ctx, name) {
		printlnFn("Failed: " + a.auth.Err())
		return nil
	}
	printlnFn("Name updated")
	return nil
}

// SetPassword changes the account password. Pass-through: nothing cached
// changes on success.
func (a *App) SetPassword(ctx context.Context) error {
	if !a.enterProtected(ctx, "/profile") {
		return nil
	}

	oldPassword, err := getPassword("Current password", os.Stdout)
	if err != nil {
		return err
	}
	newPassword, err := getPassword("New password", os.Stdout)
	if err != nil {
		return err
	}
	newPasswordConfirm, err := getPassword("Confirm new password", os.Stdout)
	if err != nil {
		return err
	}

	if !a.auth.UpdatePassword(ctx, oldPassword, newPassword, newPasswordConfirm) {
		printlnFn("Failed: " + a.auth.Err())
		return nil
	}
	printlnFn("Password updated")
	return nil
}
