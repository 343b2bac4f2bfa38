package cli

import (
	"context"
	"errors"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

var errEmptyInput = errors.New("input must not be empty")

func (a *App) prompt(text string) (string, error) {
	return getSimpleText(a.reader, text, a.out)
}

func (a *App) promptRequired(text string) (string, error) {
	v, err := a.prompt(text)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", errEmptyInput
	}
	return v, nil
}

func (a *App) promptPassword(text string) (string, error) {
	pw, err := getPassword(text, a.out)
	if err != nil {
		return "", err
	}
	defer clear(pw)
	if len(pw) == 0 {
		return "", errEmptyInput
	}
	return string(pw), nil
}

// Register creates an account and signs in with it.
func (a *App) Register(ctx context.Context, args []string) error {
	username, err := a.promptRequired("Username")
	if err != nil {
		return err
	}
	password, err := a.promptPassword("Password")
	if err != nil {
		return err
	}
	fullName, err := a.prompt("Full name (optional)")
	if err != nil {
		return err
	}

	if err := a.session.Register(ctx, username, password, fullName); err != nil {
		return err
	}
	a.println("Account created. Welcome,", username)
	return a.loadAll(ctx)
}

func (a *App) Login(ctx context.Context, args []string) error {
	username, err := a.promptRequired("Username")
	if err != nil {
		return err
	}
	password, err := a.promptPassword("Password")
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, username, password); err != nil {
		return err
	}
	a.println("Login successful.")
	if a.session.MustChangePassword() {
		a.println("You must change your password before continuing (passwd).")
		return nil
	}
	return a.loadAll(ctx)
}

func (a *App) Logout(ctx context.Context, args []string) error {
	a.session.Logout(ctx)
	return nil
}

func (a *App) WhoAmI(ctx context.Context, args []string) error {
	a.println(renderUser(a.session.User()))
	if a.session.IsAdmin() {
		a.println(mutedStyle.Render("administrator"))
	}
	return nil
}

// ChangePassword asks for the old password and the new one twice.
func (a *App) ChangePassword(ctx context.Context, args []string) error {
	oldPassword, err := a.promptPassword("Current password")
	if err != nil {
		return err
	}
	newPassword, err := a.promptPassword("New password")
	if err != nil {
		return err
	}
	repeat, err := a.promptPassword("Repeat new password")
	if err != nil {
		return err
	}
	if newPassword != repeat {
		return errors.New("passwords do not match")
	}

	wasForced := a.session.MustChangePassword()
	if err := a.session.ChangePassword(ctx, oldPassword, newPassword); err != nil {
		return err
	}
	a.println("Password changed.")
	if wasForced {
		return a.loadAll(ctx)
	}
	return nil
}
