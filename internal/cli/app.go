// Package cli implements the interactive vault client: prompt helpers, a
// command REPL, and the startup wiring connecting the session to its
// backing stores. It is a thin I/O layer; every outcome comes from the
// session API.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dsmelov/passvault/internal/common"
	"github.com/dsmelov/passvault/internal/services"
)

const opTimeout = 5 * time.Second

type App struct {
	session *services.Session
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(session *services.Session, in io.Reader, out io.Writer) *App {
	return &App{session: session, reader: bufio.NewReader(in), out: out}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) status() string {
	if a.session.IsAuthenticated() {
		return a.session.CurrentUser()
	}
	return "anonymous"
}

func (a *App) Register(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := a.session.Register(ctx, username, string(password)); err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintln(a.out, "Registered. You can log in now.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := a.session.Login(ctx, username, string(password)); err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", username)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) Add(ctx context.Context) error {
	label, err := GetSimpleText(a.reader, "Enter a name for the secret (e.g. service)", a.out)
	if err != nil {
		return err
	}
	secret, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(secret)

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	id, err := a.session.AddSecret(ctx, label, string(secret))
	if err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintf(a.out, "Stored with id %s\n", id)
	return nil
}

func (a *App) List(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	list, err := a.session.ListSecrets(ctx)
	if err != nil {
		a.report(err)
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No secrets stored yet.")
		return nil
	}
	for _, record := range list {
		fmt.Fprintf(a.out, "%s  %s  (updated %s)\n",
			record.ID, record.Label, record.UpdatedAt.Format(time.RFC3339))
	}
	return nil
}

func (a *App) Show(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter secret id", a.out)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	plaintext, err := a.session.RevealSecret(ctx, id)
	if err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintln(a.out, plaintext)
	return nil
}

func (a *App) Update(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter secret id", a.out)
	if err != nil {
		return err
	}
	label, err := GetSimpleText(a.reader, "Enter new name", a.out)
	if err != nil {
		return err
	}
	secret, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(secret)

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := a.session.UpdateSecret(ctx, id, label, string(secret)); err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintln(a.out, "Updated.")
	return nil
}

func (a *App) Delete(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter secret id", a.out)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := a.session.DeleteSecret(ctx, id); err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}

// report translates sentinel errors into user-facing messages.
func (a *App) report(err error) {
	switch {
	case errors.Is(err, common.ErrorAlreadyExists):
		fmt.Fprintln(a.out, "That username is already taken.")
	case errors.Is(err, common.ErrorAuthenticationFailed):
		fmt.Fprintln(a.out, "Wrong username or password.")
	case errors.Is(err, common.ErrorNotAuthenticated):
		fmt.Fprintln(a.out, "Log in first.")
	case errors.Is(err, common.ErrorNotFound):
		fmt.Fprintln(a.out, "No such secret.")
	case errors.Is(err, common.ErrorAccessDenied):
		fmt.Fprintln(a.out, "Access denied.")
	case errors.Is(err, common.ErrorCryptoFailure):
		fmt.Fprintln(a.out, "Cannot decrypt this secret with the current session key.")
	case errors.Is(err, common.ErrorInvalidInput):
		fmt.Fprintln(a.out, "Invalid input:", err)
	case errors.Is(err, common.ErrorStoreUnavailable):
		fmt.Fprintln(a.out, "Backing store unavailable, try again later.")
	default:
		fmt.Fprintln(a.out, "Error:", err)
	}
}
