// Package services contains the vault's business logic: the account
// directory and the session orchestrating encryption around the record
// store.
package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/dsmelov/passvault/internal/common"
	"github.com/dsmelov/passvault/internal/cryptox"
	"github.com/dsmelov/passvault/internal/logging"
	"github.com/dsmelov/passvault/internal/models"
	"github.com/dsmelov/passvault/internal/repositories/users"
)

const saltSize = 32

// Directory manages account registration and credential checks on top of
// a users.Repository. It stores only password digests, never plaintext.
type Directory struct {
	repo users.Repository
	log  logging.Logger
}

func NewDirectory(repo users.Repository, log logging.Logger) *Directory {
	return &Directory{repo: repo, log: log}
}

// Register creates a new account. Duplicate usernames fail with
// common.ErrorAlreadyExists and leave the existing account untouched.
func (d *Directory) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password must not be empty", common.ErrorInvalidInput)
	}

	account := &models.Account{
		Username: username,
		Digest:   cryptox.HashPassword(password),
		Salt:     common.GenerateRandByteArray(saltSize),
	}
	if err := d.repo.Create(ctx, account); err != nil {
		return err
	}

	d.log.Info(ctx, "account registered", "username", username)
	return nil
}

// Authenticate verifies the claimed credentials. Unknown usernames and
// wrong passwords both fail with common.ErrorAuthenticationFailed;
// backend trouble surfaces as common.ErrorStoreUnavailable instead.
func (d *Directory) Authenticate(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password must not be empty", common.ErrorInvalidInput)
	}

	account, err := d.repo.Get(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorAuthenticationFailed
		}
		return err
	}

	digest := cryptox.HashPassword(password)
	if subtle.ConstantTimeCompare([]byte(digest), []byte(account.Digest)) != 1 {
		return common.ErrorAuthenticationFailed
	}
	return nil
}

// UserExists reports whether the username is registered.
func (d *Directory) UserExists(ctx context.Context, username string) (bool, error) {
	return d.repo.Exists(ctx, username)
}

// DeleteUser removes an account. True iff it existed.
func (d *Directory) DeleteUser(ctx context.Context, username string) (bool, error) {
	removed, err := d.repo.Delete(ctx, username)
	if err != nil {
		return false, err
	}
	if removed {
		d.log.Info(ctx, "account deleted", "username", username)
	}
	return removed, nil
}

// ListUsers returns all registered usernames in store-defined order.
func (d *Directory) ListUsers(ctx context.Context) ([]string, error) {
	return d.repo.List(ctx)
}

// Salt returns the per-account salt used for derived session keys.
func (d *Directory) Salt(ctx context.Context, username string) ([]byte, error) {
	account, err := d.repo.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	return account.Salt, nil
}
