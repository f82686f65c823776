// Package users persists account verification material in a key-value
// backend keyed by username.
package users

import (
	"context"

	"github.com/dsmelov/passvault/internal/models"
)

// Repository is the durable store behind the account directory.
//
// Implementations report infrastructure problems (connectivity, timeouts)
// as errors matching common.ErrorStoreUnavailable, distinct from the
// normal common.ErrorNotFound / common.ErrorAlreadyExists outcomes.
type Repository interface {
	// Create stores a new account. Fails with common.ErrorAlreadyExists
	// if the username is taken; no side effect in that case.
	Create(ctx context.Context, account *models.Account) error

	// Get loads an account by username or common.ErrorNotFound.
	Get(ctx context.Context, username string) (*models.Account, error)

	// Exists reports whether the username is registered.
	Exists(ctx context.Context, username string) (bool, error)

	// Delete removes an account. The bool is true iff an account
	// existed and was removed.
	Delete(ctx context.Context, username string) (bool, error)

	// List returns all registered usernames in store-defined order.
	List(ctx context.Context) ([]string, error)
}
