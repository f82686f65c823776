// Package records persists encrypted secret records in a document-oriented
// backend, each keyed by a store-generated unique id.
package records

import (
	"context"

	"github.com/dsmelov/passvault/internal/models"
)

// Repository is the durable store behind the vault's secret records.
//
// The store does not enforce ownership: callers see every record they ask
// for by id, and the session layer is responsible for rejecting access to
// records owned by someone else. Infrastructure problems surface as errors
// matching common.ErrorStoreUnavailable, distinct from not-found outcomes.
type Repository interface {
	// Create inserts a record and returns its fresh unique id.
	Create(ctx context.Context, owner, label, ciphertext string) (string, error)

	// ListByOwner returns every record with the given owner. An owner
	// with no records yields an empty slice, not an error.
	ListByOwner(ctx context.Context, owner string) ([]models.SecretRecord, error)

	// GetByID loads one record or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.SecretRecord, error)

	// Update replaces label and ciphertext and bumps UpdatedAt. The bool
	// is true iff a record with that id existed; a missing id is a
	// normal false outcome, not an error.
	Update(ctx context.Context, id, label, ciphertext string) (bool, error)

	// Delete removes a record. The bool is true iff it existed.
	Delete(ctx context.Context, id string) (bool, error)
}
