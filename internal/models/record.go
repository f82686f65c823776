package models

import "time"

// SecretRecord is one stored, owner-scoped, encrypted named secret.
//
// Ciphertext is an opaque token produced by the secret cipher; it is only
// decryptable with the session key that sealed it. ID is assigned by the
// record store and stable for the record's lifetime.
type SecretRecord struct {
	ID         string
	Owner      string
	Label      string
	Ciphertext string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
