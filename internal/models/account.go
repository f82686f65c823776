// Package models defines the persisted entities of the vault.
package models

// Account is one registered vault user.
//
// Digest is the hex-encoded one-way hash of the password; the plaintext is
// never stored. Salt is random per-account material used by the derived-key
// session mode and is not secret.
type Account struct {
	Username string
	Digest   string
	Salt     []byte
}
