package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dsmelov/passvault/internal/common"
	"github.com/dsmelov/passvault/internal/cryptox"
	"github.com/dsmelov/passvault/internal/logging"
	"github.com/dsmelov/passvault/internal/models"
	"github.com/dsmelov/passvault/internal/repositories/records"
)

// KeyMode selects how a session obtains its encryption key on login.
type KeyMode string

const (
	// KeyModeEphemeral generates a fresh random key per login. Secrets
	// sealed in one session cannot be revealed in a later one.
	KeyModeEphemeral KeyMode = "ephemeral"

	// KeyModeDerived derives the key from the login password and the
	// account salt, so secrets stay readable across logins.
	KeyModeDerived KeyMode = "derived"
)

// Session is one authenticated vault context binding a single user to a
// single encryption key. It starts anonymous; Login moves it to the
// authenticated state and Logout back. A Session must not be shared
// across goroutines; each login belongs to its own Session value.
type Session struct {
	directory *Directory
	records   records.Repository
	log       logging.Logger
	keyMode   KeyMode

	user string
	key  []byte
}

func NewSession(directory *Directory, repo records.Repository, keyMode KeyMode, log logging.Logger) *Session {
	if keyMode == "" {
		keyMode = KeyModeEphemeral
	}
	return &Session{directory: directory, records: repo, keyMode: keyMode, log: log}
}

// IsAuthenticated reports whether the session holds a logged-in user.
func (s *Session) IsAuthenticated() bool {
	return s.user != ""
}

// CurrentUser returns the logged-in username, or "" while anonymous.
func (s *Session) CurrentUser() string {
	return s.user
}

// Register creates an account; available in any state.
func (s *Session) Register(ctx context.Context, username, password string) error {
	return s.directory.Register(ctx, username, password)
}

// Login authenticates the user and establishes the session key. On
// failure the session stays anonymous. Logging in over an existing
// authenticated session discards its binding first.
func (s *Session) Login(ctx context.Context, username, password string) error {
	if s.IsAuthenticated() {
		s.Logout(ctx)
	}

	if err := s.directory.Authenticate(ctx, username, password); err != nil {
		return err
	}

	var key []byte
	switch s.keyMode {
	case KeyModeDerived:
		salt, err := s.directory.Salt(ctx, username)
		if err != nil {
			return err
		}
		key = cryptox.DeriveKey([]byte(password), salt)
	default:
		key = cryptox.GenerateKey()
	}

	s.user = username
	s.key = key
	s.log.Info(ctx, "session opened", "username", username, "key_mode", string(s.keyMode))
	return nil
}

// Logout discards the user binding and wipes the key material. The key is
// not retrievable afterwards.
func (s *Session) Logout(ctx context.Context) {
	if !s.IsAuthenticated() {
		return
	}
	s.log.Info(ctx, "session closed", "username", s.user)
	common.WipeByteArray(s.key)
	s.user = ""
	s.key = nil
}

// AddSecret encrypts the plaintext under the session key and stores it
// under the current user. Returns the new record id.
func (s *Session) AddSecret(ctx context.Context, label, plaintext string) (string, error) {
	if err := s.requireAuth(); err != nil {
		return "", err
	}
	if label == "" {
		return "", fmt.Errorf("%w: label must not be empty", common.ErrorInvalidInput)
	}

	ciphertext, err := cryptox.Encrypt(plaintext, s.key)
	if err != nil {
		return "", err
	}
	return s.records.Create(ctx, s.user, label, ciphertext)
}

// ListSecrets returns the current user's records with payloads left
// encrypted; plaintext is only produced by RevealSecret.
func (s *Session) ListSecrets(ctx context.Context) ([]models.SecretRecord, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}
	return s.records.ListByOwner(ctx, s.user)
}

// RevealSecret decrypts one owned record. A record owned by another user
// fails with common.ErrorAccessDenied no matter how its id was obtained;
// a ciphertext the session key cannot open fails with
// common.ErrorCryptoFailure rather than leaking the raw token.
func (s *Session) RevealSecret(ctx context.Context, id string) (string, error) {
	if err := s.requireAuth(); err != nil {
		return "", err
	}

	record, err := s.getOwned(ctx, id)
	if err != nil {
		return "", err
	}
	return cryptox.Decrypt(record.Ciphertext, s.key)
}

// UpdateSecret re-labels and re-encrypts one owned record under the
// current session key.
func (s *Session) UpdateSecret(ctx context.Context, id, newLabel, newPlaintext string) error {
	if err := s.requireAuth(); err != nil {
		return err
	}
	if newLabel == "" {
		return fmt.Errorf("%w: label must not be empty", common.ErrorInvalidInput)
	}

	if _, err := s.getOwned(ctx, id); err != nil {
		return err
	}

	ciphertext, err := cryptox.Encrypt(newPlaintext, s.key)
	if err != nil {
		return err
	}

	ok, err := s.records.Update(ctx, id, newLabel, ciphertext)
	if err != nil {
		return err
	}
	if !ok {
		// raced with a concurrent delete
		return common.ErrorNotFound
	}
	return nil
}

// DeleteSecret removes one owned record.
func (s *Session) DeleteSecret(ctx context.Context, id string) error {
	if err := s.requireAuth(); err != nil {
		return err
	}

	if _, err := s.getOwned(ctx, id); err != nil {
		return err
	}

	ok, err := s.records.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrorNotFound
	}
	return nil
}

func (s *Session) requireAuth() error {
	if !s.IsAuthenticated() {
		return common.ErrorNotAuthenticated
	}
	return nil
}

func (s *Session) getOwned(ctx context.Context, id string) (*models.SecretRecord, error) {
	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	if record.Owner != s.user {
		s.log.Warn(ctx, "ownership check failed", "username", s.user, "record_id", id)
		return nil, common.ErrorAccessDenied
	}
	return record, nil
}
