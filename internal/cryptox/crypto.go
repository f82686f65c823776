// Package cryptox implements the cryptographic primitives of the vault:
// the password digest used by the account directory, the symmetric cipher
// protecting secret payloads at rest, and the key derivation used by the
// derived-key session mode.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/dsmelov/passvault/internal/common"
)

// KeySize is the length in bytes of a session key (AES-256).
const KeySize = 32

const nonceSize = 12

// HashPassword returns the hex-encoded SHA-256 digest of the plaintext
// password. Deterministic and total: same input always yields the same
// digest, any byte string is accepted.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// GenerateKey returns a fresh random session key. The key is never
// derivable from the username, the password or any public value.
func GenerateKey() []byte {
	return common.GenerateRandByteArray(KeySize)
}

// DeriveKey derives a session key from a password and a per-account salt
// using Argon2id. Same password and salt always produce the same key, so
// secrets encrypted under a derived key stay readable across logins.
func DeriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, KeySize)
}

// Encrypt seals the plaintext under key with AES-256-GCM and returns an
// opaque token: base64(nonce || ciphertext). A new random nonce is
// generated on every call, so encrypting the same plaintext twice yields
// different tokens.
func Encrypt(plaintext string, key []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorCryptoFailure, err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorCryptoFailure, err)
	}

	nonce := common.GenerateRandByteArray(nonceSize)
	sealed := aesgcm.Seal(nonce, nonce, []byte(plaintext), nil)

	return base64.URLEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a token produced by Encrypt. If the token is malformed,
// truncated, tampered with, or was sealed under a different key, Decrypt
// returns an error matching common.ErrorCryptoFailure. It never returns
// garbled plaintext.
func Decrypt(token string, key []byte) (string, error) {
	sealed, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorCryptoFailure, err)
	}
	if len(sealed) < nonceSize {
		return "", fmt.Errorf("%w: token too short", common.ErrorCryptoFailure)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorCryptoFailure, err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorCryptoFailure, err)
	}

	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorCryptoFailure, err)
	}

	return string(plaintext), nil
}
