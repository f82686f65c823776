package cryptox

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/dsmelov/passvault/internal/common"
)

func TestHashPassword_Deterministic(t *testing.T) {
	d1 := HashPassword("pw1")
	d2 := HashPassword("pw1")
	if d1 != d2 {
		t.Errorf("expected same digest for same input, got %s and %s", d1, d2)
	}

	// known SHA-256 of "pw1" (snapshot test)
	expected := "c592df4a86933b92addc9842402ddf198c638ea9be58916ee6e3734e1e3152f8"
	if d1 != expected {
		t.Errorf("expected %s, got %s", expected, d1)
	}
}

func TestHashPassword_DifferentInputs(t *testing.T) {
	if HashPassword("pw1") == HashPassword("pw2") {
		t.Errorf("expected different digests for different inputs")
	}
}

func TestHashPassword_EmptyInput(t *testing.T) {
	d := HashPassword("")
	if len(d) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(d))
	}
	if _, err := hex.DecodeString(d); err != nil {
		t.Errorf("digest is not valid hex: %v", err)
	}
}

func TestGenerateKey_SizeAndUniqueness(t *testing.T) {
	k1 := GenerateKey()
	k2 := GenerateKey()
	if len(k1) != KeySize || len(k2) != KeySize {
		t.Fatalf("expected %d-byte keys, got %d and %d", KeySize, len(k1), len(k2))
	}
	if bytes.Equal(k1, k2) {
		t.Errorf("two generated keys are identical; extremely unlikely")
	}
}

func TestDeriveKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt")

	key1 := DeriveKey(password, salt)
	key2 := DeriveKey(password, salt)

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}
	if len(key1) != KeySize {
		t.Errorf("expected %d-byte key, got %d", KeySize, len(key1))
	}
}

func TestDeriveKey_DifferentSalts(t *testing.T) {
	password := []byte("secret-password")

	key1 := DeriveKey(password, []byte("salt-1"))
	key2 := DeriveKey(password, []byte("salt-2"))

	if bytes.Equal(key1, key2) {
		t.Errorf("expected different results for different salts, got same")
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	key := GenerateKey()

	for _, plaintext := range []string{"s3cr3t", "", "päss wörd\nwith lines", strings.Repeat("x", 4096)} {
		token, err := Encrypt(plaintext, key)
		if err != nil {
			t.Fatalf("Encrypt: %v", err)
		}
		got, err := Decrypt(token, key)
		if err != nil {
			t.Fatalf("Decrypt: %v", err)
		}
		if got != plaintext {
			t.Errorf("round trip mismatch: got %q, want %q", got, plaintext)
		}
	}
}

func TestEncrypt_TokensDiffer(t *testing.T) {
	key := GenerateKey()
	t1, err := Encrypt("same", key)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	t2, err := Encrypt("same", key)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if t1 == t2 {
		t.Errorf("expected distinct tokens for repeated encryption of the same plaintext")
	}
}

func TestDecrypt_WrongKeyFails(t *testing.T) {
	token, err := Encrypt("s3cr3t", GenerateKey())
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	_, err = Decrypt(token, GenerateKey())
	if !errors.Is(err, common.ErrorCryptoFailure) {
		t.Fatalf("expected ErrorCryptoFailure, got %v", err)
	}
}

func TestDecrypt_MalformedTokens(t *testing.T) {
	key := GenerateKey()

	tests := []struct {
		name  string
		token string
	}{
		{"not base64", "%%%not-base64%%%"},
		{"too short", "YWJj"},
		{"empty", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decrypt(tc.token, key); !errors.Is(err, common.ErrorCryptoFailure) {
				t.Fatalf("expected ErrorCryptoFailure, got %v", err)
			}
		})
	}
}

func TestDecrypt_TamperedToken(t *testing.T) {
	key := GenerateKey()
	token, err := Encrypt("s3cr3t", key)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	// flip a character in the middle of the token
	b := []byte(token)
	mid := len(b) / 2
	if b[mid] == 'A' {
		b[mid] = 'B'
	} else {
		b[mid] = 'A'
	}

	if _, err := Decrypt(string(b), key); !errors.Is(err, common.ErrorCryptoFailure) {
		t.Fatalf("expected ErrorCryptoFailure, got %v", err)
	}
}

func TestEncrypt_BadKeySize(t *testing.T) {
	if _, err := Encrypt("x", []byte("short")); !errors.Is(err, common.ErrorCryptoFailure) {
		t.Fatalf("expected ErrorCryptoFailure for bad key size, got %v", err)
	}
}
