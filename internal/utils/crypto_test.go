package utils

import (
	"errors"
	"testing"

	"github.com/fernet/fernet-go"
)

func generateKey(t *testing.T) string {
	t.Helper()
	var k fernet.Key
	if err := k.Generate(); err != nil {
		t.Fatalf("generating key: %v", err)
	}
	return k.Encode()
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := generateKey(t)

	token, err := EncryptField(key, "AB1234567")
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	if token == "AB1234567" {
		t.Fatal("token must not equal the plaintext")
	}

	plain, err := DecryptField(key, token)
	if err != nil {
		t.Fatalf("decrypt failed: %v", err)
	}
	if plain != "AB1234567" {
		t.Fatalf("round trip mismatch: got %q", plain)
	}
}

func TestDecryptWithWrongKey(t *testing.T) {
	token, err := EncryptField(generateKey(t), "secret")
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	if _, err := DecryptField(generateKey(t), token); err == nil {
		t.Fatal("decrypting with a different key must fail")
	}
}

func TestDecryptCorruptedToken(t *testing.T) {
	if _, err := DecryptField(generateKey(t), "not-a-token"); err == nil {
		t.Fatal("corrupted token must fail")
	}
}

func TestMissingKey(t *testing.T) {
	if _, err := EncryptField("", "x"); !errors.Is(err, ErrNoEncryptionKey) {
		t.Fatalf("expected ErrNoEncryptionKey, got %v", err)
	}
	if _, err := DecryptField("", "x"); !errors.Is(err, ErrNoEncryptionKey) {
		t.Fatalf("expected ErrNoEncryptionKey, got %v", err)
	}
}
