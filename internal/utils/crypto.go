package utils

import (
	"errors"
	"time"

	"github.com/fernet/fernet-go"
)

// ErrNoEncryptionKey is returned when encryption is requested but no key
// is configured.
var ErrNoEncryptionKey = errors.New("no encryption key configured")

// EncryptField encrypts a sensitive value (e.g. a patient's passport
// number) with the configured Fernet key. key is the base64-encoded key
// from ENCRYPTION_KEY.
func EncryptField(key, value string) (string, error) {
	if key == "" {
		return "", ErrNoEncryptionKey
	}
	k, err := fernet.DecodeKey(key)
	if err != nil {
		return "", err
	}
	token, err := fernet.EncryptAndSign([]byte(value), k)
	if err != nil {
		return "", err
	}
	return string(token), nil
}

// DecryptField decrypts a value produced by EncryptField. Tokens do not
// expire; the zero TTL disables Fernet's age check.
func DecryptField(key, token string) (string, error) {
	if key == "" {
		return "", ErrNoEncryptionKey
	}
	k, err := fernet.DecodeKey(key)
	if err != nil {
		return "", err
	}
	plain := fernet.VerifyAndDecrypt([]byte(token), 0*time.Second, []*fernet.Key{k})
	if plain == nil {
		return "", errors.New("invalid or corrupted token")
	}
	return string(plain), nil
}
