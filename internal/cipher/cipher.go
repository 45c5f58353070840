// Package cipher encrypts student passwords at rest.
//
// Tokens use the Fernet format (AES-128-CBC + HMAC-SHA256, url-safe base64),
// so rows written by earlier deployments with the same key stay readable.
package cipher

import (
	"errors"
	"fmt"

	"github.com/fernet/fernet-go"
)

var (
	// ErrDecryption is returned for malformed tokens and key mismatches.
	ErrDecryption = errors.New("unable to decrypt credential")
	// ErrInvalidKey is returned when a configured key cannot be decoded.
	ErrInvalidKey = errors.New("invalid encryption key")
)

// A negative ttl disables the token age check: stored passwords never expire.
const noExpiry = -1

// Cipher encrypts with one primary key and decrypts with the primary key or
// any of the previous keys.
type Cipher struct {
	primary *fernet.Key
	keys    []*fernet.Key
}

// New builds a Cipher. previous keys are only used for decryption, which
// lets operators rotate KEY before every row has been re-encrypted.
func New(key string, previous ...string) (*Cipher, error) {
	primary, err := fernet.DecodeKey(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	keys := []*fernet.Key{primary}
	for i, p := range previous {
		k, err := fernet.DecodeKey(p)
		if err != nil {
			return nil, fmt.Errorf("%w: previous key #%d: %v", ErrInvalidKey, i+1, err)
		}
		keys = append(keys, k)
	}

	return &Cipher{primary: primary, keys: keys}, nil
}

// Encrypt returns a fresh token for plaintext. Two calls with the same input
// produce different tokens.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	tok, err := fernet.EncryptAndSign([]byte(plaintext), c.primary)
	if err != nil {
		return "", fmt.Errorf("encrypt credential: %w", err)
	}
	return string(tok), nil
}

// Decrypt recovers the plaintext of a token produced by Encrypt.
func (c *Cipher) Decrypt(token string) (string, error) {
	msg := fernet.VerifyAndDecrypt([]byte(token), noExpiry, c.keys)
	if msg == nil {
		return "", ErrDecryption
	}
	return string(msg), nil
}

// Reencrypt decrypts token with any known key and encrypts it again with
// the primary key.
func (c *Cipher) Reencrypt(token string) (string, error) {
	plain, err := c.Decrypt(token)
	if err != nil {
		return "", err
	}
	return c.Encrypt(plain)
}

// GenerateKey returns a new random key in its encoded form.
func GenerateKey() (string, error) {
	var k fernet.Key
	if err := k.Generate(); err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	return k.Encode(), nil
}
