// Package aesgcm provides credential encryption using AES-256-GCM.
// Stored provider API keys are encrypted with a process-wide key; a
// decryption failure is reported so that an unusable credential is
// treated as absent rather than failing the request or leaking the
// stored ciphertext as a key.
package aesgcm

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/lexvault-labs/lexvault/internal/core/ports/driven"
)

// Ensure Cipher implements the interface.
var _ driven.CredentialCipher = (*Cipher)(nil)

// Cipher encrypts and decrypts short credential strings.
type Cipher struct {
	aead cipher.AEAD
}

// New creates a cipher from a secret of any length; the key is the
// SHA-256 digest of the secret. An empty secret is rejected so that a
// missing key configuration cannot silently store plaintext under a
// predictable key.
func New(secret string) (*Cipher, error) {
	if secret == "" {
		return nil, fmt.Errorf("aesgcm: encryption secret is required")
	}

	key := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("aesgcm: create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("aesgcm: create GCM: %w", err)
	}

	return &Cipher{aead: aead}, nil
}

// Encrypt seals plaintext under a fresh random nonce and returns
// base64(nonce || ciphertext).
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("aesgcm: generate nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Any failure (wrong key, truncated value,
// or a value that was never encrypted) reports false; the ciphertext
// is never returned as if it were a key.
func (c *Cipher) Decrypt(value string) (string, bool) {
	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return "", false
	}
	if len(raw) < c.aead.NonceSize() {
		return "", false
	}

	nonce, sealed := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", false
	}
	return string(plaintext), true
}
