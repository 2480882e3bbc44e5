// Package encryption protects the backend bearer token at rest. The
// session store is the only place the token is persisted; sealing it
// means a leaked Redis dump does not hand out live credentials.
package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidCiphertext is returned when a sealed value cannot be opened,
// either because it is corrupt or was sealed with a different key.
var ErrInvalidCiphertext = errors.New("invalid ciphertext")

// TokenSealer seals and opens short secrets with AES-256-GCM. The key
// is derived from the configured passphrase; a fresh nonce is generated
// per seal, prepended to the ciphertext.
type TokenSealer struct {
	aead cipher.AEAD
}

// NewTokenSealer derives a sealer from a passphrase. An empty
// passphrase is rejected; callers that run without one should skip
// sealing entirely rather than seal with a guessable key.
func NewTokenSealer(passphrase string) (*TokenSealer, error) {
	if passphrase == "" {
		return nil, errors.New("sealing passphrase must not be empty")
	}

	key := sha256.Sum256([]byte(passphrase))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize GCM: %w", err)
	}
	return &TokenSealer{aead: aead}, nil
}

// Seal encrypts a plaintext secret into a base64 string. Sealing an
// empty string yields an empty string.
func (s *TokenSealer) Seal(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := s.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open decrypts a value produced by Seal.
func (s *TokenSealer) Open(sealed string) (string, error) {
	if sealed == "" {
		return "", nil
	}

	data, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	nonceSize := s.aead.NonceSize()
	if len(data) < nonceSize {
		return "", ErrInvalidCiphertext
	}

	plaintext, err := s.aead.Open(nil, data[:nonceSize], data[nonceSize:], nil)
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	return string(plaintext), nil
}
