// Package cryptox seals credential blobs at rest with AES-GCM under a key
// derived from an operator secret.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/dmitrijs2005/tgproxy/internal/common"
	"golang.org/x/crypto/argon2"
)

// sealedPrefix tags values produced by Sealer so foreign values are rejected
// before decryption is attempted.
const sealedPrefix = "v1:"

// keySalt is fixed so that every process sharing a secret derives the same key.
var keySalt = []byte("tgproxy/session-blob/v1")

// ErrInvalidCiphertext is returned when a value was not produced by Sealer
// with the same secret.
var ErrInvalidCiphertext = errors.New("invalid ciphertext")

// DeriveKey stretches the secret into a 256-bit AES key with Argon2id.
func DeriveKey(secret []byte, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, 32)
}

// Sealer encrypts and decrypts short text values.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer derives the key from secret and prepares an AES-GCM instance.
func NewSealer(secret string) (*Sealer, error) {
	if secret == "" {
		return nil, errors.New("empty secret")
	}

	block, err := aes.NewCipher(DeriveKey([]byte(secret), keySalt))
	if err != nil {
		return nil, err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Sealer{aead: aesgcm}, nil
}

// Seal encrypts plaintext under a fresh random nonce and returns
// "v1:" + base64url(nonce || ciphertext).
func (s *Sealer) Seal(plaintext string) (string, error) {
	nonce := common.GenerateRandByteArray(s.aead.NonceSize())
	out := s.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return sealedPrefix + base64.RawURLEncoding.EncodeToString(out), nil
}

// Open reverses Seal. Values without the prefix, malformed encodings and
// authentication failures all yield ErrInvalidCiphertext.
func (s *Sealer) Open(sealed string) (string, error) {
	if !strings.HasPrefix(sealed, sealedPrefix) {
		return "", ErrInvalidCiphertext
	}

	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(sealed, sealedPrefix))
	if err != nil {
		return "", ErrInvalidCiphertext
	}

	ns := s.aead.NonceSize()
	if len(raw) < ns {
		return "", ErrInvalidCiphertext
	}

	plaintext, err := s.aead.Open(nil, raw[:ns], raw[ns:], nil)
	if err != nil {
		return "", ErrInvalidCiphertext
	}

	return string(plaintext), nil
}
