package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// ErrTamperedOrWrongKey is returned when authenticated decryption fails.
// Any bit flip in the stored ciphertext, a truncated blob, or a mismatched
// key all collapse into this error; partial plaintext is never returned.
var ErrTamperedOrWrongKey = errors.New("ciphertext tampered or wrong key")

const keySize = 32

// Engine encrypts and decrypts secret fields with AES-256-GCM. The key is
// supplied by the caller from configuration; the engine never owns key
// material of its own.
type Engine struct {
	aead cipher.AEAD
}

// NewEngine builds an Engine from a 32-byte key.
func NewEngine(key []byte) (*Engine, error) {
	if len(key) != keySize {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", keySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}

	return &Engine{aead: aead}, nil
}

// Encrypt seals plaintext under a fresh random nonce. The nonce is prefixed
// to the ciphertext and the whole blob is hex-encoded for storage.
func (e *Engine) Encrypt(plaintext []byte) (string, error) {
	nonce := make([]byte, e.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := e.aead.Seal(nonce, nonce, plaintext, nil)
	return hex.EncodeToString(ciphertext), nil
}

// Decrypt reverses Encrypt. Authentication failure of any kind yields
// ErrTamperedOrWrongKey.
func (e *Engine) Decrypt(ciphertextHex string) ([]byte, error) {
	ciphertext, err := hex.DecodeString(ciphertextHex)
	if err != nil {
		return nil, fmt.Errorf("%w: bad encoding", ErrTamperedOrWrongKey)
	}

	nonceSize := e.aead.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrTamperedOrWrongKey)
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := e.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrTamperedOrWrongKey
	}

	return plaintext, nil
}
