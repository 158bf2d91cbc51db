// Package cryptox implements the symmetric encryption used for audit
// payloads: AES-256-GCM with a random per-message nonce.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"

	"gradebook/internal/common"
)

// KeySize is the AES-256 key length in bytes.
const KeySize = 32

// ErrCiphertextTooShort is returned when a stored blob is shorter than
// the nonce that must prefix it.
var ErrCiphertextTooShort = errors.New("ciphertext too short")

// NewKey returns a fresh random AES-256 key.
func NewKey() []byte {
	return common.GenerateRandByteArray(KeySize)
}

// Encrypt seals plaintext with AES-GCM under key and returns a single
// opaque blob laid out as nonce||ciphertext. A new random nonce is
// generated for every call, so encrypting the same plaintext twice
// yields different blobs.
//
// The key must be a valid AES key length (16, 24, or 32 bytes).
func Encrypt(plaintext, key []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := common.GenerateRandByteArray(aesgcm.NonceSize())

	// Seal appends to the nonce so the result is one self-contained blob.
	return aesgcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt opens a blob produced by Encrypt with the same key. It fails
// if the blob is truncated, was sealed under a different key, or was
// modified after sealing (GCM authentication).
func Decrypt(blob, key []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if len(blob) < aesgcm.NonceSize() {
		return nil, ErrCiphertextTooShort
	}
	nonce, ciphertext := blob[:aesgcm.NonceSize()], blob[aesgcm.NonceSize():]

	return aesgcm.Open(nil, nonce, ciphertext, nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
