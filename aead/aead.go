// Package aead supplies the session-encryption collaborator the hybrid
// CLI pipeline composes with the codec: the digital codec's output is
// obfuscated and error-resilient but makes no confidentiality or
// integrity claim, so the hybrid pipeline (cmd/ringsend -hybrid) seals
// the file bytes with an AEAD and the transfer session then chunks and
// codec-encodes the sealed blob.
package aead

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize and NonceSize match the IETF ChaCha20-Poly1305 construction
// (12-byte nonce), the same variant used by the original implementation.
const (
	KeySize   = chacha20poly1305.KeySize
	NonceSize = chacha20poly1305.NonceSize
)

// Sealer seals plaintext with a fixed key, generating a fresh random
// nonce per call and prefixing it to the ciphertext.
type Sealer struct {
	aead cipherAEAD
}

// Opener reverses Sealer: it expects the nonce prefixed to the
// ciphertext, as Sealer produces it.
type Opener struct {
	aead cipherAEAD
}

type cipherAEAD interface {
	Seal(dst, nonce, plaintext, additionalData []byte) []byte
	Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error)
	NonceSize() int
	Overhead() int
}

// NewSealer builds a Sealer from a 32-byte key.
func NewSealer(key []byte) (*Sealer, error) {
	a, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("aead: %w", err)
	}
	return &Sealer{aead: a}, nil
}

// NewOpener builds an Opener from a 32-byte key.
func NewOpener(key []byte) (*Opener, error) {
	a, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("aead: %w", err)
	}
	return &Opener{aead: a}, nil
}

// Seal encrypts plaintext, authenticating aad, and returns
// nonce||ciphertext||tag.
func (s *Sealer) Seal(plaintext, aad []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("aead: generating nonce: %w", err)
	}
	out := make([]byte, 0, len(nonce)+len(plaintext)+s.aead.Overhead())
	out = append(out, nonce...)
	return s.aead.Seal(out, nonce, plaintext, aad), nil
}

// Open reverses Seal: sealed must be nonce||ciphertext||tag as Seal
// produced it.
func (o *Opener) Open(sealed, aad []byte) ([]byte, error) {
	n := o.aead.NonceSize()
	if len(sealed) < n {
		return nil, errors.New("aead: sealed payload shorter than nonce")
	}
	nonce, ciphertext := sealed[:n], sealed[n:]
	return o.aead.Open(nil, nonce, ciphertext, aad)
}
