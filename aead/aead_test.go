package aead

import (
	"bytes"
	"testing"
)

func testKey() []byte {
	key := make([]byte, KeySize)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

func TestSealOpenRoundTrip(t *testing.T) {
	s, err := NewSealer(testKey())
	if err != nil {
		t.Fatal(err)
	}
	o, err := NewOpener(testKey())
	if err != nil {
		t.Fatal(err)
	}

	plaintext := []byte("codec output bound for the wire")
	aad := []byte("session-id-1")

	sealed, err := s.Seal(plaintext, aad)
	if err != nil {
		t.Fatal(err)
	}
	if len(sealed) <= len(plaintext) {
		t.Fatalf("sealed payload should carry nonce+tag overhead, got %d bytes for %d byte plaintext", len(sealed), len(plaintext))
	}

	got, err := o.Open(sealed, aad)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Errorf("got %q want %q", got, plaintext)
	}
}

func TestOpenRejectsWrongAAD(t *testing.T) {
	s, _ := NewSealer(testKey())
	o, _ := NewOpener(testKey())

	sealed, err := s.Seal([]byte("secret"), []byte("aad-a"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := o.Open(sealed, []byte("aad-b")); err == nil {
		t.Fatal("expected authentication failure with mismatched AAD")
	}
}

func TestOpenRejectsTamperedCiphertext(t *testing.T) {
	s, _ := NewSealer(testKey())
	o, _ := NewOpener(testKey())

	sealed, err := s.Seal([]byte("secret payload"), nil)
	if err != nil {
		t.Fatal(err)
	}
	sealed[len(sealed)-1] ^= 0xFF
	if _, err := o.Open(sealed, nil); err == nil {
		t.Fatal("expected authentication failure on tampered ciphertext")
	}
}

func TestSealProducesFreshNoncePerCall(t *testing.T) {
	s, _ := NewSealer(testKey())
	a, err := s.Seal([]byte("same plaintext"), nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.Seal([]byte("same plaintext"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(a[:NonceSize], b[:NonceSize]) {
		t.Error("expected distinct nonces across calls")
	}
}
