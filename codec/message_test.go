package codec

import (
	"bytes"
	"testing"
)

func newRoundTripCodec(t *testing.T) (*Codec, *Codec) {
	t.Helper()
	// Constant-per-symbol coefficients (f_k independent of state) so this
	// small message never triggers the collision fallback.
	table := constFunTable()
	enc, err := New(Params{BitsM: 8, BitsQ: 2, FunType: 1, H1: 7, H2: 23})
	if err != nil {
		t.Fatal(err)
	}
	if err := enc.LoadCoefficients(table); err != nil {
		t.Fatal(err)
	}
	dec, err := New(Params{BitsM: 8, BitsQ: 2, FunType: 1, H1: 7, H2: 23})
	if err != nil {
		t.Fatal(err)
	}
	if err := dec.LoadCoefficients(table); err != nil {
		t.Fatal(err)
	}
	return enc, dec
}

func TestEncodeDecodeMessageRoundTrip(t *testing.T) {
	enc, dec := newRoundTripCodec(t)
	payload := []byte("Hello, world!")
	frame := enc.EncodeMessage(payload, false)
	got := dec.DecodeMessage(frame, 0, false)
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch: got %q want %q", got, payload)
	}
}

func TestEncodeDecodeMessageWithHash(t *testing.T) {
	enc, dec := newRoundTripCodec(t)
	payload := []byte("the quick brown fox")
	frame := enc.EncodeMessage(payload, true)
	got := dec.DecodeMessage(frame, 0, true)
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip with hash mismatch: got %q want %q", got, payload)
	}
	if dec.Stats().HashMismatches != 0 {
		t.Fatalf("unexpected hash mismatch count: %d", dec.Stats().HashMismatches)
	}
}

func TestEncodeEmptyPayloadFramesToTwoZeroBytes(t *testing.T) {
	enc, dec := newRoundTripCodec(t)
	frame := enc.EncodeMessage(nil, false)
	if len(frame) != 2 || frame[0] != 0 || frame[1] != 0 {
		t.Fatalf("expected {0x00,0x00} frame for empty payload, got %v", frame)
	}
	got := dec.DecodeMessage(frame, 0, false)
	if len(got) != 0 {
		t.Fatalf("expected empty decode, got %v", got)
	}
}

func TestDecodeMessageTooShortReturnsNil(t *testing.T) {
	_, dec := newRoundTripCodec(t)
	if got := dec.DecodeMessage([]byte{0x00}, 0, false); got != nil {
		t.Fatalf("expected nil for too-short frame, got %v", got)
	}
}
