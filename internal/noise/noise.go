// Package noise provides test-only byte and fragment corruption helpers
// used to exercise the container scanner's noise tolerance. It is not
// part of the public API.
package noise

import "math/rand"

// RandomBytes returns n pseudo-random bytes from rng.
func RandomBytes(rng *rand.Rand, n int) []byte {
	b := make([]byte, n)
	rng.Read(b)
	return b
}

// CorruptFragment returns a copy of frag with one random byte flipped at a
// position for which avoid returns false (so callers can avoid corrupting
// specific bytes, e.g. to leave a marker intact while corrupting the data
// field). After 32 rejected positions it returns the copy unchanged.
func CorruptFragment(rng *rand.Rand, frag []byte, avoid func(pos int) bool) []byte {
	corrupted := make([]byte, len(frag))
	copy(corrupted, frag)
	for attempts := 0; attempts < 32; attempts++ {
		pos := rng.Intn(len(corrupted))
		if avoid != nil && avoid(pos) {
			continue
		}
		corrupted[pos] ^= byte(1 + rng.Intn(255))
		return corrupted
	}
	return corrupted
}

// PartialMarker returns a slice the size of a full marker where only the
// first keep bytes match marker and the rest are random — simulating a
// truncated/garbled marker the scanner must reject.
func PartialMarker(rng *rand.Rand, marker []byte, keep int) []byte {
	out := make([]byte, len(marker))
	copy(out, marker[:keep])
	copy(out[keep:], RandomBytes(rng, len(marker)-keep))
	return out
}
