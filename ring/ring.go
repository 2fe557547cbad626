// Package ring implements signed two's-complement arithmetic modulo 2^M,
// the carrier algebra for the digital codec's coding functions.
package ring

import "fmt"

// Ring performs wrap/add/mul over the signed M-bit ring [-2^(M-1), 2^(M-1)).
type Ring struct {
	bitsM uint
	mask  uint64
	half  int64 // 2^(M-1)
	mod   int64 // 2^M
}

// New builds a Ring for word width bitsM, which must be in [1,31].
func New(bitsM int) (Ring, error) {
	if bitsM < 1 || bitsM > 31 {
		return Ring{}, fmt.Errorf("ring: bitsM %d out of [1,31]", bitsM)
	}
	m := uint(bitsM)
	return Ring{
		bitsM: m,
		mask:  (uint64(1) << m) - 1,
		half:  int64(1) << (m - 1),
		mod:   int64(1) << m,
	}, nil
}

// BitsM returns the configured word width.
func (r Ring) BitsM() int { return int(r.bitsM) }

// Wrap reduces v modulo 2^M and returns the signed two's-complement
// representative in [-2^(M-1), 2^(M-1)).
func (r Ring) Wrap(v int64) int32 {
	u := uint64(v) & r.mask
	s := int64(u)
	if s >= r.half {
		s -= r.mod
	}
	return int32(s)
}

// Add returns wrap(a+b).
func (r Ring) Add(a, b int32) int32 {
	return r.Wrap(int64(a) + int64(b))
}

// Sub returns wrap(a-b).
func (r Ring) Sub(a, b int32) int32 {
	return r.Wrap(int64(a) - int64(b))
}

// Mul returns wrap(a*b).
func (r Ring) Mul(a, b int32) int32 {
	return r.Wrap(int64(a) * int64(b))
}

// BytesPerWord returns ceil(M/8).
func (r Ring) BytesPerWord() int {
	return int((r.bitsM + 7) / 8)
}

// PutWord serializes v's low M bits into dst (little-endian), which must be
// at least BytesPerWord() long.
func (r Ring) PutWord(dst []byte, v int32) {
	u := uint64(v) & r.mask
	n := r.BytesPerWord()
	for i := 0; i < n; i++ {
		dst[i] = byte(u >> (8 * uint(i)))
	}
}

// Word deserializes BytesPerWord() little-endian bytes from src, masks to M
// bits, and sign-extends.
func (r Ring) Word(src []byte) int32 {
	n := r.BytesPerWord()
	var u uint64
	for i := 0; i < n && i < len(src); i++ {
		u |= uint64(src[i]) << (8 * uint(i))
	}
	return r.Wrap(int64(u & r.mask))
}
