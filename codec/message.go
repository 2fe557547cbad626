package codec

import "crypto/sha256"

// EncodeMessage wraps payload as [len_lo][len_hi] || encode_symbols(pack(...)).
// When withHash is set, a 32-byte SHA-256 of payload is prepended to the
// data before packing, and len covers the hash+payload length, mirroring
// the encoder's own accounting.
func (c *Codec) EncodeMessage(payload []byte, withHash bool) []byte {
	toEncode := payload
	if withHash {
		sum := sha256.Sum256(payload)
		toEncode = make([]byte, 0, len(sum)+len(payload))
		toEncode = append(toEncode, sum[:]...)
		toEncode = append(toEncode, payload...)
	}

	symbols := pack(toEncode, c.params.BitsQ)
	bpw := c.r.BytesPerWord()
	coded := make([]byte, 0, 2+len(symbols)*bpw)
	length := len(toEncode)
	coded = append(coded, byte(length&0xFF), byte((length>>8)&0xFF))

	word := make([]byte, bpw)
	for _, s := range symbols {
		next, _, _ := c.EncodeSymbol(s)
		c.r.PutWord(word, next)
		coded = append(coded, word...)
	}
	return coded
}

// DecodeMessage reads the two-byte length prefix (overridden by
// expectedLen when nonzero), decodes the remaining ring words with the
// simple dialect, unpacks to that many bytes, and — when withHash is set —
// strips and verifies a prefixed SHA-256. A hash mismatch is a warning,
// not a hard failure: the data is still returned and HashMismatches is
// incremented.
func (c *Codec) DecodeMessage(frame []byte, expectedLen int, withHash bool) []byte {
	if len(frame) < 2 {
		return nil
	}
	length := int(frame[0]) | int(frame[1])<<8
	if expectedLen != 0 {
		length = expectedLen
	}

	bpw := c.r.BytesPerWord()
	body := frame[2:]
	symbols := make([]int, 0, len(body)/bpw)
	for i := 0; i+bpw <= len(body); i += bpw {
		w := c.r.Word(body[i : i+bpw])
		if sym, ok, _ := c.DecodeSymbol(w); ok {
			symbols = append(symbols, sym)
		}
	}

	decoded := unpack(symbols, length, c.params.BitsQ)
	if !withHash {
		return decoded
	}
	if len(decoded) < sha256.Size {
		return decoded
	}
	received := decoded[:sha256.Size]
	data := decoded[sha256.Size:]
	actual := sha256.Sum256(data)
	if string(received) != string(actual[:]) {
		c.stats.hashMismatches.Add(1)
	}
	return data
}
