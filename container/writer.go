// Package container implements the fragmenting container protocol: a
// writer that splits an arbitrary byte stream into 47-byte marker-framed
// fragments (§4.I), and a noise-tolerant scanner that reconstructs the
// stream from a buffer that may contain arbitrary garbage around and
// between fragments (§4.J).
package container

import (
	"io"

	"github.com/ringcast/ringcast/wire"
)

// WriteFragments splits payload into wire.ChunkDataSize-byte windows and
// writes each as a 47-byte framed fragment to w. The last window is
// zero-padded on the right; there is no container-level file header.
func WriteFragments(w io.Writer, payload []byte) error {
	total := (len(payload) + wire.ChunkDataSize - 1) / wire.ChunkDataSize
	for i := 0; i < total; i++ {
		start := i * wire.ChunkDataSize
		end := start + wire.ChunkDataSize
		if end > len(payload) {
			end = len(payload)
		}
		frag, err := wire.NewFragment(uint16(i), uint16(total), payload[start:end])
		if err != nil {
			return err
		}
		b := frag.MarshalBinary()
		if _, err := w.Write(b); err != nil {
			return err
		}
	}
	return nil
}
