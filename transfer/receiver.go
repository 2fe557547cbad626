package transfer

import (
	"crypto/sha256"
	"hash/crc32"
	"time"

	"github.com/ringcast/ringcast/codec"
	"github.com/ringcast/ringcast/wire"
)

// Receiver drives the receiving half of a file transfer session.
type Receiver struct {
	transport Transport
	codec     *codec.Codec
	opts      ReceiverOptions

	header     *wire.FileHeader
	present    []bool
	chunks     [][]byte
	lastSyncAt time.Time
}

// NewReceiver builds a Receiver over t, decoding every message with c.
func NewReceiver(t Transport, c *codec.Codec, opts ReceiverOptions) *Receiver {
	opts.setDefaults()
	return &Receiver{transport: t, codec: c, opts: opts}
}

// ReceiveFile blocks, reading datagrams from the transport, until a full
// file has been reassembled and its hash verified, or a Recv call returns
// an error. recvTimeout bounds each wait for a datagram, not the whole
// transfer, and a Recv timeout ends the loop with that error. It returns
// (filename, data, error).
func (r *Receiver) ReceiveFile(recvTimeout time.Duration) (string, []byte, error) {
	for {
		raw, err := r.transport.Recv(recvTimeout)
		if err != nil {
			return "", nil, err
		}
		if wire.IsSyncPacket(raw) {
			var p wire.SyncPacket
			if p.UnmarshalBinary(raw) == nil {
				r.opts.Logger.Infof("transfer: applying sync state (%d,%d)", p.H1, p.H2)
				r.codec.SyncStates(p.H1, p.H2)
			}
			continue
		}

		decoded := r.codec.DecodeMessage(raw, 0, false)

		if r.header == nil {
			var hdr wire.FileHeader
			if err := hdr.UnmarshalBinary(decoded); err != nil {
				r.maybeRequestSync(0)
				continue
			}
			r.header = &hdr
			r.present = make([]bool, hdr.TotalChunks)
			r.chunks = make([][]byte, hdr.TotalChunks)
			r.ackChunk(0, wire.AckOK)
			continue
		}

		var ch wire.ChunkHeader
		if len(decoded) < wire.ChunkHeaderLen {
			r.maybeRequestSync(r.firstMissing())
			continue
		}
		if err := ch.UnmarshalBinary(decoded[:wire.ChunkHeaderLen]); err != nil {
			r.maybeRequestSync(r.firstMissing())
			continue
		}
		data := decoded[wire.ChunkHeaderLen:]
		if uint32(len(data)) < ch.DataSize {
			r.maybeRequestSync(r.firstMissing())
			continue
		}
		data = data[:ch.DataSize]
		if crc32.ChecksumIEEE(data) != ch.CRC32 {
			r.maybeRequestSync(r.firstMissing())
			continue
		}

		idx := ch.ChunkIndex
		if int(idx) >= len(r.present) {
			continue
		}
		if r.present[idx] {
			r.ackChunk(idx, wire.AckOK)
			continue
		}
		r.chunks[idx] = append([]byte(nil), data...)
		r.present[idx] = true
		r.ackChunk(idx, wire.AckOK)

		if r.complete() {
			filename, payload, err := r.assemble()
			return filename, payload, err
		}
	}
}

func (r *Receiver) complete() bool {
	for _, ok := range r.present {
		if !ok {
			return false
		}
	}
	return len(r.present) > 0
}

func (r *Receiver) firstMissing() uint32 {
	for i, ok := range r.present {
		if !ok {
			return uint32(i)
		}
	}
	return 0
}

func (r *Receiver) assemble() (string, []byte, error) {
	var payload []byte
	for _, c := range r.chunks {
		payload = append(payload, c...)
	}
	sum := sha256.Sum256(payload)
	if sum != r.header.FileHash {
		return r.header.Filename, payload, newError(FileHashMismatch, "assembled file does not match declared hash")
	}
	return r.header.Filename, payload, nil
}

func (r *Receiver) ackChunk(idx uint32, status uint32) {
	ack := wire.ChunkAck{ChunkIndex: idx, Status: status}
	frame := r.codec.EncodeMessage(ack.MarshalBinary(), false)
	_ = r.transport.Send(frame)
}

// maybeRequestSync sends a SyncRequest for expected, rate-limited to at
// most once per MinSyncInterval, per the decode-failure recovery path.
func (r *Receiver) maybeRequestSync(expected uint32) {
	now := time.Now()
	if now.Sub(r.lastSyncAt) < r.opts.MinSyncInterval {
		return
	}
	r.lastSyncAt = now
	r.opts.Logger.Errorf("transfer: frame decode failed, requesting sync for expected_chunk=%d", expected)
	req := wire.SyncRequest{ExpectedChunk: expected}
	frame := r.codec.EncodeMessage(req.MarshalBinary(), false)
	_ = r.transport.Send(frame)
}
