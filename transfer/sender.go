package transfer

import (
	"crypto/sha256"
	"errors"
	"hash/crc32"
	"time"

	"github.com/ringcast/ringcast/codec"
	"github.com/ringcast/ringcast/wire"
)

var errAckWait = errors.New("transfer: timed out waiting for ack")

// Sender drives the sending half of a file transfer session: it owns the
// codec instance that encodes every framed message, and the transport
// that carries them.
type Sender struct {
	transport Transport
	codec     *codec.Codec
	opts      SenderOptions
}

// NewSender builds a Sender over t, encoding every message with c. opts'
// zero fields take the session defaults.
func NewSender(t Transport, c *codec.Codec, opts SenderOptions) *Sender {
	opts.setDefaults()
	return &Sender{transport: t, codec: c, opts: opts}
}

// SendFile transmits filename's payload: a FileHeader, awaited as
// chunk_index=0, followed by ChunkSize-byte ChunkHeader+data messages,
// each awaited by its own index. Between chunks it drains any pending
// SyncRequest and answers it with a state-sync packet. It returns
// *Error{Kind: AckTimeout} if any message exhausts its retry budget.
func (s *Sender) SendFile(filename string, payload []byte) error {
	total := (len(payload) + s.opts.ChunkSize - 1) / s.opts.ChunkSize
	if total == 0 {
		total = 1 // an empty file is still one (empty) chunk on the wire
	}
	fileHash := sha256.Sum256(payload)

	hdr := wire.FileHeader{
		FileSize:    uint32(len(payload)),
		TotalChunks: uint32(total),
		ChunkSize:   uint32(s.opts.ChunkSize),
		FileHash:    fileHash,
		Filename:    filename,
	}
	if err := s.sendAndAwaitAck(hdr.MarshalBinary(), 0); err != nil {
		return err
	}

	for i := 0; i < total; i++ {
		start := i * s.opts.ChunkSize
		end := start + s.opts.ChunkSize
		if end > len(payload) {
			end = len(payload)
		}
		data := payload[start:end]
		ch := wire.ChunkHeader{
			ChunkIndex:  uint32(i),
			TotalChunks: uint32(total),
			DataSize:    uint32(len(data)),
			CRC32:       crc32.ChecksumIEEE(data),
		}
		msg := append(ch.MarshalBinary(), data...)
		if err := s.sendAndAwaitAck(msg, uint32(i)); err != nil {
			return err
		}
		s.drainSyncRequests()
	}
	return nil
}

// drainSyncRequests does a single non-blocking poll for a pending
// SyncRequest and answers it; it never blocks waiting for one.
func (s *Sender) drainSyncRequests() {
	raw, err := s.transport.Recv(0)
	if err != nil || raw == nil {
		return
	}
	s.handleInbound(raw)
}

// handleInbound tries to interpret raw as a SyncRequest, the only
// message type the sender is meant to ever receive unsolicited. ACKs
// are consumed directly by awaitAck, not through this path.
func (s *Sender) handleInbound(raw []byte) {
	if wire.IsSyncPacket(raw) {
		return
	}
	decoded := s.codec.DecodeMessage(raw, 0, false)
	var sreq wire.SyncRequest
	if sreq.UnmarshalBinary(decoded) == nil {
		s.respondSync()
	}
}

func (s *Sender) respondSync() {
	h1, h2 := s.codec.EncoderState()
	s.opts.Logger.Infof("transfer: responding to sync request with state (%d,%d)", h1, h2)
	p := wire.SyncPacket{H1: h1, H2: h2}
	_ = s.transport.Send(p.MarshalBinary())
}

func (s *Sender) sendFramed(raw []byte) error {
	frame := s.codec.EncodeMessage(raw, false)
	return s.transport.Send(frame)
}

// sendAndAwaitAck transmits raw and waits for an ACK(idx, OK), retrying
// the whole send up to opts.MaxRetries times on timeout. SyncRequests
// observed while waiting are answered inline and do not count as a
// failed attempt.
func (s *Sender) sendAndAwaitAck(raw []byte, idx uint32) error {
	var lastErr error
	for attempt := 0; attempt <= s.opts.MaxRetries; attempt++ {
		if err := s.sendFramed(raw); err != nil {
			return err
		}
		ack, err := s.awaitAck(idx, s.opts.AckTimeout)
		if err == nil && ack.Status == wire.AckOK {
			return nil
		}
		lastErr = err
		s.opts.Logger.Debugf("transfer: chunk %d attempt %d/%d did not ack: %v", idx, attempt+1, s.opts.MaxRetries+1, err)
	}
	return newError(AckTimeout, "chunk %d: exceeded %d retries: %v", idx, s.opts.MaxRetries, lastErr)
}

func (s *Sender) awaitAck(idx uint32, timeout time.Duration) (*wire.ChunkAck, error) {
	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, errAckWait
		}
		raw, err := s.transport.Recv(remaining)
		if err != nil {
			return nil, err
		}
		if wire.IsSyncPacket(raw) {
			continue
		}
		decoded := s.codec.DecodeMessage(raw, 0, false)

		var sreq wire.SyncRequest
		if sreq.UnmarshalBinary(decoded) == nil {
			s.respondSync()
			continue
		}

		var ack wire.ChunkAck
		if err := ack.UnmarshalBinary(decoded); err == nil && ack.ChunkIndex == idx {
			return &ack, nil
		}
		// stray or stale datagram (e.g. a duplicate ACK for an earlier
		// chunk racing with a retry): ignore and keep waiting.
	}
}
