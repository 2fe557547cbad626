package wire

import (
	"encoding/binary"
	"errors"
)

// FileHeader is sent once at the start of a transfer session (§3):
// magic|file_size|total_chunks|chunk_size|file_hash(32)|filename_len|filename.
type FileHeader struct {
	FileSize    uint32
	TotalChunks uint32
	ChunkSize   uint32
	FileHash    [32]byte
	Filename    string
}

const fileHeaderFixedLen = 4 + 4 + 4 + 4 + 32 + 4

// MarshalBinary serializes the header, including the variable-length
// filename trailer.
func (h *FileHeader) MarshalBinary() []byte {
	name := []byte(h.Filename)
	b := make([]byte, fileHeaderFixedLen+len(name))
	binary.LittleEndian.PutUint32(b[0:4], MagicFile)
	binary.LittleEndian.PutUint32(b[4:8], h.FileSize)
	binary.LittleEndian.PutUint32(b[8:12], h.TotalChunks)
	binary.LittleEndian.PutUint32(b[12:16], h.ChunkSize)
	copy(b[16:48], h.FileHash[:])
	binary.LittleEndian.PutUint32(b[48:52], uint32(len(name)))
	copy(b[52:], name)
	return b
}

// UnmarshalBinary parses a FileHeader from b.
func (h *FileHeader) UnmarshalBinary(b []byte) error {
	if len(b) < fileHeaderFixedLen {
		return errors.New("wire: file header too short")
	}
	if binary.LittleEndian.Uint32(b[0:4]) != MagicFile {
		return errors.New("wire: bad FileHeader magic")
	}
	h.FileSize = binary.LittleEndian.Uint32(b[4:8])
	h.TotalChunks = binary.LittleEndian.Uint32(b[8:12])
	h.ChunkSize = binary.LittleEndian.Uint32(b[12:16])
	copy(h.FileHash[:], b[16:48])
	nameLen := binary.LittleEndian.Uint32(b[48:52])
	if uint32(len(b)-fileHeaderFixedLen) < nameLen {
		return errors.New("wire: file header filename truncated")
	}
	h.Filename = string(b[52 : 52+nameLen])
	return nil
}

// ChunkHeader precedes chunk_index's data bytes in an in-session transfer
// message: magic|chunk_index|total_chunks|data_size|crc32.
type ChunkHeader struct {
	ChunkIndex  uint32
	TotalChunks uint32
	DataSize    uint32
	CRC32       uint32
}

const ChunkHeaderLen = 4 + 4 + 4 + 4 + 4

func (h *ChunkHeader) MarshalBinary() []byte {
	b := make([]byte, ChunkHeaderLen)
	binary.LittleEndian.PutUint32(b[0:4], MagicChunk)
	binary.LittleEndian.PutUint32(b[4:8], h.ChunkIndex)
	binary.LittleEndian.PutUint32(b[8:12], h.TotalChunks)
	binary.LittleEndian.PutUint32(b[12:16], h.DataSize)
	binary.LittleEndian.PutUint32(b[16:20], h.CRC32)
	return b
}

func (h *ChunkHeader) UnmarshalBinary(b []byte) error {
	if len(b) < ChunkHeaderLen {
		return errors.New("wire: chunk header too short")
	}
	if binary.LittleEndian.Uint32(b[0:4]) != MagicChunk {
		return errors.New("wire: bad ChunkHeader magic")
	}
	h.ChunkIndex = binary.LittleEndian.Uint32(b[4:8])
	h.TotalChunks = binary.LittleEndian.Uint32(b[8:12])
	h.DataSize = binary.LittleEndian.Uint32(b[12:16])
	h.CRC32 = binary.LittleEndian.Uint32(b[16:20])
	return nil
}

// ChunkAck acknowledges chunk_index with a status (0=OK, 1=RESEND, 2=ERROR).
type ChunkAck struct {
	ChunkIndex uint32
	Status     uint32
}

const ChunkAckLen = 4 + 4 + 4

func (a *ChunkAck) MarshalBinary() []byte {
	b := make([]byte, ChunkAckLen)
	binary.LittleEndian.PutUint32(b[0:4], MagicAck)
	binary.LittleEndian.PutUint32(b[4:8], a.ChunkIndex)
	binary.LittleEndian.PutUint32(b[8:12], a.Status)
	return b
}

func (a *ChunkAck) UnmarshalBinary(b []byte) error {
	if len(b) < ChunkAckLen {
		return errors.New("wire: chunk ack too short")
	}
	if binary.LittleEndian.Uint32(b[0:4]) != MagicAck {
		return errors.New("wire: bad ChunkAck magic")
	}
	a.ChunkIndex = binary.LittleEndian.Uint32(b[4:8])
	a.Status = binary.LittleEndian.Uint32(b[8:12])
	return nil
}

// SyncRequest asks the sender to emit a state-sync packet for
// expected_chunk, sent when the receiver cannot decode a frame.
type SyncRequest struct {
	ExpectedChunk uint32
}

const SyncRequestLen = 4 + 4

func (s *SyncRequest) MarshalBinary() []byte {
	b := make([]byte, SyncRequestLen)
	binary.LittleEndian.PutUint32(b[0:4], MagicSync)
	binary.LittleEndian.PutUint32(b[4:8], s.ExpectedChunk)
	return b
}

func (s *SyncRequest) UnmarshalBinary(b []byte) error {
	if len(b) < SyncRequestLen {
		return errors.New("wire: sync request too short")
	}
	if binary.LittleEndian.Uint32(b[0:4]) != MagicSync {
		return errors.New("wire: bad SyncRequest magic")
	}
	s.ExpectedChunk = binary.LittleEndian.Uint32(b[4:8])
	return nil
}

// SyncPacket is the out-of-band codec-state resync message (§3, §6):
// SyncPrefix followed by signed 32-bit little-endian h1, h2. It never
// passes through the codec and is recognized by transport glue solely by
// its 4-byte prefix.
type SyncPacket struct {
	H1, H2 int32
}

const SyncPacketLen = 4 + 4 + 4

func (p *SyncPacket) MarshalBinary() []byte {
	b := make([]byte, SyncPacketLen)
	copy(b[0:4], SyncPrefix[:])
	binary.LittleEndian.PutUint32(b[4:8], uint32(p.H1))
	binary.LittleEndian.PutUint32(b[8:12], uint32(p.H2))
	return b
}

func (p *SyncPacket) UnmarshalBinary(b []byte) error {
	if len(b) < SyncPacketLen {
		return errors.New("wire: sync packet too short")
	}
	if [4]byte(b[0:4]) != SyncPrefix {
		return errors.New("wire: bad sync packet prefix")
	}
	p.H1 = int32(binary.LittleEndian.Uint32(b[4:8]))
	p.H2 = int32(binary.LittleEndian.Uint32(b[8:12]))
	return nil
}

// IsSyncPacket reports whether b begins with the sync packet prefix, the
// recognition test a receiver runs before attempting codec decode.
func IsSyncPacket(b []byte) bool {
	return len(b) >= 4 && [4]byte(b[0:4]) == SyncPrefix
}
