package wire

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
)

// Fragment is one 47-byte self-delimited unit of the container format
// (§4.I): START_MARKER, chunk_num, total_chunks, CRC32 of data, 31 bytes
// of data, END_MARKER.
type Fragment struct {
	ChunkNum    uint16
	TotalChunks uint16
	CRC32       uint32
	Data        [ChunkDataSize]byte
}

// NewFragment builds a Fragment from data (zero-padded to ChunkDataSize,
// must not exceed it) and computes its CRC32.
func NewFragment(chunkNum, totalChunks uint16, data []byte) (Fragment, error) {
	if len(data) > ChunkDataSize {
		return Fragment{}, errors.New("wire: fragment data exceeds 31 bytes")
	}
	var f Fragment
	f.ChunkNum = chunkNum
	f.TotalChunks = totalChunks
	copy(f.Data[:], data)
	f.CRC32 = crc32.ChecksumIEEE(f.Data[:])
	return f, nil
}

// MarshalBinary serializes the fragment to exactly FragmentSize bytes.
func (f *Fragment) MarshalBinary() []byte {
	b := make([]byte, FragmentSize)
	copy(b[0:4], StartMarker[:])
	binary.LittleEndian.PutUint16(b[4:6], f.ChunkNum)
	binary.LittleEndian.PutUint16(b[6:8], f.TotalChunks)
	binary.LittleEndian.PutUint32(b[8:12], f.CRC32)
	copy(b[12:12+ChunkDataSize], f.Data[:])
	copy(b[12+ChunkDataSize:], EndMarker[:])
	return b
}

// UnmarshalBinary parses a fragment from b, validating both markers and
// the CRC32 of the data field. It does not search for the fragment — the
// scanner in package container does that.
func (f *Fragment) UnmarshalBinary(b []byte) error {
	if len(b) < FragmentSize {
		return errors.New("wire: fragment buffer too short")
	}
	if [4]byte(b[0:4]) != StartMarker {
		return errors.New("wire: missing START_MARKER")
	}
	if [4]byte(b[FragmentSize-4:FragmentSize]) != EndMarker {
		return errors.New("wire: missing END_MARKER")
	}
	chunkNum := binary.LittleEndian.Uint16(b[4:6])
	totalChunks := binary.LittleEndian.Uint16(b[6:8])
	crc := binary.LittleEndian.Uint32(b[8:12])
	var data [ChunkDataSize]byte
	copy(data[:], b[12:12+ChunkDataSize])
	if crc32.ChecksumIEEE(data[:]) != crc {
		return errors.New("wire: CRC32 mismatch")
	}
	f.ChunkNum = chunkNum
	f.TotalChunks = totalChunks
	f.CRC32 = crc
	f.Data = data
	return nil
}
