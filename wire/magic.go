// Package wire defines the little-endian binary layouts shared by the
// fragmenting container protocol and the file transfer session: fixed
// headers with explicit MarshalBinary/UnmarshalBinary methods, no
// reflection-based encoding.
package wire

// File-transfer magics, 32-bit little-endian words per spec §6.
const (
	MagicFile  uint32 = 0x46494C45 // "FILE"
	MagicChunk uint32 = 0x43484E4B // "CHNK"
	MagicAck   uint32 = 0x41434B00 // "ACK\0"
	MagicSync  uint32 = 0x53594E43 // "SYNC"
)

// StartMarker and EndMarker delimit a container fragment (§4.I).
var (
	StartMarker = [4]byte{0xAA, 0x55, 0xAA, 0x55}
	EndMarker   = [4]byte{0x55, 0xAA, 0x55, 0xAA}
)

// SyncPrefix leads a 12-byte out-of-band state-sync packet (§3, §6). It
// never goes through the codec.
var SyncPrefix = [4]byte{0xFF, 0xFE, 0xFD, 0xFC}

// ChunkDataSize is the fixed 31-byte data window of a container fragment.
const ChunkDataSize = 31

// FragmentSize is the fixed 47-byte size of one container fragment.
const FragmentSize = 4 + 2 + 2 + 4 + ChunkDataSize + 4

// Chunk ACK status codes.
const (
	AckOK     uint32 = 0
	AckResend uint32 = 1
	AckError  uint32 = 2
)
