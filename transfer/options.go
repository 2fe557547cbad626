package transfer

import (
	"time"

	"github.com/ringcast/ringcast/internal/logging"
)

// Defaults per the session's external-interface table.
const (
	DefaultChunkSize       = 8192
	DefaultMaxPacketSize   = 16384
	DefaultAckTimeout      = time.Second
	DefaultMaxRetries      = 3
	DefaultMinSyncInterval = time.Second
)

// SenderOptions controls a Sender's chunking and retry behavior. The
// zero value is not ready for use; NewSender fills in defaults for any
// zero field.
type SenderOptions struct {
	ChunkSize     int
	MaxPacketSize int
	AckTimeout    time.Duration
	MaxRetries    int

	// Logger receives retry/resync debug lines. Defaults to
	// logging.NoopLogger{} so callers that don't care pay nothing.
	Logger logging.Logger
}

func (o *SenderOptions) setDefaults() {
	if o.ChunkSize <= 0 {
		o.ChunkSize = DefaultChunkSize
	}
	if o.MaxPacketSize <= 0 {
		o.MaxPacketSize = DefaultMaxPacketSize
	}
	if o.AckTimeout <= 0 {
		o.AckTimeout = DefaultAckTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = DefaultMaxRetries
	}
	if o.Logger == nil {
		o.Logger = logging.NoopLogger{}
	}
}

// ReceiverOptions controls a Receiver's resync-request pacing.
type ReceiverOptions struct {
	MinSyncInterval time.Duration

	// Logger receives resync/decode-failure debug lines. Defaults to
	// logging.NoopLogger{}.
	Logger logging.Logger
}

func (o *ReceiverOptions) setDefaults() {
	if o.MinSyncInterval <= 0 {
		o.MinSyncInterval = DefaultMinSyncInterval
	}
	if o.Logger == nil {
		o.Logger = logging.NoopLogger{}
	}
}
