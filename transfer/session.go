package transfer

import (
	"fmt"
	"os"
	"time"

	"github.com/ringcast/ringcast/codec"
	"github.com/ringcast/ringcast/metrics"
)

// Session wraps a Sender or a Receiver (never both) bound to the same
// transport and codec, and prints a one-line stats summary on
// completion in the teacher's informal "[client-stats] ..." style. When
// the underlying codec was configured with StatsMode set, it also
// renders a Prometheus text snapshot of the same counters to stderr.
type Session struct {
	sender   *Sender
	receiver *Receiver
	codec    *codec.Codec
}

// NewSenderSession builds a Session around a Sender.
func NewSenderSession(t Transport, c *codec.Codec, opts SenderOptions) *Session {
	return &Session{sender: NewSender(t, c, opts), codec: c}
}

// NewReceiverSession builds a Session around a Receiver.
func NewReceiverSession(t Transport, c *codec.Codec, opts ReceiverOptions) *Session {
	return &Session{receiver: NewReceiver(t, c, opts), codec: c}
}

// Send runs a full send and logs a stats summary. Only valid on a
// sender session.
func (s *Session) Send(filename string, payload []byte) error {
	if s.sender == nil {
		return newError(AckTimeout, "Send called on a receiver session")
	}
	start := time.Now()
	err := s.sender.SendFile(filename, payload)
	dur := time.Since(start).Seconds()
	st := s.codec.Stats()
	fmt.Fprintf(os.Stderr, "[sender-stats] file=%q bytes=%d dur_s=%.3f skipped=%d collisions=%d err=%v\n",
		filename, len(payload), dur, st.SymbolsSkipped, st.CollisionsSeen, err)
	s.writePrometheusSnapshot()
	return err
}

// Receive runs a full receive and logs a stats summary. Only valid on a
// receiver session.
func (s *Session) Receive(recvTimeout time.Duration) (string, []byte, error) {
	if s.receiver == nil {
		return "", nil, newError(AckTimeout, "Receive called on a sender session")
	}
	start := time.Now()
	filename, data, err := s.receiver.ReceiveFile(recvTimeout)
	dur := time.Since(start).Seconds()
	st := s.codec.Stats()
	fmt.Fprintf(os.Stderr, "[receiver-stats] file=%q bytes=%d dur_s=%.3f skipped=%d hash_mismatches=%d err=%v\n",
		filename, len(data), dur, st.SymbolsSkipped, st.HashMismatches, err)
	s.writePrometheusSnapshot()
	return filename, data, err
}

// writePrometheusSnapshot dumps the session's final codec.Stats through
// a one-shot metrics.Registry when the codec was configured with
// StatsMode, the stats_mode flag's one behavioral effect beyond
// counters: a Prometheus text exposition block alongside the informal
// stats line above.
func (s *Session) writePrometheusSnapshot() {
	if !s.codec.Params().StatsMode {
		return
	}
	reg := metrics.NewRegistry()
	reg.Observe(codec.Stats{}, s.codec.Stats())
	fmt.Fprintln(os.Stderr, "[prometheus-snapshot]")
	_ = reg.WriteText(os.Stderr)
}
