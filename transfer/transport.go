package transfer

import "time"

// Transport is the datagram collaborator a Sender/Receiver drives. It is
// defined here rather than imported from package transport so that
// transfer's tests can mock it directly; transport.UDPTransport and
// transport.TAPTransport both satisfy it structurally.
type Transport interface {
	Send(b []byte) error
	// Recv blocks until a datagram arrives or timeout elapses; a
	// timeout of zero or less is a non-blocking poll.
	Recv(timeout time.Duration) ([]byte, error)
	Close() error
}
