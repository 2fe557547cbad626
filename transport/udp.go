package transport

import (
	"errors"
	"net"
	"time"
)

var errNoPeer = errors.New("transport: no peer learned yet; call Recv first")

// UDPTransport wraps a net.UDPConn as a Datagram. A dialed conn already
// knows its peer and Send writes directly to it. A listening conn has
// no fixed peer until the first datagram arrives; Recv learns the
// sender's address from that first packet and Send targets it from
// then on, which is what lets a receiver ACK back to whichever sender
// first spoke to it.
type UDPTransport struct {
	conn      *net.UDPConn
	maxSize   int
	connected bool
	peer      *net.UDPAddr
}

// DefaultMaxDatagramSize matches the session layer's MAX_PACKET_SIZE.
const DefaultMaxDatagramSize = 16384

// NewUDPTransport wraps conn. maxSize bounds the receive buffer; 0 uses
// DefaultMaxDatagramSize.
func NewUDPTransport(conn *net.UDPConn, maxSize int) *UDPTransport {
	if maxSize <= 0 {
		maxSize = DefaultMaxDatagramSize
	}
	return &UDPTransport{conn: conn, maxSize: maxSize}
}

// DialUDP connects to addr and returns a ready-to-use UDPTransport.
func DialUDP(addr string) (*UDPTransport, error) {
	raddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}
	conn, err := net.DialUDP("udp", nil, raddr)
	if err != nil {
		return nil, err
	}
	t := NewUDPTransport(conn, 0)
	t.connected = true
	t.peer = raddr
	return t, nil
}

// ListenUDP opens a UDP socket on addr. It has no fixed peer until the
// first Recv, which latches the sender's address as the peer for all
// subsequent Sends; Send before the first Recv returns an error.
func ListenUDP(addr string) (*UDPTransport, error) {
	laddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}
	conn, err := net.ListenUDP("udp", laddr)
	if err != nil {
		return nil, err
	}
	return NewUDPTransport(conn, 0), nil
}

func (t *UDPTransport) Send(b []byte) error {
	if t.connected {
		_, err := t.conn.Write(b)
		return err
	}
	if t.peer == nil {
		return errNoPeer
	}
	_, err := t.conn.WriteToUDP(b, t.peer)
	return err
}

func (t *UDPTransport) Recv(timeout time.Duration) ([]byte, error) {
	if timeout <= 0 {
		timeout = time.Microsecond
	}
	if err := t.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, err
	}
	buf := make([]byte, t.maxSize)
	n, from, err := t.conn.ReadFromUDP(buf)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return nil, ErrTimeout
		}
		return nil, err
	}
	if t.peer == nil {
		t.peer = from
	}
	return buf[:n], nil
}

func (t *UDPTransport) Close() error {
	return t.conn.Close()
}
