//go:build linux

package transport

import (
	"errors"
	"os"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// TAPTransport opens a Linux TAP device for raw Ethernet-frame I/O.
// cmd/ringtap drives it to push container-framed fragments (§4.I) out as
// raw frames; reading frames back is out of scope (the spec treats TAP
// delivery as an external collaborator), so Recv is a documented stub.
type TAPTransport struct {
	f *os.File
}

const ifReqSize = unix.IFNAMSIZ + 64

// OpenTAP opens /dev/net/tun and attaches it to the named TAP interface
// (created if it does not already exist and the caller has CAP_NET_ADMIN).
func OpenTAP(name string) (*TAPTransport, error) {
	f, err := os.OpenFile("/dev/net/tun", os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}

	var req [ifReqSize]byte
	copy(req[:unix.IFNAMSIZ], name)
	flags := uint16(unix.IFF_TAP | unix.IFF_NO_PI)
	req[unix.IFNAMSIZ] = byte(flags)
	req[unix.IFNAMSIZ+1] = byte(flags >> 8)

	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), uintptr(unix.TUNSETIFF), uintptr(unsafe.Pointer(&req[0])))
	if errno != 0 {
		f.Close()
		return nil, errno
	}
	return &TAPTransport{f: f}, nil
}

func (t *TAPTransport) Send(b []byte) error {
	_, err := t.f.Write(b)
	return err
}

func (t *TAPTransport) Recv(timeout time.Duration) ([]byte, error) {
	// TAP frame I/O is out of scope; the open/ioctl handshake above is
	// the supplied contract, reading raw frames is left to callers that
	// need it.
	return nil, errors.New("transport: TAP frame read not implemented")
}

func (t *TAPTransport) Close() error {
	return t.f.Close()
}
