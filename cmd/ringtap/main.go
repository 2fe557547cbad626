//go:build linux

// Command ringtap pushes a file's container-framed fragments (§4.I) out
// over a Linux TAP device, one fragment per raw Ethernet frame. It is
// the thin glue spec.md §1 calls for over transport.TAPTransport: TAP
// frame reads remain out of scope, so this binary is send-only.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/ringcast/ringcast/container"
	"github.com/ringcast/ringcast/transport"
	"github.com/ringcast/ringcast/wire"
)

func main() {
	iface := flag.String("iface", "", "TAP interface name (required; needs CAP_NET_ADMIN)")
	in := flag.String("in", "", "file to push out as container fragments (required)")
	flag.Parse()

	if *iface == "" || *in == "" {
		fmt.Fprintln(os.Stderr, "usage: ringtap --iface NAME --in FILE")
		os.Exit(1)
	}

	payload, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	var buf bytes.Buffer
	if err := container.WriteFragments(&buf, payload); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	t, err := transport.OpenTAP(*iface)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer t.Close()

	frames := buf.Bytes()
	sent := 0
	for off := 0; off+wire.FragmentSize <= len(frames); off += wire.FragmentSize {
		if err := t.Send(frames[off : off+wire.FragmentSize]); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		sent++
	}
	fmt.Fprintf(os.Stderr, "[ringtap] iface=%s fragments_sent=%d bytes=%d\n", *iface, sent, len(payload))
}
