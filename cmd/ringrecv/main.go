// Command ringrecv listens for a ringsend peer over UDP and writes the
// received file to an output directory. With -hybrid it reverses the
// ChaCha20-Poly1305 seal ringsend applied before codec framing.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ringcast/ringcast/aead"
	"github.com/ringcast/ringcast/internal/clicodec"
	"github.com/ringcast/ringcast/transfer"
	"github.com/ringcast/ringcast/transport"
)

func main() {
	fs := flag.NewFlagSet("ringrecv", flag.ExitOnError)
	cf := clicodec.Register(fs)
	addr := fs.String("addr", "127.0.0.1:9000", "address to listen on")
	outDir := fs.String("out", ".", "directory to write the received file into")
	recvTimeout := fs.Duration("timeout", 30*time.Second, "maximum wait for each incoming datagram")
	minSyncInterval := fs.Duration("min-sync-interval", transfer.DefaultMinSyncInterval, "minimum spacing between sync requests")
	hybrid := fs.Bool("hybrid", false, "the incoming payload is sealed with ChaCha20-Poly1305; unseal before writing")
	hexKey := fs.String("hybrid-key", "", "hex-encoded 32-byte key (required with -hybrid)")
	fs.Parse(os.Args[1:])

	if cf.CSVPath == "" {
		fmt.Fprintln(os.Stderr, "usage: ringrecv --codec CSV --addr HOST:PORT --out DIR [flags]")
		os.Exit(1)
	}

	var opener *aead.Opener
	if *hybrid {
		key, err := hex.DecodeString(*hexKey)
		if err != nil || len(key) != aead.KeySize {
			fmt.Fprintf(os.Stderr, "error: -hybrid-key must be %d hex-encoded bytes\n", aead.KeySize)
			os.Exit(1)
		}
		opener, err = aead.NewOpener(key)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	}

	c, err := cf.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	t, err := transport.ListenUDP(*addr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer t.Close()

	session := transfer.NewReceiverSession(t, c, transfer.ReceiverOptions{
		MinSyncInterval: *minSyncInterval,
	})
	filename, payload, err := session.Receive(*recvTimeout)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if opener != nil {
		opened, err := opener.Open(payload, []byte(filename))
		if err != nil {
			fmt.Fprintln(os.Stderr, "error: unsealing payload:", err)
			os.Exit(1)
		}
		payload = opened
	}

	if err := os.WriteFile(filepath.Join(*outDir, filename), payload, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
