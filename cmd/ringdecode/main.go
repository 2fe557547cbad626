// Command ringdecode reverses ringencode: it reads an encoded frame and
// writes the recovered payload bytes.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ringcast/ringcast/internal/clicodec"
)

func main() {
	fs := flag.NewFlagSet("ringdecode", flag.ExitOnError)
	cf := clicodec.Register(fs)
	in := fs.String("in", "", "input frame file (required)")
	out := fs.String("out", "", "output payload file (required)")
	hash := fs.Bool("hash", false, "the frame was encoded with a leading SHA-256")
	length := fs.Int("len", 0, "override the embedded payload length (0 = trust the frame)")
	fs.Parse(os.Args[1:])

	if *in == "" || *out == "" || cf.CSVPath == "" {
		fmt.Fprintln(os.Stderr, "usage: ringdecode --in FILE --out FILE --codec CSV [flags]")
		os.Exit(1)
	}

	frame, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	c, err := cf.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	payload := c.DecodeMessage(frame, *length, *hash)
	if err := os.WriteFile(*out, payload, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if cf.Stats {
		st := c.Stats()
		fmt.Fprintf(os.Stderr, "[ringdecode-stats] out_bytes=%d hash_mismatches=%d\n", len(payload), st.HashMismatches)
	}
}
