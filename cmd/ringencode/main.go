// Command ringencode encodes a file through the digital codec's message
// framing (magic-free length-prefixed frame, optional SHA-256), writing
// the encoded frame to an output file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ringcast/ringcast/internal/clicodec"
)

func main() {
	fs := flag.NewFlagSet("ringencode", flag.ExitOnError)
	cf := clicodec.Register(fs)
	in := fs.String("in", "", "input file (required)")
	out := fs.String("out", "", "output file (required)")
	hash := fs.Bool("hash", false, "prepend a SHA-256 of the payload before encoding")
	fs.Parse(os.Args[1:])

	if *in == "" || *out == "" || cf.CSVPath == "" {
		fmt.Fprintln(os.Stderr, "usage: ringencode --in FILE --out FILE --codec CSV [flags]")
		os.Exit(1)
	}

	payload, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	c, err := cf.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	frame := c.EncodeMessage(payload, *hash)
	if err := os.WriteFile(*out, frame, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if cf.Stats {
		st := c.Stats()
		fmt.Fprintf(os.Stderr, "[ringencode-stats] in_bytes=%d out_bytes=%d skipped=%d collisions=%d direct_info=%d\n",
			len(payload), len(frame), st.SymbolsSkipped, st.CollisionsSeen, st.DirectInfoUsed)
	}
}
