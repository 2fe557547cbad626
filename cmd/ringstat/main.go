// Command ringstat round-trips a file through the codec and dumps the
// resulting counters as a JSON object, for scripting and dashboards.
package main

import (
	"crypto/sha256"
	"flag"
	"fmt"
	"os"

	"github.com/ringcast/ringcast/internal/clicodec"
	"github.com/ringcast/ringcast/internal/statsjson"
)

func main() {
	fs := flag.NewFlagSet("ringstat", flag.ExitOnError)
	cf := clicodec.Register(fs)
	in := fs.String("in", "", "input file to round-trip (required)")
	hash := fs.Bool("hash", false, "round-trip with a leading SHA-256")
	fs.Parse(os.Args[1:])

	if *in == "" || cf.CSVPath == "" {
		fmt.Fprintln(os.Stderr, "usage: ringstat --in FILE --codec CSV [flags]")
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
	// With --hash the encoded length covers the SHA-256 prefix as well.
	expectedLen := len(payload)
	if *hash {
		expectedLen += sha256.Size
	}
	_ = c.DecodeMessage(frame, expectedLen, *hash)

	out, err := statsjson.Marshal(c.Stats())
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
