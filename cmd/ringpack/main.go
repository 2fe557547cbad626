// Command ringpack splits a file into 47-byte marker-framed container
// fragments, the noise-resilient transport unit below the message frame.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ringcast/ringcast/container"
)

func main() {
	in := flag.String("in", "", "input file (required)")
	out := flag.String("out", "", "output container file (required)")
	flag.Parse()

	if *in == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "usage: ringpack --in FILE --out FILE")
		os.Exit(1)
	}

	payload, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := container.WriteFragments(f, payload); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
