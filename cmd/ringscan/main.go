// Command ringscan reassembles a file from a container that may contain
// arbitrary noise before, between, or around its fragments.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ringcast/ringcast/container"
)

func main() {
	in := flag.String("in", "", "input (possibly noisy) container file (required)")
	out := flag.String("out", "", "output file (required)")
	maxFail := flag.Int("max-consecutive-failures", 0, "abort the scan after more than this many consecutive validation failures (0 = default)")
	flag.Parse()

	if *in == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "usage: ringscan --in FILE --out FILE [--max-consecutive-failures N]")
		os.Exit(1)
	}

	buf, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	result, cerr := container.Scan(buf, container.ScanOptions{MaxConsecutiveFailures: *maxFail})
	if cerr != nil && cerr.Kind == container.MarkerNotFound {
		fmt.Fprintln(os.Stderr, "error:", cerr)
		os.Exit(1)
	}
	if cerr != nil {
		fmt.Fprintf(os.Stderr, "warning: %v (found %d/%d chunks, missing %v)\n", cerr, result.Found, result.Total, result.Missing)
	}

	if err := os.WriteFile(*out, result.Data, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
