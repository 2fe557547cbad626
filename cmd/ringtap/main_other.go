//go:build !linux

// ringtap depends on transport.OpenTAP, which is a Linux-only (/dev/net/tun)
// facility; this build prints a clear message instead of failing to link.
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "ringtap: TAP device I/O is only supported on linux")
	os.Exit(1)
}
