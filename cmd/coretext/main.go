// Command coretext exercises the coretext text model: "demo" drives it
// from a small Bubble Tea terminal editor, "bench" stress-tests its edit,
// search, and decoration paths and reports throughput.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
