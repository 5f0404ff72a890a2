// Command emitterctl inspects the failure journal written by an emitter hub.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := buildRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "emitterctl:", err)
		os.Exit(1)
	}
}
