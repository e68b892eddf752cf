// Command swim-engine reads a SimulationInput JSON from a file argument (or stdin),
// runs the simulation, and writes the SimulationLog JSON to stdout.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "simulation error: %v\n", err)
		os.Exit(1)
	}
}
