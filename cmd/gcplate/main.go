// gcplate - GC screening plate quantification tool
package main

import (
	"fmt"
	"os"

	"github.com/sverdin/gcplate/cmd/gcplate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
