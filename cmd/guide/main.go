package main

import (
	"fmt"
	"os"

	"github.com/Ealfred1/ResQ-X-checklist/internal/guidecli"
)

func main() {
	if err := guidecli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
