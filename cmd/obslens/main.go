package main

import (
	"os"

	"github.com/nlegrand-dev/obslens/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
