package main

import (
	"os"

	"github.com/12dit152/solarsim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
