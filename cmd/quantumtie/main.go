package main

import (
	"os"

	"quantumtie/cmd/quantumtie/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
