package main

import (
	"os"

	"github.com/rustyeddy/swing/cmd/swing/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
