package main

import (
	"os"

	"freshprint/cmd/freshprint/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
