package main

import (
	"os"

	"pubident/cmd/identctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
