package main

import (
	"os"

	"pet_discovery/cmd/discoveryctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
