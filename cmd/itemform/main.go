package main

import (
	"os"

	"github.com/goliatone/go-itemform/cmd/itemform/commands"
)

// Version is stamped at release time.
var Version = "dev"

func main() {
	commands.SetVersion(Version)

	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
