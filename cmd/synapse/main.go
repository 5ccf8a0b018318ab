package main

import (
	"fmt"
	"os"

	"github.com/filozone/synapse-sdk-go/cmd/synapse/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
