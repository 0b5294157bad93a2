package main

import (
	"os"

	"github.com/katpercent/BlacKipher/cmd/blackipher/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
