package main

import (
	"os"

	"github.com/tariquesani/dayone-archive/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
