package main

import (
	"os"

	"github.com/minwookim/ladder/cmd/ladder/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
