package main

import (
	"os"

	"github.com/grid-books/grid/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
