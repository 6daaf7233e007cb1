package main

import (
	"os"

	"github.com/insightdelivered/statement-lens/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
