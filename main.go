package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/Dustyposa/github-stars-mcp-server/cmd"
)

func main() {
	// Load .env if present. Missing files are fine.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
