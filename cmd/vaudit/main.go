// Package main is the entry point for the vaudit CLI tool.
package main

import (
	"os"

	// Load VAUDIT_* settings from a .env file in the working directory.
	_ "github.com/joho/godotenv/autoload"

	"github.com/aidanlsb/vaudit/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
