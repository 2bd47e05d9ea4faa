package main

import (
	"os"

	"github.com/sfind-dev/sfind/internal/app"
	"github.com/sfind-dev/sfind/internal/config"
)

func main() {
	// Load configuration from command-line flags
	cfg := config.New()

	// Create and run the application
	os.Exit(app.New(cfg).Run())
}
