package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/example/invoicer/internal/cli"
)

func main() {
	// Optional: INVOICER_* overrides may live in a local .env file.
	_ = godotenv.Load()

	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
