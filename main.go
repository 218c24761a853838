package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/mpetrov/askmycar/cmd"
)

func main() {
	// Credentials are typically supplied through the environment; a local
	// .env file is honored when present.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
