package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/fieldrx/hcplog/internal/cli"
)

func main() {
	// Local development reads LLM credentials from a .env file;
	// a missing file is fine
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
