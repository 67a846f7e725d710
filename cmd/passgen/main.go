package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/vaultpass/passgen-go/internal/cli"
	"github.com/vaultpass/passgen-go/internal/config"
)

func main() {
	// A missing .env is normal for the CLI.
	_ = godotenv.Load()

	rootCmd := cli.NewRootCommand(cli.Options{Config: config.Load()})
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
