package main

import (
	"fmt"
	"os"

	"github.com/eshaffer321/ynab-card-sync/internal/cli"
	"github.com/eshaffer321/ynab-card-sync/internal/infrastructure/config"
)

func main() {
	flags := cli.ParseSyncFlags()
	cfg := config.LoadOrEnvWithPath(flags.ConfigPath)

	if err := cli.RunSync(cfg, flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
