package main

import (
	"fmt"
	"os"

	"Traxor/pkg/config"

	"github.com/spf13/cobra"
)

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "traxor",
		Short: "Traxor - crypto trading signal service",
		Long: `Traxor turns a free-text question about a crypto asset into a structured
trading signal backed by a chat-completion upstream and live market prices.

Run without a subcommand to start the HTTP server.`,
		SilenceUsage: true,
		RunE:         runServe,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config/config.yaml", "config file path")

	root.AddCommand(newServeCmd(), newSignalCmd(), newResolveCmd())
	return root
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
