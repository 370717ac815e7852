package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"Traxor/internal/di"
	"Traxor/internal/services/signal"

	"github.com/spf13/cobra"
)

func newSignalCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "signal [query]",
		Short: "Generate one signal and print it",
		Long: `Runs a single query through the signal pipeline and prints the result.

Example:
  traxor signal "should I long BTC this week?"
  traxor signal --format text "eth outlook"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return fmt.Errorf("query must not be empty")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			svc, err := di.InitializeSignalService(cfg)
			if err != nil {
				return fmt.Errorf("signal service initialization failed: %w", err)
			}

			sig := svc.Submit(cmd.Context(), query)
			out := cmd.OutOrStdout()
			switch format {
			case "text":
				_, err = fmt.Fprintln(out, signal.Render(sig))
				return err
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(sig)
			default:
				return fmt.Errorf("unknown format %q (want json or text)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or text")
	return cmd
}
