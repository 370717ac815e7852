package main

import (
	"fmt"
	"strings"

	"Traxor/internal/services/signal"

	"github.com/spf13/cobra"
)

// newResolveCmd prints the ticker a query maps to, without calling upstream.
func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [query]",
		Short: "Print the ticker a query resolves to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			r := signal.NewResolver(cfg.Signal.DefaultSymbol)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), r.Resolve(strings.Join(args, " ")))
			return err
		},
	}
}
