package main

import (
	"fmt"

	"github.com/akeren/waitlist-api/internal/log"
	"github.com/spf13/cobra"
)

func newPingCmd(logger *log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the store is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			manager, err := connectStore(ctx, logger)
			if err != nil {
				return fmt.Errorf("connect to store: %w", err)
			}
			defer closeStore(logger, manager)

			if err := manager.Ping(ctx); err != nil {
				return err
			}

			storeCfg := manager.Config()
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "store reachable (%s)\n", storeCfg.Driver())
			return err
		},
	}
}
