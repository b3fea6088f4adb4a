package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"finapp/internal/api"
)

func pingCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Test the backend API connection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			client := api.NewClient(cfg.APIBase)

			resp, err := client.Status(cmd.Context())
			if err != nil {
				return fmt.Errorf("API connection failed: %w", err)
			}
			if !resp.OK() {
				return fmt.Errorf("%s (status %d)", resp.ErrorMessage("API error."), resp.StatusCode)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "API reachable. %s\n", client.BaseURL())
			return nil
		},
	}
}
