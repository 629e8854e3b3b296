// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/redact-studio/internal/stubservice"
	"github.com/pdiddy/redact-studio/pkg/types"
)

var stubCmd = &cobra.Command{
	Use:   "stub",
	Short: "Run a local stand-in for the redaction service",
	Long: `Stub serves the service's endpoints locally for development: analysis
counts emails, phone numbers, URLs, and IP addresses by pattern, and the
redaction endpoints return the uploaded file unchanged. Point other commands
at it with --server http://<addr>.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := types.StubConfig{Addr: viper.GetString("stub.addr")}
		fmt.Fprintf(cmd.OutOrStdout(), "Stub service listening on http://%s\n", cfg.Addr)
		return stubservice.New(logger).Start(cmd.Context(), cfg)
	},
}

func init() {
	stubCmd.Flags().String("addr", "", "listen address (default 127.0.0.1:3000)")
	_ = viper.BindPFlag("stub.addr", stubCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(stubCmd)
}
