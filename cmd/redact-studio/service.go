// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/redact-studio/pkg/types"
)

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Query the service's health and catalog",
}

var serviceHealthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the service is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		msg, err := c.Health(cmd.Context())
		if err != nil {
			return fmt.Errorf("service at %s: %w", c.BaseURL(), err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", c.BaseURL(), msg)
		return nil
	},
}

var serviceEntitiesCmd = &cobra.Command{
	Use:   "entities",
	Short: "List the entity types the service detects",
	RunE: func(cmd *cobra.Command, args []string) error {
		lang, _ := cmd.Flags().GetString("language")
		list, err := newClient().SupportedEntities(cmd.Context(), types.Language(lang))
		if err != nil {
			return err
		}
		for _, e := range list {
			fmt.Fprintln(cmd.OutOrStdout(), e)
		}
		return nil
	},
}

var serviceRecognizersCmd = &cobra.Command{
	Use:   "recognizers",
	Short: "List the recognizers the service runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		lang, _ := cmd.Flags().GetString("language")
		list, err := newClient().Recognizers(cmd.Context(), types.Language(lang))
		if err != nil {
			return err
		}
		for _, r := range list {
			fmt.Fprintln(cmd.OutOrStdout(), r)
		}
		return nil
	},
}

func init() {
	serviceCmd.PersistentFlags().String("language", string(types.LangEnglish), "language to query")

	serviceCmd.AddCommand(serviceHealthCmd, serviceEntitiesCmd, serviceRecognizersCmd)
	rootCmd.AddCommand(serviceCmd)
}
