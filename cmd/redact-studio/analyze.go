// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/redact-studio/internal/report"
	"github.com/pdiddy/redact-studio/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <text | text:... | file | - | clipboard>",
	Short: "Find sensitive entities in text",
	Long: `Analyze sends text to the service's /analyze endpoint and prints how many
entities of each type it found. The input is inline text, a text file, "-" for
stdin, or "clipboard" for the system clipboard. Several words are joined into
one text.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := strings.Join(args, " ")
		return runSubmission(cmd, types.ProfileAnalyze, input, cmd.OutOrStdout())
	},
}

func init() {
	addOptionFlags(analyzeCmd.Flags(), types.ProfileAnalyze)
	analyzeCmd.Flags().String("format", string(report.FormatText), "output format: text, json, yaml, markdown, html")
	analyzeCmd.Flags().Bool("save", false, "also save the raw result as analysis-results.json")
	analyzeCmd.Flags().String("output-dir", "", "directory for --save (default from preferences)")

	rootCmd.AddCommand(analyzeCmd)
}
