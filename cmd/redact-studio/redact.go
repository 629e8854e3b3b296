// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/redact-studio/pkg/types"
)

var redactCmd = &cobra.Command{
	Use:   "redact",
	Short: "Redact sensitive content from images and PDFs",
	Long: `Redact uploads an image or PDF and saves the redacted copy the service
returns as redacted_<name> in the output directory.`,
}

var redactImageCmd = &cobra.Command{
	Use:   "image <file | - | clipboard>",
	Short: "Redact an image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSubmission(cmd, types.ProfileRedactImage, args[0], cmd.OutOrStdout())
	},
}

var redactImageFileCmd = &cobra.Command{
	Use:   "image-file <file | - | clipboard>",
	Short: "Redact an image through the /redact-image form endpoint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSubmission(cmd, types.ProfileRedactImageFile, args[0], cmd.OutOrStdout())
	},
}

var redactPDFCmd = &cobra.Command{
	Use:   "pdf <file | - | clipboard>",
	Short: "Redact a PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSubmission(cmd, types.ProfileRedactPDF, args[0], cmd.OutOrStdout())
	},
}

func init() {
	addOptionFlags(redactImageCmd.Flags(), types.ProfileRedactImage)
	addOptionFlags(redactImageFileCmd.Flags(), types.ProfileRedactImageFile)
	addOptionFlags(redactPDFCmd.Flags(), types.ProfileRedactPDF)
	redactCmd.PersistentFlags().String("output-dir", "", "directory for the redacted file (default from preferences)")

	redactCmd.AddCommand(redactImageCmd, redactImageFileCmd, redactPDFCmd)
	rootCmd.AddCommand(redactCmd)
}
