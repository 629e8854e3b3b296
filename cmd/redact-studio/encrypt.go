// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/redact-studio/pkg/types"
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt <file | - | clipboard>",
	Short: "Password-protect a PDF",
	Long: `Encrypt uploads a PDF with a user password, and optionally an owner
password, and saves the encrypted copy as encrypted_<name>. Passwords can be
kept in .secrets/pdf-password and .secrets/pdf-owner-password instead of
being passed as flags.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSubmission(cmd, types.ProfileEncryptPDF, args[0], cmd.OutOrStdout())
	},
}

func init() {
	addOptionFlags(encryptCmd.Flags(), types.ProfileEncryptPDF)
	encryptCmd.Flags().String("output-dir", "", "directory for the encrypted file (default from preferences)")

	rootCmd.AddCommand(encryptCmd)
}
