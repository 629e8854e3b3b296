// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/redact-studio/internal/acquire"
	"github.com/pdiddy/redact-studio/internal/pipeline"
	"github.com/pdiddy/redact-studio/pkg/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch <files...>",
	Short: "Submit many files through one profile",
	Long: `Batch runs every file through its own pipeline for the chosen profile
(analyze, redact-image, redact-image-file, redact-pdf, encrypt-pdf), a few
at a time. Files the profile does not accept are skipped. Binary results are
saved with the profile's prefix; analysis results are saved as
<name>-analysis.json.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().String("profile", types.ProfileRedactImage.Name, "profile to run: analyze, redact-image, redact-image-file, redact-pdf, encrypt-pdf")
	batchCmd.Flags().Int("concurrency", 0, "submissions in flight at once (default 4)")
	batchCmd.Flags().String("output-dir", "", "directory for results (default from preferences)")

	// The union of every profile's option flags; each profile reads only its own.
	addOptionFlags(batchCmd.Flags(), types.ProfileRedactPDF)
	batchCmd.Flags().String("fill-color", types.ProfileRedactImage.Defaults.FillColor, "hex colour painted over redacted regions")
	batchCmd.Flags().Bool("ocr", false, "run OCR on images before redaction")
	batchCmd.Flags().String("password", "", "user password for encrypt-pdf")
	batchCmd.Flags().String("owner-password", "", "owner password for encrypt-pdf")

	_ = viper.BindPFlag("concurrency", batchCmd.Flags().Lookup("concurrency"))

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("profile")
	profile, err := types.LookupProfile(name)
	if err != nil {
		return err
	}
	if err := acquire.CheckInputs(args); err != nil {
		return err
	}

	p := loadPrefs()
	cfg := types.BatchConfig{
		Concurrency: viper.GetInt("concurrency"),
		OutputDir:   outputDir(cmd, p),
	}
	opts := buildOptions(cmd.Flags(), profile, p)
	loader := &acquire.Loader{Stdin: cmd.InOrStdin(), TextOnly: profile.TextOnly()}

	result := pipeline.RunBatch(cmd.Context(), profile, newClient(), loader.Load, args, opts, cfg, cmd.OutOrStdout(), logger)
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed", result.Failed)
	}
	return nil
}
