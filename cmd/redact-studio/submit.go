// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pdiddy/redact-studio/internal/acquire"
	"github.com/pdiddy/redact-studio/internal/pipeline"
	"github.com/pdiddy/redact-studio/internal/prefs"
	"github.com/pdiddy/redact-studio/internal/report"
	"github.com/pdiddy/redact-studio/pkg/types"
)

// addOptionFlags registers the flags for every option field profile sends.
func addOptionFlags(fs *pflag.FlagSet, profile types.Profile) {
	d := profile.Defaults
	if profile.Uses(types.FieldLanguage) {
		fs.String("language", "", "detection language: en, es, mr, hi, ka (default from preferences)")
	}
	if profile.Uses(types.FieldEntities) {
		fs.StringSlice("entities", nil, "entity types to detect, comma-separated (default: all)")
	}
	if profile.Uses(types.FieldFillColor) {
		fs.String("fill-color", d.FillColor, "hex colour painted over redacted regions")
	}
	if profile.Uses(types.FieldOCR) {
		fs.Bool("ocr", d.ApplyOCR, "run OCR on the image before redaction")
	}
	if profile.Uses(types.FieldScoreThreshold) {
		fs.String("score-threshold", d.ScoreThreshold, "minimum detection score, 0 to 1")
	}
	if profile.Uses(types.FieldDecisionProcess) {
		fs.Bool("decision-process", d.ReturnDecisionProcess, "ask the service to explain its detections")
	}
	if profile.Uses(types.FieldPassword) {
		fs.String("password", "", "user password (default from .secrets/pdf-password)")
	}
	if profile.Uses(types.FieldOwnerPassword) {
		fs.String("owner-password", "", "owner password (default from .secrets/pdf-owner-password)")
	}
}

// buildOptions assembles options for profile from flags, preferences, and
// profile defaults, in that order of precedence.
func buildOptions(fs *pflag.FlagSet, profile types.Profile, p prefs.Prefs) types.Options {
	opts := profile.Defaults
	opts.Entities = append([]string(nil), profile.Defaults.Entities...)

	if profile.Uses(types.FieldLanguage) {
		opts.Language = p.Language
		if v, _ := fs.GetString("language"); v != "" {
			opts.Language = types.Language(v)
		}
	}
	if profile.Uses(types.FieldEntities) {
		if len(p.Entities) > 0 {
			opts.Entities = filterEntities(p.Entities, profile.Entities)
		}
		if fs.Changed("entities") {
			opts.Entities, _ = fs.GetStringSlice("entities")
		}
	}
	if profile.Uses(types.FieldFillColor) {
		opts.FillColor, _ = fs.GetString("fill-color")
	}
	if profile.Uses(types.FieldOCR) {
		opts.ApplyOCR, _ = fs.GetBool("ocr")
	}
	if profile.Uses(types.FieldScoreThreshold) {
		opts.ScoreThreshold, _ = fs.GetString("score-threshold")
	}
	if profile.Uses(types.FieldDecisionProcess) {
		opts.ReturnDecisionProcess, _ = fs.GetBool("decision-process")
	}
	if profile.Uses(types.FieldPassword) || profile.Uses(types.FieldOwnerPassword) {
		pw, _ := fs.GetString("password")
		owner, _ := fs.GetString("owner-password")
		opts.Password, opts.OwnerPassword = loadedSecrets.Passwords(pw, owner)
	}
	return opts
}

// filterEntities keeps the preferred entities that profile can select, so
// one preference list serves pages with different entity sets.
func filterEntities(preferred, allowed []string) []string {
	set := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		set[a] = true
	}
	var out []string
	for _, e := range preferred {
		if set[strings.ToUpper(e)] {
			out = append(out, e)
		}
	}
	return out
}

// runSubmission drives one pipeline for input and reports to w: JSON
// results are rendered, binary results are saved.
func runSubmission(cmd *cobra.Command, profile types.Profile, input string, w io.Writer) error {
	p := loadPrefs()
	loader := &acquire.Loader{Stdin: cmd.InOrStdin(), TextOnly: profile.TextOnly()}

	a, err := loader.Load(input)
	if err != nil {
		var ce *acquire.ClipboardError
		if errors.As(err, &ce) {
			return fmt.Errorf("%w; pass a file path instead", err)
		}
		return fmt.Errorf("loading %s: %w", input, err)
	}

	client := newClient()
	pl := pipeline.New(profile, client, pipeline.WithLogger(logger))
	if err := pl.Acquire(a); err != nil {
		return err
	}
	if pv, err := pl.Preview(); err == nil {
		printPreview(w, pv)
	}

	opts := buildOptions(cmd.Flags(), profile, p)
	fmt.Fprintf(w, "Submitting to %s%s ...\n", client.BaseURL(), profile.Endpoint)
	res, err := pl.Submit(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if res.Kind == types.ResultJSON {
		return renderAnalysis(cmd, w, res, p)
	}
	path, err := pl.Download(outputDir(cmd, p))
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "saved:   %s (%d bytes, %s)\n", path, len(res.Blob), res.ContentType)
	return nil
}

func printPreview(w io.Writer, pv *pipeline.Preview) {
	switch pv.Kind {
	case types.KindText:
		fmt.Fprintf(w, "Input: %d characters of text\n", len([]rune(pv.Text)))
	case types.KindImage:
		fmt.Fprintf(w, "Input: %s (%s, %d bytes)\n", pv.Name, pv.MediaType, pv.Size)
	case types.KindPDF:
		fmt.Fprintf(w, "Input: %s (%d pages, %d bytes)\n", pv.Name, pv.Pages, pv.Size)
	}
}

// renderAnalysis prints a JSON result in the requested format and, with
// --save, writes the raw result to the output directory.
func renderAnalysis(cmd *cobra.Command, w io.Writer, res *types.Result, p prefs.Prefs) error {
	formatName, _ := cmd.Flags().GetString("format")
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}
	s, err := report.Summarize(res.Data)
	if err != nil {
		return fmt.Errorf("reading analysis result: %w", err)
	}
	opts := report.Options{Theme: string(p.Theme.Resolve(nil))}
	if err := report.Render(w, s, format, opts); err != nil {
		return err
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		path, err := pipeline.SaveResult(res, "", outputDir(cmd, p))
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "saved:   %s\n", path)
	}
	return nil
}
