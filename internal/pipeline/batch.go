// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/redact-studio/pkg/types"
)

// DefaultConcurrency bounds a batch when the config leaves it unset.
const DefaultConcurrency = 4

// BatchResult holds the outcome of a batch run.
type BatchResult struct {
	Saved   int
	Skipped int
	Failed  int
	Outputs []string
}

// Total returns the number of inputs processed.
func (r BatchResult) Total() int {
	return r.Saved + r.Skipped + r.Failed
}

// HasFailures reports whether any input failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// LoadFunc resolves one command-line input to an artifact.
type LoadFunc func(input string) (*types.Artifact, error)

// RunBatch submits every input through its own pipeline, at most
// cfg.Concurrency at a time. Inputs the profile does not accept are skipped;
// failures are counted and do not stop the batch. Progress lines and a final
// summary go to w.
func RunBatch(ctx context.Context, profile types.Profile, poster Poster, load LoadFunc, inputs []string, opts types.Options, cfg types.BatchConfig, w io.Writer, logger *slog.Logger) BatchResult {
	limit := cfg.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	var (
		mu     sync.Mutex
		result BatchResult
	)
	report := func(format string, args ...any) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(w, format, args...)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, input := range inputs {
		input := input
		g.Go(func() error {
			out, err := runOne(gctx, profile, poster, load, input, opts, cfg.OutputDir, logger)

			mu.Lock()
			defer mu.Unlock()
			var ve *ValidationError
			switch {
			case errors.As(err, &ve):
				fmt.Fprintf(w, "skipped: %s (%s)\n", input, ve.Message)
				result.Skipped++
			case err != nil:
				fmt.Fprintf(w, "failed:  %s (%v)\n", input, err)
				result.Failed++
			default:
				fmt.Fprintf(w, "saved:   %s -> %s\n", input, out)
				result.Saved++
				result.Outputs = append(result.Outputs, out)
			}
			return nil
		})
	}
	_ = g.Wait()

	report("\nBatch summary: %d saved, %d skipped, %d failed (total: %d)\n",
		result.Saved, result.Skipped, result.Failed, result.Total())
	return result
}

func runOne(ctx context.Context, profile types.Profile, poster Poster, load LoadFunc, input string, opts types.Options, dir string, logger *slog.Logger) (string, error) {
	a, err := load(input)
	if err != nil {
		return "", err
	}
	p := New(profile, poster, WithLogger(logger))
	if err := p.Acquire(a); err != nil {
		return "", err
	}
	r, err := p.Submit(ctx, opts)
	if err != nil {
		return "", err
	}
	if r.Kind == types.ResultJSON {
		return saveBatchJSON(r, a.Name, dir)
	}
	return p.Download(dir)
}

// saveBatchJSON writes a JSON result next to its siblings as
// <stem>-analysis.json so that inputs do not overwrite each other.
func saveBatchJSON(r *types.Result, name, dir string) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, r.Data, "", "  "); err != nil {
		return "", fmt.Errorf("formatting result: %w", err)
	}
	buf.WriteByte('\n')

	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if stem == "" || stem == "." {
		stem = "text"
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}
	dest := filepath.Join(dir, stem+"-analysis.json")
	if err := writeFileAtomic(dest, &buf); err != nil {
		return "", err
	}
	return dest, nil
}
