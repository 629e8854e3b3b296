// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/redact-studio/internal/acquire"
	"github.com/pdiddy/redact-studio/pkg/types"
)

// AnalysisFileName is the name under which JSON results are saved.
const AnalysisFileName = "analysis-results.json"

// DefaultDownloadPrefix is used when a profile names none.
const DefaultDownloadPrefix = "redacted_"

// DownloadName derives the saved file name for a binary result:
// prefix + original base name. A missing name becomes "document" and a
// missing extension is taken from mediaType.
func DownloadName(prefix, original, mediaType string) string {
	if prefix == "" {
		prefix = DefaultDownloadPrefix
	}
	name := filepath.Base(original)
	if original == "" || name == "." || name == string(filepath.Separator) {
		name = "document"
	}
	if filepath.Ext(name) == "" {
		name += acquire.ExtensionFor(mediaType)
	}
	return prefix + name
}

// Download saves the current result into dir. See SaveResult.
func (p *Pipeline) Download(dir string) (string, error) {
	return SaveResult(p.Result(), p.profile.DownloadPrefix, dir)
}

// SaveResult writes a successful result into dir and returns the path.
// Binary payloads are saved as DownloadName(prefix, r.SourceName); JSON
// results are saved as an indented copy named AnalysisFileName.
func SaveResult(r *types.Result, prefix, dir string) (string, error) {
	if !r.Succeeded() {
		return "", ErrNoResult
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	var (
		name string
		data []byte
	)
	switch r.Kind {
	case types.ResultBinary:
		name = DownloadName(prefix, r.SourceName, r.ContentType)
		data = r.Blob
	case types.ResultJSON:
		name = AnalysisFileName
		var buf bytes.Buffer
		if err := json.Indent(&buf, r.Data, "", "  "); err != nil {
			return "", fmt.Errorf("formatting result: %w", err)
		}
		buf.WriteByte('\n')
		data = buf.Bytes()
	default:
		return "", ErrNoResult
	}

	dest := filepath.Join(dir, name)
	if err := writeFileAtomic(dest, bytes.NewReader(data)); err != nil {
		return "", err
	}
	return dest, nil
}

// writeFileAtomic writes r to destPath through a temporary file that is
// renamed into place on success.
func writeFileAtomic(destPath string, r io.Reader) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".download-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, r)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
