// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.yaml.in/yaml/v3"
)

// Format selects an output rendering.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Formats lists the supported formats in help order.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatMarkdown, FormatHTML}

// ParseFormat accepts a format name or a common alias ("md", "yml").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "table":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unknown format %q", s)
}

// Options controls rendering.
type Options struct {
	// Title heads Markdown and HTML output.
	Title string
	// Theme is "light" or "dark" and becomes the HTML body class.
	Theme string
}

const defaultTitle = "Analysis Results"

// Render writes s to w in the given format.
func Render(w io.Writer, s *Summary, f Format, opts Options) error {
	if opts.Title == "" {
		opts.Title = defaultTitle
	}
	switch f {
	case FormatText:
		return renderText(w, s)
	case FormatJSON:
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case FormatYAML:
		data, err := yaml.Marshal(s)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(s, opts.Title))
		return err
	case FormatHTML:
		return renderHTML(w, s, opts)
	}
	return fmt.Errorf("unknown format %q", f)
}

func renderText(w io.Writer, s *Summary) error {
	if len(s.Entries) == 0 {
		_, err := fmt.Fprintln(w, "No entities found.")
		return err
	}
	width := len("ENTITY")
	for _, e := range s.Entries {
		width = max(width, len(e.Entity))
	}
	fmt.Fprintf(w, "%-*s  %5s\n", width, "ENTITY", "COUNT")
	for _, e := range s.Entries {
		fmt.Fprintf(w, "%-*s  %5d\n", width, e.Entity, e.Count)
	}
	_, err := fmt.Fprintf(w, "%-*s  %5d\n", width, "TOTAL", s.Total)
	return err
}

// Markdown renders s as a Markdown document with a count table and, when
// present, a findings table.
func Markdown(s *Summary, title string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	if len(s.Entries) == 0 {
		b.WriteString("No entities found.\n")
		return b.String()
	}
	b.WriteString("| Entity | Count |\n|---|---:|\n")
	for _, e := range s.Entries {
		fmt.Fprintf(&b, "| %s | %d |\n", e.Entity, e.Count)
	}
	fmt.Fprintf(&b, "| **Total** | **%d** |\n", s.Total)

	if len(s.Findings) > 0 {
		b.WriteString("\n## Findings\n\n| Entity Type | Start | End | Score |\n|---|---:|---:|---:|\n")
		for _, f := range s.Findings {
			fmt.Fprintf(&b, "| %s | %d | %d | %.2f |\n", f.EntityType, f.Start, f.End, f.Score)
		}
	}
	return b.String()
}

var md = goldmark.New(goldmark.WithExtensions(extension.Table))

func renderHTML(w io.Writer, s *Summary, opts Options) error {
	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(s, opts.Title)), &body); err != nil {
		return fmt.Errorf("converting markdown: %w", err)
	}
	theme := opts.Theme
	if theme != "dark" {
		theme = "light"
	}
	_, err := fmt.Fprintf(w, htmlPage, html.EscapeString(opts.Title), theme, body.String())
	return err
}

const htmlPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body.light { background: #ffffff; color: #111827; }
body.dark { background: #111827; color: #f3f4f6; }
table { border-collapse: collapse; }
th, td { padding: 4px 12px; border-bottom: 1px solid #9ca3af; }
</style>
</head>
<body class="%s">
%s</body>
</html>
`
