// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func TestSummarize_MapForm(t *testing.T) {
	s, err := Summarize([]byte(`{"PERSON": 2, "EMAIL_ADDRESS": 1}`))
	require.NoError(t, err)
	assert.Equal(t, []Entry{{"PERSON", 2}, {"EMAIL_ADDRESS", 1}}, s.Entries)
	assert.Equal(t, 3, s.Total)
	assert.Empty(t, s.Findings)
}

func TestSummarize_ListForm(t *testing.T) {
	data := `[
		{"entity_type": "PERSON", "start": 0, "end": 4, "score": 0.85},
		{"entity_type": "EMAIL_ADDRESS", "start": 10, "end": 26, "score": 1.0},
		{"entity_type": "PERSON", "start": 30, "end": 34, "score": 0.7}
	]`
	s, err := Summarize([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, []Entry{{"PERSON", 2}, {"EMAIL_ADDRESS", 1}}, s.Entries)
	require.Len(t, s.Findings, 3)
	assert.Equal(t, Finding{EntityType: "EMAIL_ADDRESS", Start: 10, End: 26, Score: 1.0}, s.Findings[1])
}

func TestSummarize_WrappedResults(t *testing.T) {
	s, err := Summarize([]byte(`{"results": [{"entity_type": "URL", "start": 1, "end": 9, "score": 0.5}]}`))
	require.NoError(t, err)
	assert.Equal(t, []Entry{{"URL", 1}}, s.Entries)
}

func TestSummarize_TiesSortByName(t *testing.T) {
	s, err := Summarize([]byte(`{"URL": 1, "DATE": 1, "PERSON": 3}`))
	require.NoError(t, err)
	assert.Equal(t, []Entry{{"PERSON", 3}, {"DATE", 1}, {"URL", 1}}, s.Entries)
}

func TestSummarize_Empty(t *testing.T) {
	for _, in := range []string{`{}`, `[]`} {
		s, err := Summarize([]byte(in))
		require.NoError(t, err, in)
		assert.Empty(t, s.Entries)
		assert.Zero(t, s.Total)
	}
}

func TestSummarize_Invalid(t *testing.T) {
	for _, in := range []string{`not json`, `"text"`, `{"PERSON": "two"}`, `[{"start": 1}]`} {
		_, err := Summarize([]byte(in))
		assert.Error(t, err, in)
	}
}

func sample(t *testing.T) *Summary {
	t.Helper()
	s, err := Summarize([]byte(`{"PERSON": 2, "EMAIL_ADDRESS": 1}`))
	require.NoError(t, err)
	return s
}

func TestRender_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sample(t), FormatText, Options{}))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "ENTITY"))
	assert.Contains(t, lines[1], "PERSON")
	assert.True(t, strings.HasSuffix(lines[1], "2"))
	assert.True(t, strings.HasSuffix(lines[3], "3"))

	buf.Reset()
	require.NoError(t, Render(&buf, &Summary{}, FormatText, Options{}))
	assert.Equal(t, "No entities found.\n", buf.String())
}

func TestRender_JSONAndYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sample(t), FormatJSON, Options{}))
	var got Summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 3, got.Total)

	buf.Reset()
	require.NoError(t, Render(&buf, sample(t), FormatYAML, Options{}))
	var y Summary
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &y))
	assert.Equal(t, sample(t).Entries, y.Entries)
}

func TestRender_Markdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sample(t), FormatMarkdown, Options{Title: "Report"}))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# Report\n"))
	assert.Contains(t, out, "| PERSON | 2 |")
	assert.Contains(t, out, "| **Total** | **3** |")
}

func TestRender_HTMLCarriesTheme(t *testing.T) {
	tests := []struct {
		theme string
		want  string
	}{
		{"dark", `<body class="dark">`},
		{"light", `<body class="light">`},
		{"", `<body class="light">`},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, sample(t), FormatHTML, Options{Theme: tt.theme}))
			out := buf.String()
			assert.Contains(t, out, tt.want)
			assert.Contains(t, out, "<table>")
			assert.Contains(t, out, "<td>PERSON</td>")
			assert.Contains(t, out, "<title>Analysis Results</title>")
		})
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "MD": FormatMarkdown, "yml": FormatYAML, "html": FormatHTML, "json": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("pdf")
	assert.Error(t, err)
}
