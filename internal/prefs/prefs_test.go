// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/redact-studio/pkg/types"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), p)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", FileName)
	want := Prefs{Theme: ThemeDark, Language: types.LangHindi, Entities: []string{"PERSON"}, OutputDir: "out"}
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("theme: dark\n"), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, got.Theme)
	assert.Equal(t, types.LangEnglish, got.Language)
	assert.Equal(t, ".", got.OutputDir)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	bad := map[string]string{
		"syntax.yaml": "theme: [",
		"theme.yaml":  "theme: neon\n",
		"lang.yaml":   "language: fr\n",
	}
	for name, body := range bad {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		p, err := Load(path)
		assert.Error(t, err, name)
		assert.Equal(t, Defaults(), p, name)
	}
}

func TestSet(t *testing.T) {
	p := Defaults()
	require.NoError(t, p.Set("theme", "Dark"))
	require.NoError(t, p.Set("language", "ES"))
	require.NoError(t, p.Set("entities", "person, email_address,,"))
	require.NoError(t, p.Set("output-dir", "/tmp/out"))

	assert.Equal(t, ThemeDark, p.Theme)
	assert.Equal(t, types.LangSpanish, p.Language)
	assert.Equal(t, []string{"PERSON", "EMAIL_ADDRESS"}, p.Entities)
	assert.Equal(t, "/tmp/out", p.OutputDir)

	assert.Error(t, p.Set("colour", "red"))
	assert.Error(t, p.Set("theme", "neon"))
}

func TestSet_InvalidValueLeavesPrefsUnchanged(t *testing.T) {
	p := Defaults()
	require.NoError(t, p.Set("theme", "dark"))
	before := p

	assert.Error(t, p.Set("theme", "neon"))
	assert.Error(t, p.Set("language", "klingon"))
	assert.Equal(t, before, p)
	assert.NoError(t, p.Validate())
}

func TestThemeResolve(t *testing.T) {
	env := func(v string, set bool) func(string) (string, bool) {
		return func(string) (string, bool) { return v, set }
	}
	tests := []struct {
		name  string
		theme Theme
		env   func(string) (string, bool)
		want  Theme
	}{
		{"explicit light", ThemeLight, env("15;0", true), ThemeLight},
		{"explicit dark", ThemeDark, env("", false), ThemeDark},
		{"system unset", ThemeSystem, env("", false), ThemeLight},
		{"system dark bg", ThemeSystem, env("15;0", true), ThemeDark},
		{"system light bg", ThemeSystem, env("0;15", true), ThemeLight},
		{"three fields", ThemeSystem, env("15;default;0", true), ThemeDark},
		{"garbage", ThemeSystem, env("x;y", true), ThemeLight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.theme.Resolve(tt.env))
		})
	}
}
