// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prefs persists user interface preferences in a YAML file.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/redact-studio/pkg/types"
)

// Theme is the display theme preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// FileName is the preferences file name inside the config directory.
const FileName = "prefs.yaml"

// Prefs are the persisted preferences.
type Prefs struct {
	Theme     Theme          `yaml:"theme"`
	Language  types.Language `yaml:"language"`
	Entities  []string       `yaml:"entities,omitempty"`
	OutputDir string         `yaml:"output_dir"`
}

// Defaults returns the preferences used when no file exists.
func Defaults() Prefs {
	return Prefs{
		Theme:     ThemeSystem,
		Language:  types.LangEnglish,
		OutputDir: ".",
	}
}

// DefaultPath returns ~/.config/redact-studio/prefs.yaml, or FileName in the
// working directory when no config directory can be found.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(dir, "redact-studio", FileName)
}

// Load reads preferences from path. A missing file yields Defaults; fields
// absent from the file keep their default values.
func Load(path string) (Prefs, error) {
	p := Defaults()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Defaults(), fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Defaults(), fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Save writes p to path, creating parent directories.
func Save(path string, p Prefs) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling preferences: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks theme and language.
func (p Prefs) Validate() error {
	switch p.Theme {
	case ThemeLight, ThemeDark, ThemeSystem:
	default:
		return fmt.Errorf("unknown theme %q (want light, dark or system)", p.Theme)
	}
	if !p.Language.Valid() {
		return fmt.Errorf("unsupported language %q", p.Language)
	}
	return nil
}

// Keys lists the settable preference keys.
var Keys = []string{"theme", "language", "entities", "output_dir"}

// Set assigns a preference by key. Entities are comma-separated. An invalid
// value leaves p unchanged.
func (p *Prefs) Set(key, value string) error {
	next := *p
	value = strings.TrimSpace(value)
	switch key {
	case "theme":
		next.Theme = Theme(strings.ToLower(value))
	case "language":
		next.Language = types.Language(strings.ToLower(value))
	case "entities":
		next.Entities = nil
		for _, e := range strings.Split(value, ",") {
			if e = strings.ToUpper(strings.TrimSpace(e)); e != "" {
				next.Entities = append(next.Entities, e)
			}
		}
	case "output_dir", "output-dir":
		next.OutputDir = value
	default:
		return fmt.Errorf("unknown preference %q (keys: %s)", key, strings.Join(Keys, ", "))
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*p = next
	return nil
}

// Resolve returns light or dark. ThemeSystem is resolved with lookupEnv,
// which is normally os.LookupEnv.
func (t Theme) Resolve(lookupEnv func(string) (string, bool)) Theme {
	if t == ThemeLight || t == ThemeDark {
		return t
	}
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	// COLORFGBG is "fg;bg" or "fg;default;bg"; backgrounds 0-6 and 8 are dark.
	v, ok := lookupEnv("COLORFGBG")
	if !ok {
		return ThemeLight
	}
	parts := strings.Split(v, ";")
	bg, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return ThemeLight
	}
	if bg <= 6 || bg == 8 {
		return ThemeDark
	}
	return ThemeLight
}
