// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file is one secret: the filename is the key and the trimmed contents
// are the value. This keeps PDF passwords off the command line and out of
// shell history.
package secrets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDir is the secrets directory read at startup.
const DefaultDir = ".secrets/"

// Known keys.
const (
	KeyPDFPassword      = "pdf-password"
	KeyPDFOwnerPassword = "pdf-owner-password"
)

// warnOut receives warnings about unreadable files.
var warnOut io.Writer = os.Stderr

// Store is a loaded set of secrets.
type Store map[string]string

// Load reads all files in dir. A missing directory is not an error and
// yields an empty Store. Unreadable files produce a warning and are skipped.
func Load(dir string) (Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Store{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	s := make(Store)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(warnOut, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			s[name] = value
		}
	}
	return s, nil
}

// Get returns flagValue when set, otherwise the stored secret for key.
func (s Store) Get(key, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return s[key]
}

// Passwords resolves the PDF user and owner passwords, preferring explicit
// values over stored ones.
func (s Store) Passwords(password, owner string) (string, string) {
	return s.Get(KeyPDFPassword, password), s.Get(KeyPDFOwnerPassword, owner)
}
