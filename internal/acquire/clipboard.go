// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

const (
	binWlPaste = "wl-paste"
	binXclip   = "xclip"
	binPbpaste = "pbpaste"
)

// binaryTypes lists clipboard targets read as binary artifacts, in order of
// preference.
var binaryTypes = []string{"image/png", "image/jpeg", "image/gif", "image/webp", "application/pdf"}

// ErrClipboardEmpty is returned when the clipboard holds nothing usable.
var ErrClipboardEmpty = errors.New("no supported content found in clipboard")

// ClipboardError reports that the clipboard could not be read. It is kept
// distinct from validation and service errors so callers can fall back to
// file upload.
type ClipboardError struct {
	Op  string
	Err error
}

func (e *ClipboardError) Error() string {
	return fmt.Sprintf("clipboard %s: %v", e.Op, e.Err)
}

func (e *ClipboardError) Unwrap() error { return e.Err }

// Clipboard reads the system clipboard.
type Clipboard interface {
	// Name returns the tool backing the clipboard (e.g. "wl-paste").
	Name() string

	// Available reports whether the tool exists on PATH.
	Available() bool

	// Types lists the media types currently offered by the clipboard.
	Types() ([]string, error)

	// Read returns the clipboard content for mediaType. An empty mediaType
	// reads plain text.
	Read(mediaType string) ([]byte, error)
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Output(name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Output(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

// tool implements Clipboard for one command-line clipboard program. The
// programs differ only in the arguments used to list and read targets.
type tool struct {
	bin      string
	listArgs []string // nil when the tool cannot list targets
	readArgs func(mediaType string) []string
	textOnly bool
	exec     executor
}

func (t *tool) Name() string { return t.bin }

func (t *tool) Available() bool {
	_, err := t.exec.LookPath(t.bin)
	return err == nil
}

func (t *tool) Types() ([]string, error) {
	if t.listArgs == nil {
		return []string{"text/plain"}, nil
	}
	out, err := t.exec.Output(t.bin, t.listArgs...)
	if err != nil {
		return nil, &ClipboardError{Op: "list", Err: err}
	}
	var types []string
	for _, line := range strings.Split(string(out), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			types = append(types, line)
		}
	}
	return types, nil
}

func (t *tool) Read(mediaType string) ([]byte, error) {
	if mediaType != "" && t.textOnly {
		return nil, &ClipboardError{Op: "read", Err: fmt.Errorf("%s cannot read %s", t.bin, mediaType)}
	}
	out, err := t.exec.Output(t.bin, t.readArgs(mediaType)...)
	if err != nil {
		return nil, &ClipboardError{Op: "read", Err: err}
	}
	return out, nil
}

func newWlPaste(exec executor) *tool {
	return &tool{
		bin:      binWlPaste,
		listArgs: []string{"--list-types"},
		readArgs: func(mt string) []string {
			if mt == "" {
				return []string{"--no-newline"}
			}
			return []string{"--no-newline", "--type", mt}
		},
		exec: exec,
	}
}

func newXclip(exec executor) *tool {
	return &tool{
		bin:      binXclip,
		listArgs: []string{"-selection", "clipboard", "-t", "TARGETS", "-o"},
		readArgs: func(mt string) []string {
			if mt == "" {
				return []string{"-selection", "clipboard", "-o"}
			}
			return []string{"-selection", "clipboard", "-t", mt, "-o"}
		},
		exec: exec,
	}
}

func newPbpaste(exec executor) *tool {
	return &tool{
		bin:      binPbpaste,
		readArgs: func(string) []string { return nil },
		textOnly: true,
		exec:     exec,
	}
}

var defaultExec executor = &osExecutor{}

// DetectClipboard tries wl-paste, then xclip, then pbpaste. When none is
// installed it returns a ClipboardError; callers degrade to upload-only.
func DetectClipboard() (Clipboard, error) {
	return detectClipboard(defaultExec)
}

func detectClipboard(exec executor) (Clipboard, error) {
	for _, t := range []*tool{newWlPaste(exec), newXclip(exec), newPbpaste(exec)} {
		if t.Available() {
			return t, nil
		}
	}
	return nil, &ClipboardError{
		Op: "detect",
		Err: fmt.Errorf("clipboard unavailable: none of %s, %s, %s found; use a file path instead",
			binWlPaste, binXclip, binPbpaste),
	}
}
