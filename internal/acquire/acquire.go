// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package acquire turns user input (file paths, dropped files, clipboard
// contents, stdin, or typed text) into artifacts.
package acquire

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pdiddy/redact-studio/pkg/types"
)

// SourceType classifies a command-line input.
type SourceType int

const (
	SourceUnknown SourceType = iota
	SourceFile
	SourceStdin
	SourceClipboard
	SourceText
)

func (s SourceType) String() string {
	switch s {
	case SourceFile:
		return "file"
	case SourceStdin:
		return "stdin"
	case SourceClipboard:
		return "clipboard"
	case SourceText:
		return "text"
	default:
		return "unknown"
	}
}

// Names given to artifacts without a file of origin.
const (
	ClipboardImageName = "clipboard-image.png"
	ClipboardPDFName   = "pasted.pdf"
	ClipboardTextName  = "clipboard.txt"
	TypedTextName      = "text"
	StdinName          = "stdin"
)

const textPrefix = "text:"

// Classify determines the source type of a command-line input and returns
// its normalized value: "-" is stdin, "clipboard" (or "clipboard:") is the
// system clipboard, "text:<content>" is inline text, anything else is a path.
func Classify(input string) (SourceType, string) {
	trimmed := strings.TrimSpace(input)
	switch {
	case trimmed == "":
		return SourceUnknown, ""
	case trimmed == "-":
		return SourceStdin, ""
	case trimmed == "clipboard" || trimmed == "clipboard:":
		return SourceClipboard, ""
	case strings.HasPrefix(input, textPrefix):
		return SourceText, strings.TrimPrefix(input, textPrefix)
	default:
		return SourceFile, trimmed
	}
}

// FromFile reads path into an artifact with a sniffed media type.
func FromFile(path string, origin types.Origin) (*types.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	name := filepath.Base(path)
	return &types.Artifact{
		Name:      name,
		MediaType: SniffMediaType(name, data),
		Data:      data,
		Origin:    origin,
	}, nil
}

// FromDrop reads the first of the dropped paths. Extra paths are ignored:
// a pipeline holds one artifact at a time.
func FromDrop(paths []string) (*types.Artifact, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("nothing was dropped")
	}
	return FromFile(paths[0], types.OriginDrop)
}

// FromReader reads r to EOF into an artifact named name.
func FromReader(r io.Reader, name string, origin types.Origin) (*types.Artifact, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return &types.Artifact{
		Name:      name,
		MediaType: SniffMediaType(name, data),
		Data:      data,
		Origin:    origin,
	}, nil
}

// FromText wraps typed text as an artifact.
func FromText(text string) *types.Artifact {
	return &types.Artifact{
		Name:      TypedTextName,
		MediaType: types.MediaTypeText,
		Data:      []byte(text),
		Origin:    types.OriginTyped,
	}
}

// FromClipboard reads the clipboard. With wantText it reads plain text;
// otherwise it picks the first binary target the clipboard offers and falls
// back to text when there is none.
func FromClipboard(cb Clipboard, wantText bool) (*types.Artifact, error) {
	if cb == nil {
		return nil, &ClipboardError{Op: "read", Err: fmt.Errorf("clipboard unavailable")}
	}
	if !wantText {
		offered, err := cb.Types()
		if err != nil {
			return nil, err
		}
		for _, mt := range binaryTypes {
			if !contains(offered, mt) {
				continue
			}
			data, err := cb.Read(mt)
			if err != nil {
				return nil, err
			}
			if len(data) == 0 {
				return nil, ErrClipboardEmpty
			}
			name := ClipboardImageName
			if mt == types.MediaTypePDF {
				name = ClipboardPDFName
			}
			return &types.Artifact{
				Name:      name,
				MediaType: mt,
				Data:      data,
				Origin:    types.OriginClipboard,
			}, nil
		}
	}

	data, err := cb.Read("")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, ErrClipboardEmpty
	}
	return &types.Artifact{
		Name:      ClipboardTextName,
		MediaType: types.MediaTypeText,
		Data:      data,
		Origin:    types.OriginClipboard,
	}, nil
}

// Loader resolves command-line inputs to artifacts.
type Loader struct {
	Stdin io.Reader

	// Clipboard is detected lazily on first use when nil.
	Clipboard Clipboard

	// TextOnly makes plain inputs count as typed text rather than paths,
	// and makes clipboard reads prefer text.
	TextOnly bool

	// mu guards clipboard detection and stdin consumption; Load may be
	// called from several goroutines.
	mu        sync.Mutex
	stdinRead bool
}

// ErrStdinConsumed is returned when "-" is loaded a second time.
var ErrStdinConsumed = errors.New("stdin can only be read once")

// CheckInputs rejects input lists that name stdin more than once.
func CheckInputs(inputs []string) error {
	n := 0
	for _, in := range inputs {
		if st, _ := Classify(in); st == SourceStdin {
			n++
		}
	}
	if n > 1 {
		return fmt.Errorf("%q given %d times: %w", "-", n, ErrStdinConsumed)
	}
	return nil
}

func (l *Loader) clipboard() (Clipboard, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Clipboard == nil {
		cb, err := DetectClipboard()
		if err != nil {
			return nil, err
		}
		l.Clipboard = cb
	}
	return l.Clipboard, nil
}

func (l *Loader) readStdin(name string) (*types.Artifact, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stdinRead {
		return nil, ErrStdinConsumed
	}
	l.stdinRead = true
	in := l.Stdin
	if in == nil {
		in = os.Stdin
	}
	return FromReader(in, name, types.OriginTyped)
}

// Load resolves input according to Classify.
func (l *Loader) Load(input string) (*types.Artifact, error) {
	st, value := Classify(input)
	switch st {
	case SourceStdin:
		name := StdinName
		if l.TextOnly {
			name = TypedTextName
		}
		a, err := l.readStdin(name)
		if err != nil {
			return nil, err
		}
		if l.TextOnly {
			a.MediaType = types.MediaTypeText
		}
		return a, nil
	case SourceClipboard:
		cb, err := l.clipboard()
		if err != nil {
			return nil, err
		}
		return FromClipboard(cb, l.TextOnly)
	case SourceText:
		return FromText(value), nil
	case SourceFile:
		if l.TextOnly {
			if _, err := os.Stat(value); err != nil {
				return FromText(input), nil
			}
		}
		return FromFile(value, types.OriginFilePicker)
	default:
		return nil, fmt.Errorf("empty input")
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
