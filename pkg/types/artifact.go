// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// ArtifactKind classifies the input unit held by a pipeline.
type ArtifactKind string

const (
	KindText  ArtifactKind = "text"
	KindImage ArtifactKind = "image"
	KindPDF   ArtifactKind = "pdf"
)

// Origin records how an artifact entered the pipeline.
type Origin string

const (
	OriginFilePicker Origin = "file"
	OriginDrop       Origin = "drop"
	OriginClipboard  Origin = "clipboard"
	OriginTyped      Origin = "typed"
)

// Media types the client recognizes.
const (
	MediaTypePDF  = "application/pdf"
	MediaTypeText = "text/plain"
)

// Artifact is the user-supplied input for one submission.
type Artifact struct {
	// Name is the display name, usually the base name of the source file.
	Name string `json:"name" yaml:"name"`

	// MediaType is the declared or sniffed media type (e.g. "image/png").
	MediaType string `json:"media_type" yaml:"media_type"`

	// Data holds the raw bytes. For text artifacts it is the UTF-8 text.
	Data []byte `json:"-" yaml:"-"`

	// Origin records where the artifact came from.
	Origin Origin `json:"origin" yaml:"origin"`

	// Pages is the page count for PDF artifacts, zero otherwise.
	Pages int `json:"pages,omitempty" yaml:"pages,omitempty"`
}

// Kind derives the artifact kind from its media type.
func (a *Artifact) Kind() ArtifactKind {
	switch {
	case a.MediaType == MediaTypePDF:
		return KindPDF
	case strings.HasPrefix(a.MediaType, "image/"):
		return KindImage
	default:
		return KindText
	}
}

// IsBinary reports whether the artifact must be sent as a multipart upload.
func (a *Artifact) IsBinary() bool {
	return a.Kind() != KindText
}

// Text returns the artifact contents as a string.
func (a *Artifact) Text() string {
	return string(a.Data)
}

// Empty reports whether the artifact carries no content. Whitespace-only
// text counts as empty.
func (a *Artifact) Empty() bool {
	if a == nil || len(a.Data) == 0 {
		return true
	}
	if a.Kind() == KindText {
		return strings.TrimSpace(string(a.Data)) == ""
	}
	return false
}
