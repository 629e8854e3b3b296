// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"github.com/pdiddy/redact-studio/internal/acquire"
	"github.com/pdiddy/redact-studio/pkg/types"
)

// Preview is a renderable view of the held artifact.
type Preview struct {
	Kind      types.ArtifactKind
	Name      string
	MediaType string
	Size      int

	// Text is set for text artifacts.
	Text string
	// DataURL is set for images and decodes to the artifact bytes.
	DataURL string
	// Pages is set for PDFs.
	Pages int
}

// Preview describes the held artifact.
func (p *Pipeline) Preview() (*Preview, error) {
	a := p.Artifact()
	if a == nil {
		return nil, ErrNoArtifact
	}
	pv := &Preview{
		Kind:      a.Kind(),
		Name:      a.Name,
		MediaType: a.MediaType,
		Size:      len(a.Data),
	}
	switch pv.Kind {
	case types.KindText:
		pv.Text = a.Text()
	case types.KindImage:
		pv.DataURL = acquire.DataURL(a.MediaType, a.Data)
	case types.KindPDF:
		pv.Pages = a.Pages
	}
	return pv, nil
}
