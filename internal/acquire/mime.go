// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/pdiddy/redact-studio/pkg/types"
)

// extensionTypes maps lower-case file extensions to media types.
var extensionTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".pdf":  types.MediaTypePDF,
	".txt":  types.MediaTypeText,
	".md":   types.MediaTypeText,
	".csv":  "text/csv",
	".json": "application/json",
}

// SniffMediaType determines the media type of data. Known binary signatures
// win over the file extension, so a renamed PDF is still a PDF. When neither
// matches, http.DetectContentType decides.
func SniffMediaType(name string, data []byte) string {
	if mt := sniffMagic(data); mt != "" {
		return mt
	}
	if mt, ok := extensionTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return mt
	}
	if len(data) == 0 {
		return "application/octet-stream"
	}
	mt := http.DetectContentType(data)
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return mt
}

func sniffMagic(b []byte) string {
	switch {
	case len(b) >= 3 && b[0] == 0xFF && b[1] == 0xD8 && b[2] == 0xFF:
		return "image/jpeg"
	case len(b) >= 8 && bytes.Equal(b[:8], []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}):
		return "image/png"
	case len(b) >= 6 && (bytes.HasPrefix(b, []byte("GIF87a")) || bytes.HasPrefix(b, []byte("GIF89a"))):
		return "image/gif"
	case len(b) >= 12 && bytes.HasPrefix(b, []byte("RIFF")) && bytes.Equal(b[8:12], []byte("WEBP")):
		return "image/webp"
	case len(b) >= 5 && bytes.HasPrefix(b, []byte("%PDF-")):
		return types.MediaTypePDF
	}
	return ""
}

// ExtensionFor returns a file extension for mediaType, or "" if unknown.
// Parameters such as "; charset=utf-8" are ignored.
func ExtensionFor(mediaType string) string {
	if mt, _, err := mime.ParseMediaType(mediaType); err == nil {
		mediaType = mt
	} else {
		mediaType, _, _ = strings.Cut(mediaType, ";")
		mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	}
	switch mediaType {
	case "image/jpeg":
		return ".jpg"
	case types.MediaTypeText:
		return ".txt"
	}
	for ext, mt := range extensionTypes {
		if mt == mediaType && ext != ".jpeg" && ext != ".tif" && ext != ".md" {
			return ext
		}
	}
	return ""
}

// DataURL encodes data as a data: URL, the form used for image previews.
func DataURL(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL reverses DataURL, returning the payload and its media type.
func DecodeDataURL(s string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(s), "data:")
	if !ok {
		return nil, "", fmt.Errorf("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", fmt.Errorf("data URL has no payload separator")
	}
	mediaType, enc, _ := strings.Cut(meta, ";")
	if enc != "base64" {
		return nil, "", fmt.Errorf("unsupported data URL encoding %q", enc)
	}
	b, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decoding data URL: %w", err)
	}
	return b, mediaType, nil
}
