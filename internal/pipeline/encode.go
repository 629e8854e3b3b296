// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/pdiddy/redact-studio/pkg/types"
)

// textRequest is the JSON body for text-only submissions.
type textRequest struct {
	Text     string   `json:"text"`
	Language string   `json:"language,omitempty"`
	Entities []string `json:"entities,omitempty"`
}

// Encode serializes the artifact and prepared options into a request body.
// Binary artifacts go out as multipart/form-data; text goes out as JSON.
func Encode(p types.Profile, a *types.Artifact, opts types.Options) (io.Reader, string, error) {
	if !a.IsBinary() {
		if p.Body != types.BodyJSON {
			return nil, "", fmt.Errorf("profile %s cannot send text", p.Name)
		}
		return encodeJSON(p, a, opts)
	}
	switch p.Body {
	case types.BodyImageData:
		return encodeMultipart(p, a, func(mw *multipart.Writer) error {
			bag, err := json.Marshal(optionBag(p, opts))
			if err != nil {
				return fmt.Errorf("marshaling options: %w", err)
			}
			return mw.WriteField("data", string(bag))
		})
	case types.BodyFileFields:
		return encodeMultipart(p, a, func(mw *multipart.Writer) error {
			return writeOptionFields(mw, p, opts)
		})
	default:
		return nil, "", fmt.Errorf("profile %s cannot send %s", p.Name, a.MediaType)
	}
}

func encodeJSON(p types.Profile, a *types.Artifact, opts types.Options) (io.Reader, string, error) {
	req := textRequest{Text: a.Text()}
	if p.Uses(types.FieldLanguage) {
		req.Language = string(opts.Language)
	}
	if p.Uses(types.FieldEntities) && len(opts.Entities) > 0 {
		req.Entities = opts.Entities
	}
	data, err := json.Marshal(req)
	if err != nil {
		return nil, "", fmt.Errorf("marshaling request: %w", err)
	}
	return bytes.NewReader(data), "application/json", nil
}

// encodeMultipart writes the file part followed by whatever fields writeFields adds.
func encodeMultipart(p types.Profile, a *types.Artifact, writeFields func(*multipart.Writer) error) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	field := p.FileField
	if field == "" {
		field = "file"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(field), escapeQuotes(a.Name)))
	h.Set("Content-Type", a.MediaType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("creating file part: %w", err)
	}
	if _, err := part.Write(a.Data); err != nil {
		return nil, "", fmt.Errorf("writing file part: %w", err)
	}

	if err := writeFields(mw); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart body: %w", err)
	}
	return &buf, mw.FormDataContentType(), nil
}

// optionBag builds the JSON option object sent alongside images.
func optionBag(p types.Profile, opts types.Options) map[string]any {
	bag := make(map[string]any)
	if p.Uses(types.FieldFillColor) {
		bag["color_fill"] = opts.FillColor
	}
	if p.Uses(types.FieldEntities) {
		entities := opts.Entities
		if entities == nil {
			entities = []string{}
		}
		bag["analyzer_entities"] = entities
	}
	if p.Uses(types.FieldOCR) {
		bag["apply_ocr"] = opts.ApplyOCR
	}
	if p.Uses(types.FieldLanguage) {
		bag["language"] = string(opts.Language)
	}
	return bag
}

func writeOptionFields(mw *multipart.Writer, p types.Profile, opts types.Options) error {
	var fields [][2]string
	for _, f := range p.Fields {
		switch f {
		case types.FieldLanguage:
			fields = append(fields, [2]string{string(f), string(opts.Language)})
		case types.FieldEntities:
			entities := opts.Entities
			if entities == nil {
				entities = []string{}
			}
			data, err := json.Marshal(entities)
			if err != nil {
				return fmt.Errorf("marshaling entities: %w", err)
			}
			fields = append(fields, [2]string{string(f), string(data)})
		case types.FieldScoreThreshold:
			fields = append(fields, [2]string{string(f), opts.ScoreThreshold})
		case types.FieldDecisionProcess:
			fields = append(fields, [2]string{string(f), strconv.FormatBool(opts.ReturnDecisionProcess)})
		case types.FieldOCR:
			fields = append(fields, [2]string{string(f), strconv.FormatBool(opts.ApplyOCR)})
		case types.FieldFillColor:
			fields = append(fields, [2]string{string(f), opts.FillColor})
		case types.FieldPassword:
			fields = append(fields, [2]string{string(f), opts.Password})
		case types.FieldOwnerPassword:
			if opts.OwnerPassword != "" {
				fields = append(fields, [2]string{string(f), opts.OwnerPassword})
			}
		}
	}
	for _, kv := range fields {
		if err := mw.WriteField(kv[0], kv[1]); err != nil {
			return fmt.Errorf("writing field %s: %w", kv[0], err)
		}
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
