// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"sort"
	"strings"
)

// BodyStyle selects how a profile serializes artifact and options.
type BodyStyle string

const (
	// BodyJSON sends {text, language, entities} as application/json.
	BodyJSON BodyStyle = "json"

	// BodyImageData sends the image plus a stringified JSON option bag in a
	// "data" field.
	BodyImageData BodyStyle = "image-data"

	// BodyFileFields sends the file plus one form field per option.
	BodyFileFields BodyStyle = "file-fields"
)

// OptionField names an option a profile sends to the service.
type OptionField string

const (
	FieldLanguage        OptionField = "language"
	FieldEntities        OptionField = "entities"
	FieldOCR             OptionField = "apply_ocr"
	FieldFillColor       OptionField = "color_fill"
	FieldScoreThreshold  OptionField = "score_threshold"
	FieldDecisionProcess OptionField = "return_decision_process"
	FieldPassword        OptionField = "password"
	FieldOwnerPassword   OptionField = "owner_password"
)

// Profile parameterizes one submission pipeline: what it accepts, where it
// posts, and how it encodes the request.
type Profile struct {
	Name     string
	Title    string
	Endpoint string

	// Accept lists allowed media types. Entries ending in "/*" match a whole
	// family. An empty list means the profile takes typed text only.
	Accept []string

	Body      BodyStyle
	FileField string

	// Entities is the selectable entity set; empty means unrestricted.
	Entities []string
	Fields   []OptionField

	RequirePassword bool

	// DownloadPrefix is prepended to the original file name on download.
	DownloadPrefix string

	// Defaults seeds options that the user did not set.
	Defaults Options
}

// TextOnly reports whether the profile takes typed text instead of a file.
func (p Profile) TextOnly() bool {
	return len(p.Accept) == 0
}

// Accepts reports whether mediaType is on the profile's allow-list.
func (p Profile) Accepts(mediaType string) bool {
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = strings.TrimSpace(mediaType[:i])
	}
	if p.TextOnly() {
		return mediaType == MediaTypeText || mediaType == ""
	}
	for _, a := range p.Accept {
		if family, ok := strings.CutSuffix(a, "/*"); ok {
			if strings.HasPrefix(mediaType, family+"/") {
				return true
			}
			continue
		}
		if a == mediaType {
			return true
		}
	}
	return false
}

// Uses reports whether the profile sends field f.
func (p Profile) Uses(f OptionField) bool {
	for _, pf := range p.Fields {
		if pf == f {
			return true
		}
	}
	return false
}

// AcceptList renders the allow-list for messages (e.g. "image/*, application/pdf").
func (p Profile) AcceptList() string {
	if p.TextOnly() {
		return "text"
	}
	return strings.Join(p.Accept, ", ")
}

// Built-in profiles.
var (
	ProfileAnalyze = Profile{
		Name:     "analyze",
		Title:    "PII Analyzer",
		Endpoint: "/analyze",
		Body:     BodyJSON,
		Entities: TextEntities,
		Fields:   []OptionField{FieldLanguage, FieldEntities},
		Defaults: Options{Language: LangEnglish},
	}

	ProfileRedactImage = Profile{
		Name:           "redact-image",
		Title:          "Image Redactor",
		Endpoint:       "/redact",
		Accept:         []string{"image/*"},
		Body:           BodyImageData,
		FileField:      "image",
		Entities:       RedactionEntities,
		Fields:         []OptionField{FieldFillColor, FieldEntities, FieldOCR},
		DownloadPrefix: "redacted_",
		Defaults: Options{
			Language:  LangEnglish,
			Entities:  DefaultRedactionEntities,
			FillColor: "000",
		},
	}

	// ProfileRedactImageFile posts images with the per-field form contract
	// the PDF redactor uses.
	ProfileRedactImageFile = Profile{
		Name:           "redact-image-file",
		Title:          "Image Redactor (form fields)",
		Endpoint:       "/redact-image",
		Accept:         []string{"image/*"},
		Body:           BodyFileFields,
		FileField:      "file",
		Entities:       TextEntities,
		Fields:         []OptionField{FieldLanguage, FieldEntities, FieldScoreThreshold, FieldDecisionProcess},
		DownloadPrefix: "redacted_",
		Defaults: Options{
			Language:              LangEnglish,
			ScoreThreshold:        "0.4",
			ReturnDecisionProcess: true,
		},
	}

	ProfileRedactPDF = Profile{
		Name:           "redact-pdf",
		Title:          "PDF Redactor",
		Endpoint:       "/redact-pdf",
		Accept:         []string{MediaTypePDF},
		Body:           BodyFileFields,
		FileField:      "file",
		Entities:       TextEntities,
		Fields:         []OptionField{FieldLanguage, FieldEntities, FieldScoreThreshold, FieldDecisionProcess},
		DownloadPrefix: "redacted_",
		Defaults: Options{
			Language:              LangEnglish,
			ScoreThreshold:        "0.4",
			ReturnDecisionProcess: true,
		},
	}

	ProfileEncryptPDF = Profile{
		Name:            "encrypt-pdf",
		Title:           "PDF Encryptor",
		Endpoint:        "/encrypt-pdf",
		Accept:          []string{MediaTypePDF},
		Body:            BodyFileFields,
		FileField:       "file",
		Fields:          []OptionField{FieldPassword, FieldOwnerPassword},
		RequirePassword: true,
		DownloadPrefix:  "encrypted_",
	}
)

var profiles = map[string]Profile{
	ProfileAnalyze.Name:         ProfileAnalyze,
	ProfileRedactImage.Name:     ProfileRedactImage,
	ProfileRedactImageFile.Name: ProfileRedactImageFile,
	ProfileRedactPDF.Name:       ProfileRedactPDF,
	ProfileEncryptPDF.Name:      ProfileEncryptPDF,
}

// LookupProfile returns the built-in profile with the given name.
func LookupProfile(name string) (Profile, error) {
	p, ok := profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown profile %q (available: %s)", name, strings.Join(ProfileNames(), ", "))
	}
	return p, nil
}

// ProfileNames returns the built-in profile names in sorted order.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
