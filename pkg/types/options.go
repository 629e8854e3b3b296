// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Language is a detection language understood by the service.
type Language string

const (
	LangEnglish Language = "en"
	LangSpanish Language = "es"
	LangMarathi Language = "mr"
	LangHindi   Language = "hi"
	LangKannada Language = "ka"
)

// LanguageLabels maps each supported language to its display label, in
// display order.
var LanguageLabels = []struct {
	Value Language
	Label string
}{
	{LangEnglish, "English"},
	{LangSpanish, "Spanish"},
	{LangMarathi, "Marathi"},
	{LangHindi, "Hindi"},
	{LangKannada, "Kannada"},
}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	for _, ll := range LanguageLabels {
		if ll.Value == l {
			return true
		}
	}
	return false
}

// TextEntities is the entity set offered for text analysis and PDF redaction.
var TextEntities = []string{
	"PERSON",
	"ORGANIZATION",
	"LOCATION",
	"DATE",
	"TIME",
	"MONEY",
	"PERCENT",
	"EMAIL",
	"PHONE",
	"URL",
}

// RedactionEntities is the entity set offered for image redaction.
var RedactionEntities = []string{
	"PERSON",
	"EMAIL_ADDRESS",
	"PHONE_NUMBER",
	"CREDIT_CARD",
	"CRYPTO",
	"DOMAIN_NAME",
	"IP_ADDRESS",
	"DATE_TIME",
	"NRP",
	"LOCATION",
	"MEDICAL_LICENSE",
	"URL",
	"ORGANIZATION",
}

// DefaultRedactionEntities is the preselected subset for image redaction.
var DefaultRedactionEntities = []string{"PERSON", "EMAIL_ADDRESS", "PHONE_NUMBER"}

// Options is the option bag built from current selections at submission
// time. Fields that do not apply to a profile are ignored by its encoder.
type Options struct {
	Language Language
	Entities []string

	// ApplyOCR asks the service to OCR image text before redaction.
	ApplyOCR bool

	// FillColor is a 3 or 6 digit hex colour without the leading '#'.
	FillColor string

	// ScoreThreshold is kept as entered so malformed input can be reported.
	ScoreThreshold string

	// ReturnDecisionProcess asks the service to explain its detections.
	ReturnDecisionProcess bool

	Password      string
	OwnerPassword string
}
