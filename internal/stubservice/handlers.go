// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stubservice

import (
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pdiddy/redact-studio/pkg/types"
)

// detector counts one entity type by regular expression.
type detector struct {
	entity  string
	aliases []string
	re      *regexp.Regexp
}

var detectors = []detector{
	{"EMAIL_ADDRESS", []string{"EMAIL"}, regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)},
	{"PHONE_NUMBER", []string{"PHONE"}, regexp.MustCompile(`\+?\(?\d{3}\)?[\s.\-]?\d{3}[\s.\-]?\d{4}\b`)},
	{"URL", nil, regexp.MustCompile(`https?://[^\s"'<>]+`)},
	{"IP_ADDRESS", nil, regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)},
}

// Recognizers are the names reported by GET /recognizers.
var Recognizers = []string{"EmailRecognizer", "PhoneRecognizer", "UrlRecognizer", "IpRecognizer"}

func (d detector) wanted(filter map[string]bool) bool {
	if len(filter) == 0 || filter[d.entity] {
		return true
	}
	for _, a := range d.aliases {
		if filter[a] {
			return true
		}
	}
	return false
}

// Analyze counts entity occurrences in text. An empty filter counts all
// entity types. Types with zero matches are omitted.
func Analyze(text string, entities []string) map[string]int {
	filter := make(map[string]bool, len(entities))
	for _, e := range entities {
		filter[strings.ToUpper(e)] = true
	}
	counts := make(map[string]int)
	for _, d := range detectors {
		if !d.wanted(filter) {
			continue
		}
		if n := len(d.re.FindAllStringIndex(text, -1)); n > 0 {
			counts[d.entity] = n
		}
	}
	return counts
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, HealthMessage)
}

func (s *Server) handleSupportedEntities(c echo.Context) error {
	if err := checkLanguage(c.QueryParam("language")); err != nil {
		return err
	}
	out := make([]string, len(detectors))
	for i, d := range detectors {
		out[i] = d.entity
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleRecognizers(c echo.Context) error {
	if err := checkLanguage(c.QueryParam("language")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Recognizers)
}

type analyzeRequest struct {
	Text     string   `json:"text"`
	Language string   `json:"language"`
	Entities []string `json:"entities"`
}

func (s *Server) handleAnalyze(c echo.Context) error {
	var req analyzeRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return badRequest("invalid JSON body")
	}
	if err := checkLanguage(req.Language); err != nil {
		return err
	}
	if strings.TrimSpace(req.Text) == "" {
		return badRequest("text is required")
	}
	return c.JSON(http.StatusOK, Analyze(req.Text, req.Entities))
}

func (s *Server) handleRedactImage(c echo.Context) error {
	if data := c.FormValue("data"); data != "" {
		var bag map[string]any
		if err := json.Unmarshal([]byte(data), &bag); err != nil {
			return badRequest("data is not valid JSON")
		}
	}
	return s.echoUpload(c, "image")
}

// handleRedactForm serves the per-field contract shared by /redact-image
// and /redact-pdf.
func (s *Server) handleRedactForm(c echo.Context) error {
	if err := checkLanguage(c.FormValue("language")); err != nil {
		return err
	}
	if e := c.FormValue("entities"); e != "" {
		var list []string
		if err := json.Unmarshal([]byte(e), &list); err != nil {
			return badRequest("entities must be a JSON array")
		}
	}
	return s.echoUpload(c, "file")
}

func (s *Server) handleEncryptPDF(c echo.Context) error {
	if c.FormValue("password") == "" {
		return badRequest("password is required")
	}
	return s.echoUpload(c, "file")
}

// echoUpload returns the uploaded file in field unchanged, with its declared
// content type.
func (s *Server) echoUpload(c echo.Context, field string) error {
	fh, err := c.FormFile(field)
	if err != nil {
		return badRequest("no %s uploaded", field)
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	ct := fh.Header.Get(echo.HeaderContentType)
	if ct == "" {
		ct = echo.MIMEOctetStream
	}
	if field == "file" && ct == echo.MIMEOctetStream {
		ct = types.MediaTypePDF
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+fh.Filename+`"`)
	return c.Blob(http.StatusOK, ct, data)
}
