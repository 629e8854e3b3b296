// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/redact-studio/pkg/types"
)

var hexColor = regexp.MustCompile(`^(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// PrepareOptions fills unset string and list options from the profile
// defaults, normalizes them, and validates every field the profile sends.
// Boolean flags are taken as given.
func PrepareOptions(p types.Profile, opts types.Options) (types.Options, error) {
	d := p.Defaults
	if opts.Language == "" {
		opts.Language = d.Language
	}
	if opts.Entities == nil {
		opts.Entities = append([]string(nil), d.Entities...)
	}
	if opts.FillColor == "" {
		opts.FillColor = d.FillColor
	}
	if opts.ScoreThreshold == "" {
		opts.ScoreThreshold = d.ScoreThreshold
	}

	if p.Uses(types.FieldLanguage) {
		opts.Language = types.Language(strings.ToLower(strings.TrimSpace(string(opts.Language))))
		if !opts.Language.Valid() {
			return opts, &ValidationError{Field: "language", Message: fmt.Sprintf("unsupported language %q", opts.Language)}
		}
	}

	if p.Uses(types.FieldEntities) {
		entities, err := normalizeEntities(p, opts.Entities)
		if err != nil {
			return opts, err
		}
		opts.Entities = entities
	}

	if p.Uses(types.FieldFillColor) {
		opts.FillColor = strings.TrimPrefix(strings.TrimSpace(opts.FillColor), "#")
		if !hexColor.MatchString(opts.FillColor) {
			return opts, &ValidationError{Field: "color_fill", Message: fmt.Sprintf("%q is not a 3 or 6 digit hex colour", opts.FillColor)}
		}
	}

	if p.Uses(types.FieldScoreThreshold) {
		opts.ScoreThreshold = strings.TrimSpace(opts.ScoreThreshold)
		v, err := strconv.ParseFloat(opts.ScoreThreshold, 64)
		if err != nil {
			return opts, &ValidationError{Field: "score_threshold", Message: fmt.Sprintf("%q is not a number", opts.ScoreThreshold)}
		}
		if v < 0 || v > 1 {
			return opts, &ValidationError{Field: "score_threshold", Message: fmt.Sprintf("%v is outside [0, 1]", v)}
		}
	}

	if p.RequirePassword && opts.Password == "" {
		return opts, &ValidationError{Field: "password", Message: MsgPasswordMissing}
	}
	return opts, nil
}

// normalizeEntities upper-cases, de-duplicates, and checks entity names
// against the profile's selectable set. Order is preserved.
func normalizeEntities(p types.Profile, in []string) ([]string, error) {
	allowed := make(map[string]bool, len(p.Entities))
	for _, e := range p.Entities {
		allowed[e] = true
	}
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, e := range in {
		e = strings.ToUpper(strings.TrimSpace(e))
		if e == "" || seen[e] {
			continue
		}
		if len(allowed) > 0 && !allowed[e] {
			return nil, &ValidationError{Field: "entities", Message: fmt.Sprintf("unknown entity type %q", e)}
		}
		seen[e] = true
		out = append(out, e)
	}
	return out, nil
}
