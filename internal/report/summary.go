// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report turns an analysis response into entity counts and renders
// them for the terminal or for saving.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// Entry is one row of the summary: an entity type and how often it was found.
type Entry struct {
	Entity string `json:"entity" yaml:"entity"`
	Count  int    `json:"count" yaml:"count"`
}

// Finding is a single detection from a list-form response.
type Finding struct {
	EntityType string  `json:"entity_type" yaml:"entity_type"`
	Start      int     `json:"start" yaml:"start"`
	End        int     `json:"end" yaml:"end"`
	Score      float64 `json:"score" yaml:"score"`
}

// Summary is the renderable view of an analysis result.
type Summary struct {
	Entries  []Entry   `json:"entries" yaml:"entries"`
	Total    int       `json:"total" yaml:"total"`
	Findings []Finding `json:"findings,omitempty" yaml:"findings,omitempty"`
}

// Summarize reads an analysis response. Three shapes are understood:
//
//	{"PERSON": 2, "EMAIL_ADDRESS": 1}
//	[{"entity_type": "PERSON", "start": 0, "end": 4, "score": 0.85}, ...]
//	{"results": [ ...list form... ]}
//
// Entries are sorted by descending count, then by name.
func Summarize(data []byte) (*Summary, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("analysis result is not valid JSON")
	}
	root := gjson.ParseBytes(data)
	if root.IsObject() {
		if results := root.Get("results"); results.IsArray() {
			root = results
		}
	}

	s := &Summary{}
	switch {
	case root.IsArray():
		counts := make(map[string]int)
		var bad error
		root.ForEach(func(_, v gjson.Result) bool {
			et := strings.TrimSpace(v.Get("entity_type").String())
			if et == "" {
				bad = fmt.Errorf("finding without entity_type: %s", v.Raw)
				return false
			}
			counts[et]++
			s.Findings = append(s.Findings, Finding{
				EntityType: et,
				Start:      int(v.Get("start").Int()),
				End:        int(v.Get("end").Int()),
				Score:      v.Get("score").Float(),
			})
			return true
		})
		if bad != nil {
			return nil, bad
		}
		for e, n := range counts {
			s.Entries = append(s.Entries, Entry{Entity: e, Count: n})
		}
	case root.IsObject():
		var bad error
		root.ForEach(func(k, v gjson.Result) bool {
			if v.Type != gjson.Number {
				bad = fmt.Errorf("count for %s is not a number", k.String())
				return false
			}
			s.Entries = append(s.Entries, Entry{Entity: k.String(), Count: int(v.Int())})
			return true
		})
		if bad != nil {
			return nil, bad
		}
	default:
		return nil, fmt.Errorf("unexpected analysis result shape")
	}

	sort.Slice(s.Entries, func(i, j int) bool {
		if s.Entries[i].Count != s.Entries[j].Count {
			return s.Entries[i].Count > s.Entries[j].Count
		}
		return s.Entries[i].Entity < s.Entries[j].Entity
	})
	for _, e := range s.Entries {
		s.Total += e.Count
	}
	return s, nil
}
