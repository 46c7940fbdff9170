// Package rule defines the rule model and renders rules into the text forms
// written to editor files.
package rule

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CatchAllGlob is the pattern that means "every file" and is never rendered
// as a metadata line.
const CatchAllGlob = "**/*"

// Rule is a named snippet of instructions for an AI assistant.
type Rule struct {
	Name        string
	Content     string
	Description string
}

// Globs is an ordered list of file patterns. It decodes from either a JSON
// string or a JSON array of strings.
type Globs []string

// UnmarshalJSON accepts "a/*", "a/*, b/*" and ["a/*", "b/*"].
func (g *Globs) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*g = list
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("globs must be a string or a list of strings: %w", err)
	}
	*g = ParseGlobs(s)
	return nil
}

// IsCatchAll reports whether g is exactly the single "**/*" pattern.
func (g Globs) IsCatchAll() bool {
	return len(g) == 1 && strings.TrimSpace(g[0]) == CatchAllGlob
}

// Join renders the globs with sep between items.
func (g Globs) Join(sep string) string {
	return strings.Join(g, sep)
}

// ParseGlobs splits a comma separated glob list. Commas inside brace
// expansions such as "src/{a,b}/*.ts" do not split.
func ParseGlobs(s string) Globs {
	var (
		out   Globs
		cur   strings.Builder
		depth int
	)
	flush := func() {
		if item := strings.TrimSpace(cur.String()); item != "" {
			out = append(out, item)
		}
		cur.Reset()
	}

	for _, r := range s {
		switch {
		case r == '{':
			depth++
		case r == '}' && depth > 0:
			depth--
		case r == ',' && depth == 0:
			flush()
			continue
		}
		cur.WriteRune(r)
	}
	flush()

	return out
}

// Metadata carries the optional generator settings attached to a rule when
// it is formatted.
type Metadata struct {
	Description string `json:"description,omitempty"`
	AlwaysApply *bool  `json:"alwaysApply,omitempty"`
	Globs       Globs  `json:"globs,omitempty"`
	IsGlobal    bool   `json:"isGlobal,omitempty"`
	Debug       bool   `json:"debug,omitempty"`
}

// IsZero reports whether no field that affects rendering is set.
func (m Metadata) IsZero() bool {
	return m.Description == "" && m.AlwaysApply == nil && len(m.Globs) == 0
}

// Bool returns a pointer to b, for populating AlwaysApply.
func Bool(b bool) *bool {
	return &b
}

// Stored is a rule persisted in the common store.
type Stored struct {
	Name        string    `json:"name" validate:"required,rulename"`
	Content     string    `json:"content" validate:"nonblank"`
	Description string    `json:"description,omitempty"`
	Metadata    *Metadata `json:"metadata,omitempty"`
}

// Rule returns the rule portion of s.
func (s Stored) Rule() Rule {
	return Rule{Name: s.Name, Content: s.Content, Description: s.Description}
}

// Meta returns the metadata of s, or the zero value when none is attached.
func (s Stored) Meta() Metadata {
	if s.Metadata == nil {
		return Metadata{}
	}
	return *s.Metadata
}
