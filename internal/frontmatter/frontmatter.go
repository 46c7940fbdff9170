// Package frontmatter parses the minimal "---" delimited header used by rule
// definition files.
//
// The parser accepts a small YAML-like subset: one "key: value" pair per line,
// blank lines and "#" comments skipped. It never fails; malformed input
// degrades to the best-effort reading of each line, or to the whole input as
// content when the header is not terminated.
package frontmatter

import (
	"regexp"
	"strconv"
	"strings"
)

const delimiter = "---"

var (
	intRe   = regexp.MustCompile(`^\d+$`)
	floatRe = regexp.MustCompile(`^\d+\.\d+$`)
)

// Map holds parsed header values. Values are bool, int, float64, string or []string.
type Map map[string]any

// Result is the outcome of Parse.
type Result struct {
	// Frontmatter holds the parsed keys. Never nil.
	Frontmatter Map

	// Content is the body following the header, with leading blank lines removed.
	Content string

	// Found reports whether a terminated header was present.
	Found bool
}

// Parse splits input into header values and body.
func Parse(input string) Result {
	unchanged := Result{Frontmatter: Map{}, Content: input}

	lines := strings.Split(input, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != delimiter {
		return unchanged
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == delimiter {
			end = i
			break
		}
	}
	if end < 0 {
		return unchanged
	}

	fm := Map{}
	for _, line := range lines[1:end] {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		key, raw, ok := strings.Cut(trimmed, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if v, keep := coerce(strings.TrimSpace(raw)); keep {
			fm[key] = v
		}
	}

	body := lines[end+1:]
	for len(body) > 0 && strings.TrimSpace(body[0]) == "" {
		body = body[1:]
	}

	return Result{
		Frontmatter: fm,
		Content:     strings.Join(body, "\n"),
		Found:       true,
	}
}

// coerce converts a raw value. keep is false for null and empty values.
func coerce(raw string) (v any, keep bool) {
	switch raw {
	case "true":
		return true, true
	case "false":
		return false, true
	case "null", "":
		return nil, false
	}

	if intRe.MatchString(raw) {
		if n, err := strconv.Atoi(raw); err == nil {
			return n, true
		}
	}
	if floatRe.MatchString(raw) {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f, true
		}
	}

	if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
		return splitList(raw[1 : len(raw)-1]), true
	}

	return unquote(raw), true
}

// splitList splits on commas that are outside quotes, nested brackets and
// brace expansions such as "src/{a,b}/*.ts".
func splitList(inner string) []string {
	items := []string{}
	if strings.TrimSpace(inner) == "" {
		return items
	}

	var (
		cur   strings.Builder
		quote rune
		depth int
	)
	flush := func() {
		item := unquote(strings.TrimSpace(cur.String()))
		if item != "" {
			items = append(items, item)
		}
		cur.Reset()
	}

	for _, r := range inner {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '[' || r == '{':
			depth++
		case r == ']' || r == '}':
			if depth > 0 {
				depth--
			}
		case r == ',' && depth == 0:
			flush()
			continue
		}
		cur.WriteRune(r)
	}
	flush()

	return items
}

// unquote strips one matching pair of surrounding quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// String returns the value for key when it is a string.
func (m Map) String(key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok
}

// Bool returns the value for key when it is a bool.
func (m Map) Bool(key string) (bool, bool) {
	b, ok := m[key].(bool)
	return b, ok
}

// Strings returns the value for key as a list. A string value is split on
// top-level commas like a bracketed list; a list is returned as is.
func (m Map) Strings(key string) []string {
	switch v := m[key].(type) {
	case []string:
		return v
	case string:
		if items := splitList(v); len(items) > 0 {
			return items
		}
		return nil
	default:
		return nil
	}
}
