package rule

import "strings"

// Field is one "key: value" header line. Value is written verbatim.
type Field struct {
	Key   string
	Value string
}

// RenderFrontmatter renders fields as a "---" delimited header followed by a
// newline. No fields renders nothing.
func RenderFrontmatter(fields []Field) string {
	if len(fields) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("---\n")
	for _, f := range fields {
		b.WriteString(f.Key)
		b.WriteString(": ")
		b.WriteString(f.Value)
		b.WriteString("\n")
	}
	b.WriteString("---\n")
	return b.String()
}

// description prefers the metadata description over the rule's own.
func description(r Rule, md Metadata) string {
	if md.Description != "" {
		return md.Description
	}
	return r.Description
}

// CursorFields returns the header fields for a Cursor .mdc rule: only keys
// that are present, globs comma-joined.
func CursorFields(r Rule, md Metadata) []Field {
	var fields []Field
	if d := description(r, md); d != "" {
		fields = append(fields, Field{Key: "description", Value: d})
	}
	if len(md.Globs) > 0 {
		fields = append(fields, Field{Key: "globs", Value: md.Globs.Join(",")})
	}
	if md.AlwaysApply != nil {
		v := "false"
		if *md.AlwaysApply {
			v = "true"
		}
		fields = append(fields, Field{Key: "alwaysApply", Value: v})
	}
	return fields
}

// UniversalApplyTo is the only applyTo value written for VS Code instructions.
// VS Code does not reliably honour lists of patterns, so input globs are
// replaced rather than translated.
const UniversalApplyTo = "**"

// VSCodeFields returns the header fields for a VS Code .instructions.md file.
// applyTo is always present and always UniversalApplyTo.
func VSCodeFields(r Rule, md Metadata) []Field {
	var fields []Field
	if d := description(r, md); d != "" {
		fields = append(fields, Field{Key: "description", Value: d})
	}
	return append(fields, Field{Key: "applyTo", Value: `"` + UniversalApplyTo + `"`})
}
