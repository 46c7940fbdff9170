package rule

import (
	"strings"
)

// Metadata line prefixes written into shared-file formats.
const (
	AlwaysApplyPrefix = "Always Apply:"
	GlobsPrefix       = "Always apply this rule in these files:"

	// legacyGlobsPrefix was written by older releases. It is read, never written.
	legacyGlobsPrefix = "Globs:"

	alwaysClause   = "This rule should ALWAYS be applied by the AI"
	relevantClause = "This rule should only be applied when relevant files are open"
)

// MetadataLines returns the human readable metadata lines for md, in order.
func MetadataLines(md Metadata) []string {
	var lines []string

	if md.AlwaysApply != nil {
		if *md.AlwaysApply {
			lines = append(lines, AlwaysApplyPrefix+" true - "+alwaysClause)
		} else {
			lines = append(lines, AlwaysApplyPrefix+" false - "+relevantClause)
		}
	}

	if len(md.Globs) > 0 && !md.Globs.IsCatchAll() {
		lines = append(lines, GlobsPrefix+" "+md.Globs.Join(", "))
	}

	return lines
}

// FormatWithMetadata prefixes the rule body with metadata lines and a blank
// separator line. Without metadata the body is returned unchanged.
func FormatWithMetadata(r Rule, md Metadata) string {
	lines := MetadataLines(md)
	if len(lines) == 0 {
		return r.Content
	}
	return strings.Join(lines, "\n") + "\n\n" + r.Content
}

// TaggedBlock wraps the formatted rule in <name>...</name>.
func TaggedBlock(r Rule, md Metadata) string {
	return "<" + r.Name + ">\n" + FormatWithMetadata(r, md) + "\n</" + r.Name + ">"
}

// ParseMetadataLines is the inverse of FormatWithMetadata. It consumes the
// leading run of metadata lines and the blank separator line that must
// follow them, and returns the recovered metadata and the remaining body.
func ParseMetadataLines(body string) (Metadata, string) {
	var md Metadata

	lines := strings.Split(body, "\n")
	i := 0
scan:
	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		switch {
		case strings.HasPrefix(line, AlwaysApplyPrefix):
			value := strings.TrimSpace(strings.TrimPrefix(line, AlwaysApplyPrefix))
			word, _, _ := strings.Cut(value, " ")
			md.AlwaysApply = Bool(strings.EqualFold(word, "true"))
		case strings.HasPrefix(line, GlobsPrefix):
			md.Globs = parseGlobsLine(strings.TrimPrefix(line, GlobsPrefix))
		case strings.HasPrefix(line, legacyGlobsPrefix):
			md.Globs = parseGlobsLine(strings.TrimPrefix(line, legacyGlobsPrefix))
		default:
			break scan
		}
	}
	// FormatWithMetadata always writes a blank separator. Without one the
	// leading lines are body text.
	if i == 0 || i == len(lines) || strings.TrimSpace(lines[i]) != "" {
		return Metadata{}, body
	}
	return md, strings.Join(lines[i+1:], "\n")
}

func parseGlobsLine(text string) Globs {
	text = strings.TrimSpace(text)
	if text == "" || text == "None" {
		return nil
	}
	return ParseGlobs(text)
}
