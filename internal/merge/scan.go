// Package merge inserts, replaces and removes tagged rule blocks in shared
// editor files without disturbing the content around them.
package merge

import (
	"regexp"
	"strings"
)

// Integration wrapper markers. Wrapped editors keep every managed block
// between WrapperStart and WrapperEnd so user content stays separate.
const (
	WrapperStart = "<!-- vibe-rules Integration -->"
	WrapperEnd   = "<!-- /vibe-rules Integration -->"

	legacyWrapperName  = "vibe-tools Integration"
	legacyWrapperStart = "<" + legacyWrapperName + ">"
	legacyWrapperEnd   = "</" + legacyWrapperName + ">"
)

// openTag matches a candidate opening tag at the start of a line.
var openTag = regexp.MustCompile(`(?m)^<([^<>/!\s][^<>\n]*)>`)

// Block is one <name>body</name> region.
type Block struct {
	Name string

	// Body is the text between the tags, untrimmed.
	Body string

	// Start and End are byte offsets of the whole block, End exclusive.
	Start int
	End   int
}

// Scan returns every tagged block in content in document order. Blocks do
// not overlap: scanning resumes after each closing tag. An opening tag with
// no matching close is skipped, and the legacy wrapper tag is treated as a
// container rather than a block.
func Scan(content string) []Block {
	var blocks []Block

	pos := 0
	for pos < len(content) {
		loc := openTag.FindStringSubmatchIndex(content[pos:])
		if loc == nil {
			break
		}
		openStart, openEnd := pos+loc[0], pos+loc[1]
		name := content[pos+loc[2] : pos+loc[3]]

		if name == legacyWrapperName {
			pos = openEnd
			continue
		}

		closing := "</" + name + ">"
		rel := strings.Index(content[openEnd:], closing)
		if rel < 0 {
			pos = openEnd
			continue
		}
		closeStart := openEnd + rel
		end := closeStart + len(closing)

		blocks = append(blocks, Block{
			Name:  name,
			Body:  content[openEnd:closeStart],
			Start: openStart,
			End:   end,
		})
		pos = end
	}

	return blocks
}

// WrapperRegion returns the text between the integration markers. The
// comment markers are preferred; the legacy tag pair is used otherwise.
func WrapperRegion(content string) (string, bool) {
	for _, pair := range [][2]string{{WrapperStart, WrapperEnd}, {legacyWrapperStart, legacyWrapperEnd}} {
		start := strings.Index(content, pair[0])
		if start < 0 {
			continue
		}
		inner := content[start+len(pair[0]):]
		end := strings.Index(inner, pair[1])
		if end < 0 {
			continue
		}
		return inner[:end], true
	}
	return "", false
}

// findBlock returns the first top-level block for name. Tags that only
// appear inside another block's body are not considered.
func findBlock(content, name string) (Block, bool) {
	for _, b := range Scan(content) {
		if b.Name == name {
			return b, true
		}
	}
	return Block{}, false
}

// wrapperEndIndex returns the offset of the closing marker, preferring the
// comment style.
func wrapperEndIndex(content string) int {
	if i := strings.Index(content, WrapperEnd); i >= 0 {
		return i
	}
	return strings.Index(content, legacyWrapperEnd)
}
