package merge

import (
	"strings"

	"github.com/viberules/cli/internal/rule"
)

// Action records which branch of the merge produced the new content.
type Action int

const (
	// ActionUnchanged means the file already held the rendered block.
	ActionUnchanged Action = iota

	// ActionReplaced means an existing block for the rule was replaced in place.
	ActionReplaced

	// ActionInserted means the block was placed before the wrapper's closing marker.
	ActionInserted

	// ActionWrapped means a new wrapper was created around the existing content and the block.
	ActionWrapped

	// ActionAppended means the block was appended to the end of the file.
	ActionAppended
)

// String implements fmt.Stringer.
func (a Action) String() string {
	switch a {
	case ActionUnchanged:
		return "unchanged"
	case ActionReplaced:
		return "replaced"
	case ActionInserted:
		return "inserted"
	case ActionWrapped:
		return "wrapped"
	case ActionAppended:
		return "appended"
	default:
		return "unknown"
	}
}

// Plan computes the new file content for applying r to current. It does no
// I/O. wrapped selects the integration-wrapper placement for new blocks.
//
// An existing block whose opening tag starts a line is replaced in place and
// every byte around it is preserved. Otherwise the block is inserted before
// the wrapper's closing marker, wrapped together with the existing content in
// a fresh wrapper, or appended, depending on wrapped and on what the file
// already holds. The result always ends with exactly one newline.
func Plan(current string, r rule.Rule, md rule.Metadata, wrapped bool) (string, Action) {
	block := rule.TaggedBlock(r, md)

	var (
		updated string
		action  Action
	)

	existing, found := findBlock(current, r.Name)
	switch {
	case found:
		updated = current[:existing.Start] + block + current[existing.End:]
		action = ActionReplaced

	case wrapped && wrapperEndIndex(current) >= 0:
		end := wrapperEndIndex(current)
		updated = strings.TrimRight(current[:end], " \t\r\n") + "\n\n" + block + "\n\n" + current[end:]
		action = ActionInserted

	case wrapped:
		body := strings.TrimSpace(current)
		parts := []string{WrapperStart}
		if body != "" {
			parts = append(parts, body)
		}
		parts = append(parts, block, WrapperEnd)
		updated = strings.Join(parts, "\n\n")
		action = ActionWrapped

	default:
		body := strings.TrimRight(current, " \t\r\n")
		if strings.TrimSpace(body) == "" {
			updated = block
		} else {
			updated = body + "\n\n" + block
		}
		action = ActionAppended
	}

	updated = withTrailingNewline(updated)
	if updated == current {
		return current, ActionUnchanged
	}
	return updated, action
}

// RemovePrefixed deletes every block whose tag name starts with prefix and
// returns the new content and the number of blocks removed. Whitespace
// between the surrounding content is collapsed to one blank line.
func RemovePrefixed(content, prefix string) (string, int) {
	if prefix == "" {
		return content, 0
	}

	removed := 0
	out := content
	// Scan from the back so earlier offsets stay valid.
	blocks := Scan(content)
	for i := len(blocks) - 1; i >= 0; i-- {
		b := blocks[i]
		if !strings.HasPrefix(b.Name, prefix) {
			continue
		}
		before := strings.TrimRight(out[:b.Start], " \t\r\n")
		after := strings.TrimLeft(out[b.End:], " \t\r\n")
		switch {
		case before == "":
			out = after
		case after == "":
			out = before
		default:
			out = before + "\n\n" + after
		}
		removed++
	}

	if removed == 0 {
		return content, 0
	}
	if strings.TrimSpace(out) == "" {
		return "", removed
	}
	return withTrailingNewline(out), removed
}

func withTrailingNewline(s string) string {
	return strings.TrimRight(s, "\r\n") + "\n"
}
