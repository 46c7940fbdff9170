// Package editor holds the fixed table of supported editors: how each one
// stores rules and where its files live.
package editor

import (
	"fmt"
	"sort"
	"strings"

	oerrors "github.com/viberules/cli/internal/errors"
)

// Kind identifies a supported editor format.
type Kind string

// Supported editor kinds.
const (
	Cursor     Kind = "cursor"
	Windsurf   Kind = "windsurf"
	ClaudeCode Kind = "claude-code"
	Codex      Kind = "codex"
	Amp        Kind = "amp"
	Clinerules Kind = "clinerules"
	Roo        Kind = "roo"
	Zed        Kind = "zed"
	Unified    Kind = "unified"
	VSCode     Kind = "vscode"
)

// Layout says whether an editor keeps one file per rule or one shared file.
type Layout int

const (
	// MultiFile editors store each rule in its own file inside a directory.
	MultiFile Layout = iota

	// SingleFile editors store every rule as a tagged block in one file.
	SingleFile
)

// Style selects how a rule body is rendered for an editor.
type Style int

const (
	// StyleTaggedBlock renders <name>metadata lines + body</name>.
	StyleTaggedBlock Style = iota

	// StyleCursorFrontmatter renders a description/globs/alwaysApply header + body.
	StyleCursorFrontmatter

	// StyleVSCodeFrontmatter renders a description/applyTo header + body.
	StyleVSCodeFrontmatter

	// StyleMetadataLines renders metadata lines + body with no tags.
	StyleMetadataLines
)

// Spec is the capability row for one editor kind.
type Spec struct {
	Kind   Kind
	Layout Layout

	// Wrapped editors group managed blocks inside the integration comment pair.
	Wrapped bool

	Style Style

	// Dir is the rule directory relative to the project root (MultiFile).
	Dir string

	// Ext is the rule file suffix including the dot (MultiFile).
	Ext string

	// File is the shared file relative to the project root (SingleFile).
	File string

	// GlobalFile is the shared file relative to the home directory. Empty
	// means the editor has no global location and falls back to File.
	GlobalFile string
}

// MultiFile reports whether the editor stores one rule per file.
func (s Spec) MultiFile() bool {
	return s.Layout == MultiFile
}

// SupportsGlobal reports whether the editor has a home-level location.
func (s Spec) SupportsGlobal() bool {
	return s.GlobalFile != ""
}

var specs = map[Kind]Spec{
	Cursor: {
		Kind: Cursor, Layout: MultiFile, Style: StyleCursorFrontmatter,
		Dir: ".cursor/rules", Ext: ".mdc",
	},
	Windsurf: {
		Kind: Windsurf, Layout: SingleFile, Style: StyleTaggedBlock,
		File: ".windsurfrules",
	},
	ClaudeCode: {
		Kind: ClaudeCode, Layout: SingleFile, Wrapped: true, Style: StyleTaggedBlock,
		File: "CLAUDE.md", GlobalFile: ".claude/CLAUDE.md",
	},
	Codex: {
		Kind: Codex, Layout: SingleFile, Wrapped: true, Style: StyleTaggedBlock,
		File: "AGENTS.md", GlobalFile: ".codex/AGENTS.md",
	},
	Amp: {
		Kind: Amp, Layout: SingleFile, Style: StyleTaggedBlock,
		File: "AGENT.md",
	},
	Clinerules: {
		Kind: Clinerules, Layout: MultiFile, Style: StyleMetadataLines,
		Dir: ".clinerules", Ext: ".md",
	},
	Roo: {
		Kind: Roo, Layout: MultiFile, Style: StyleMetadataLines,
		Dir: ".clinerules", Ext: ".md",
	},
	Zed: {
		Kind: Zed, Layout: SingleFile, Style: StyleTaggedBlock,
		File: ".rules",
	},
	Unified: {
		Kind: Unified, Layout: SingleFile, Style: StyleTaggedBlock,
		File: ".rules",
	},
	VSCode: {
		Kind: VSCode, Layout: MultiFile, Style: StyleVSCodeFrontmatter,
		Dir: ".github/instructions", Ext: ".instructions.md",
	},
}

var aliases = map[string]Kind{
	"claude": ClaudeCode,
}

// Lookup returns the capability row for k.
func Lookup(k Kind) (Spec, bool) {
	s, ok := specs[k]
	return s, ok
}

// MustLookup returns the capability row for k and panics for an unknown kind.
// Use only with the Kind constants.
func MustLookup(k Kind) Spec {
	s, ok := specs[k]
	if !ok {
		panic(fmt.Sprintf("editor: unknown kind %q", k))
	}
	return s
}

// ParseKind resolves a user supplied editor name, case-insensitively.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if k, ok := aliases[n]; ok {
		return k, nil
	}
	if _, ok := specs[Kind(n)]; ok {
		return Kind(n), nil
	}
	return "", UnknownKindError(name)
}

// UnknownKindError is the not-found error reported for an editor name
// outside the table.
func UnknownKindError(name string) error {
	return &oerrors.DetailError{
		Type:    "unsupported editor type",
		Message: fmt.Sprintf("unknown editor %q", name),
		Hint:    "Valid editors: " + strings.Join(Names(), ", "),
		Cause:   oerrors.ErrNotFound,
	}
}

// Names returns every kind name, sorted.
func Names() []string {
	names := make([]string, 0, len(specs))
	for k := range specs {
		names = append(names, string(k))
	}
	sort.Strings(names)
	return names
}

// Kinds returns every kind, sorted by name.
func Kinds() []Kind {
	names := Names()
	kinds := make([]Kind, len(names))
	for i, n := range names {
		kinds[i] = Kind(n)
	}
	return kinds
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	return string(k)
}
