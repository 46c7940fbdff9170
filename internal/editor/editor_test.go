package editor

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/viberules/cli/internal/errors"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{"cursor", Cursor},
		{"CURSOR", Cursor},
		{" windsurf ", Windsurf},
		{"claude-code", ClaudeCode},
		{"claude", ClaudeCode},
		{"roo", Roo},
		{"unified", Unified},
		{"vscode", VSCode},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKind_Unknown(t *testing.T) {
	_, err := ParseKind("emacs")
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrNotFound))
	assert.Contains(t, err.Error(), "unsupported editor type")
	assert.Contains(t, err.Error(), "claude-code")
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{
		"amp", "claude-code", "clinerules", "codex", "cursor",
		"roo", "unified", "vscode", "windsurf", "zed",
	}, Names())
	assert.Len(t, Kinds(), 10)
}

func TestCapabilityTable(t *testing.T) {
	for _, k := range Kinds() {
		s := MustLookup(k)
		assert.Equal(t, k, s.Kind)
		if s.MultiFile() {
			assert.NotEmpty(t, s.Dir, k)
			assert.NotEmpty(t, s.Ext, k)
			assert.False(t, s.Wrapped, "multi-file editors are never wrapped")
		} else {
			assert.NotEmpty(t, s.File, k)
			assert.Equal(t, StyleTaggedBlock, s.Style, k)
		}
	}

	assert.True(t, MustLookup(ClaudeCode).Wrapped)
	assert.True(t, MustLookup(Codex).Wrapped)
	assert.False(t, MustLookup(Windsurf).Wrapped)
	assert.True(t, MustLookup(ClaudeCode).SupportsGlobal())
	assert.False(t, MustLookup(Amp).SupportsGlobal())

	_, ok := Lookup(Kind("nope"))
	assert.False(t, ok)
	assert.Panics(t, func() { MustLookup(Kind("nope")) })
}

func TestSlug(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"My Rule!", "my-rule"},
		{"pkg_api", "pkg_api"},
		{"  --Hello__World--  ", "hello__world"},
		{"a.b/c", "a-b-c"},
		{"Ünïcode", "n-code"},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.input))
		})
	}
}

func TestResolvePath(t *testing.T) {
	roots := Roots{Project: "/proj", Home: "/home/dev"}

	tests := []struct {
		kind   Kind
		name   string
		global bool
		want   string
	}{
		{Cursor, "My Rule!", false, "/proj/.cursor/rules/my-rule.mdc"},
		{Cursor, "api", true, "/proj/.cursor/rules/api.mdc"},
		{Windsurf, "api", false, "/proj/.windsurfrules"},
		{Windsurf, "api", true, "/proj/.windsurfrules"},
		{ClaudeCode, "api", false, "/proj/CLAUDE.md"},
		{ClaudeCode, "api", true, "/home/dev/.claude/CLAUDE.md"},
		{Codex, "api", false, "/proj/AGENTS.md"},
		{Codex, "api", true, "/home/dev/.codex/AGENTS.md"},
		{Amp, "api", true, "/proj/AGENT.md"},
		{Clinerules, "Pkg Guide", false, "/proj/.clinerules/pkg-guide.md"},
		{Roo, "guide", false, "/proj/.clinerules/guide.md"},
		{Zed, "api", false, "/proj/.rules"},
		{Unified, "api", false, "/proj/.rules"},
		{VSCode, "api", false, "/proj/.github/instructions/api.instructions.md"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind)+"/"+tt.name, func(t *testing.T) {
			assert.Equal(t, filepath.FromSlash(tt.want), ResolvePath(tt.kind, tt.name, tt.global, roots))
		})
	}
}

func TestDefaultTargetAgreesWithResolvePath(t *testing.T) {
	roots := Roots{Project: "/proj", Home: "/home/dev"}

	for _, k := range Kinds() {
		for _, global := range []bool{false, true} {
			dir := DefaultTarget(k, global, roots)
			path := ResolvePath(k, "some rule", global, roots)
			if MustLookup(k).MultiFile() {
				assert.Equal(t, dir, filepath.Dir(path), k)
			} else {
				assert.Equal(t, dir, path, k)
			}
		}
	}
}

func TestTargetFor(t *testing.T) {
	roots := Roots{Project: "/proj", Home: "/home/dev"}

	assert.Equal(t, filepath.FromSlash("/proj/CLAUDE.md"), TargetFor(ClaudeCode, "api", false, "", roots))
	assert.Equal(t, "/tmp/custom.md", TargetFor(ClaudeCode, "api", true, "/tmp/custom.md", roots))
	assert.Equal(t, filepath.Join("/tmp/rules", "my-api.mdc"), TargetFor(Cursor, "My API", false, "/tmp/rules", roots))
}

func TestRuleName(t *testing.T) {
	assert.Equal(t, "pkg_api", RuleName(Cursor, "/proj/.cursor/rules/pkg_api.mdc"))
	assert.Equal(t, "guide", RuleName(VSCode, "/x/guide.instructions.md"))
	assert.Equal(t, "guide", RuleName(Clinerules, "guide.md"))
}
