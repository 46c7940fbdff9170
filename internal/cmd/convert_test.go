package cmd

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/viberules/cli/internal/errors"
	"github.com/viberules/cli/internal/merge"
	"github.com/viberules/cli/internal/testutil"
)

func writeCursorRules(t *testing.T, project string) {
	t.Helper()
	testutil.WriteFile(t, project, ".cursor/rules/api.mdc",
		"---\ndescription: API\nalwaysApply: true\n---\nUse REST.\n")
	testutil.WriteFile(t, project, ".cursor/rules/style.mdc",
		"---\nglobs: src/*.go\n---\nRun gofmt.\n")
}

func TestConvert_CursorToClaude(t *testing.T) {
	_, project := testutil.Home(t)
	writeCursorRules(t, project)

	out, _, err := execute(t, "convert", "cursor", "claude-code", ".cursor")
	require.NoError(t, err)
	assert.Contains(t, out, "Converted 2 rule(s) from cursor to claude-code")

	content := testutil.ReadFile(t, filepath.Join(project, "CLAUDE.md"))
	assert.Equal(t, 1, strings.Count(content, merge.WrapperStart))
	assert.Contains(t, content, "<api>")
	assert.Contains(t, content, "Always apply this rule in these files: src/*.go")
}

func TestConvert_DryRun(t *testing.T) {
	_, project := testutil.Home(t)
	testutil.WriteFile(t, project, ".windsurfrules", "<a>\none\n</a>\n")

	out, _, err := execute(t, "convert", "windsurf", "cursor", ".windsurfrules", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Would convert 1 rule(s)")
	assert.Contains(t, out, "+one")
	assert.NoDirExists(t, filepath.Join(project, ".cursor"))
}

func TestConvert_Target(t *testing.T) {
	_, project := testutil.Home(t)
	writeCursorRules(t, project)

	_, _, err := execute(t, "convert", "cursor", "clinerules", ".cursor/rules", "-t", "out")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(project, "out", "api.md"))
	assert.FileExists(t, filepath.Join(project, "out", "style.md"))
}

func TestConvert_Errors(t *testing.T) {
	_, project := testutil.Home(t)
	writeCursorRules(t, project)
	testutil.WriteFile(t, project, "empty.md", "no blocks here\n")

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"same format", []string{"convert", "cursor", "cursor", ".cursor"}, oerrors.ErrConflict},
		{"unknown source format", []string{"convert", "vim", "cursor", ".cursor"}, oerrors.ErrNotFound},
		{"unknown target format", []string{"convert", "cursor", "vim", ".cursor"}, oerrors.ErrNotFound},
		{"missing source", []string{"convert", "cursor", "zed", "nowhere"}, oerrors.ErrNotFound},
		{"no rules", []string{"convert", "zed", "cursor", "empty.md"}, oerrors.ErrFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}

	_, _, err := execute(t, "convert", "cursor", "zed")
	assert.Error(t, err, "source path is required")
}
