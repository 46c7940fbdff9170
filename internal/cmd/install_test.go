package cmd

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/viberules/cli/internal/errors"
	"github.com/viberules/cli/internal/output"
	"github.com/viberules/cli/internal/testutil"
)

// writeProject lays out package.json plus node_modules exports.
func writeProject(t *testing.T, project string) {
	t.Helper()
	testutil.WriteFile(t, project, "package.json",
		`{"dependencies": {"kit": "1.0.0"}, "devDependencies": {"plain": "1.0.0"}}`)
	testutil.WriteFile(t, project, "node_modules/kit/llms.json",
		`[{"name": "style", "rule": "Run gofmt.", "globs": "*.go"}, "Second rule"]`)
	testutil.WriteFile(t, project, "node_modules/plain/index.js", "module.exports = {}\n")
}

func TestInstall_AllDependencies(t *testing.T) {
	_, project := testutil.Home(t)
	writeProject(t, project)

	out, _, err := execute(t, "install", "cursor")
	require.NoError(t, err)
	assert.Contains(t, out, "1 installed")

	style := testutil.ReadFile(t, filepath.Join(project, ".cursor", "rules", "kit_style.mdc"))
	assert.Contains(t, style, "description: Rule from kit")
	assert.Contains(t, style, "globs: *.go")
	assert.Contains(t, style, "Run gofmt.")
	assert.FileExists(t, filepath.Join(project, ".cursor", "rules", "kit_1.mdc"))

	out, _, err = execute(t, "install", "cursor")
	require.NoError(t, err)
	assert.Contains(t, out, output.StatusUnchanged)
	assert.Contains(t, out, "1 up to date")
}

func TestInstall_ClearsRemovedRules(t *testing.T) {
	_, project := testutil.Home(t)
	writeProject(t, project)

	_, _, err := execute(t, "install", "windsurf", "kit")
	require.NoError(t, err)

	testutil.WriteFile(t, project, "node_modules/kit/llms.json", `"Only rule"`)
	_, _, err = execute(t, "install", "windsurf", "kit")
	require.NoError(t, err)

	content := testutil.ReadFile(t, filepath.Join(project, ".windsurfrules"))
	assert.NotContains(t, content, "<kit_style>")
	assert.Contains(t, content, "<kit_kit>")

	testutil.WriteFile(t, project, "node_modules/kit/llms.json", `["Indexed"]`)
	_, _, err = execute(t, "install", "windsurf", "kit", "--no-clear")
	require.NoError(t, err)
	content = testutil.ReadFile(t, filepath.Join(project, ".windsurfrules"))
	assert.Contains(t, content, "<kit_kit>", "kept without clearing")
	assert.Contains(t, content, "<kit_0>")
}

func TestInstall_DefaultEditor(t *testing.T) {
	_, project := testutil.Home(t)
	writeProject(t, project)

	_, _, err := execute(t, "install")
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrValidation))

	t.Setenv("VIBE_RULES_EDITOR", "zed")
	_, _, err = execute(t, "install")
	require.NoError(t, err)
	assert.True(t, strings.Contains(testutil.ReadFile(t, filepath.Join(project, ".rules")), "<kit_style>"))
}

func TestInstall_AllFailed(t *testing.T) {
	_, project := testutil.Home(t)
	writeProject(t, project)
	testutil.WriteFile(t, project, "node_modules/bad/llms.json", `[{"name": "x"}]`)

	out, _, err := execute(t, "install", "cursor", "bad", "missing")
	require.Error(t, err)
	assert.Contains(t, out, output.StatusFailed)

	var exitErr *oerrors.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.True(t, exitErr.Printed)
	assert.Equal(t, oerrors.ExitValidationError, exitErr.Code)
}

func TestInstall_PartialFailureSucceeds(t *testing.T) {
	_, project := testutil.Home(t)
	writeProject(t, project)

	out, _, err := execute(t, "install", "cursor", "kit", "missing")
	require.NoError(t, err)
	assert.Contains(t, out, "1 installed")
	assert.Contains(t, out, "1 failed")
}
