package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viberules/cli/internal/testutil"
)

func saveRules(t *testing.T, names ...string) {
	t.Helper()
	for _, n := range names {
		_, _, err := execute(t, "save", n, "-c", "body of "+n, "-d", "about "+n)
		require.NoError(t, err)
	}
}

func TestList_Empty(t *testing.T) {
	testutil.Home(t)

	out, _, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No rules found")

	out, _, err = execute(t, "list", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestList_Formats(t *testing.T) {
	testutil.Home(t)
	saveRules(t, "react-hooks", "go-style", "react-query")

	out, _, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "about go-style")

	out, _, err = execute(t, "list", "-o", "plain")
	require.NoError(t, err)
	assert.Equal(t, "go-style\nreact-hooks\nreact-query\n", out)

	out, _, err = execute(t, "list", "-o", "json")
	require.NoError(t, err)
	var entries []listEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 3)
	assert.Equal(t, "about go-style", entries[0].Description)

	_, _, err = execute(t, "list", "-o", "xml")
	assert.Error(t, err)
}

func TestList_Filter(t *testing.T) {
	testutil.Home(t)
	saveRules(t, "react-hooks", "go-style", "react-query")

	out, _, err := execute(t, "list", "react", "-o", "plain")
	require.NoError(t, err)
	assert.Contains(t, out, "react-hooks")
	assert.Contains(t, out, "react-query")
	assert.NotContains(t, out, "go-style")
}

func TestList_Editor(t *testing.T) {
	testutil.Home(t)
	saveRules(t, "a", "b")

	_, _, err := execute(t, "load", "a", "zed")
	require.NoError(t, err)

	out, _, err := execute(t, "list", "--editor", "zed", "-o", "plain")
	require.NoError(t, err)
	assert.Equal(t, "a\n", out)

	_, _, err = execute(t, "list", "--editor", "notepad")
	assert.Error(t, err)
}
