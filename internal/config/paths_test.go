package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err, "should get home directory")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "no tilde",
			input:    "/absolute/path",
			expected: "/absolute/path",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: homeDir,
		},
		{
			name:     "tilde with slash",
			input:    "~/.vibe-rules/config.yaml",
			expected: filepath.Join(homeDir, ".vibe-rules", "config.yaml"),
		},
		{
			name:     "tilde username pattern (not expanded)",
			input:    "~username/file",
			expected: "~username/file",
		},
		{
			name:     "tilde in middle (not expanded)",
			input:    "/path/~/file",
			expected: "/path/~/file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ExpandPath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDefaultPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	paths, err := DefaultPaths()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".vibe-rules"), paths.HomeDir)
	assert.Equal(t, filepath.Join(home, ".vibe-rules", "config.yaml"), paths.ConfigFile)
	assert.Equal(t, filepath.Join(home, ".vibe-rules", "rules"), paths.RulesDir)
}

func TestGetConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	t.Run("default", func(t *testing.T) {
		t.Setenv("VIBE_RULES_CONFIG", "")
		path, err := GetConfigFile()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".vibe-rules", "config.yaml"), path)
	})

	t.Run("env override", func(t *testing.T) {
		t.Setenv("VIBE_RULES_CONFIG", "/etc/vibe.yaml")
		path, err := GetConfigFile()
		require.NoError(t, err)
		assert.Equal(t, "/etc/vibe.yaml", path)
	})
}
