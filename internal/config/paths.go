package config

import (
	"os"
	"path/filepath"
)

// Paths contains standard filesystem paths for vibe-rules.
type Paths struct {
	// HomeDir is the vibe-rules home directory (~/.vibe-rules).
	HomeDir string

	// ConfigFile is the path to the config file (~/.vibe-rules/config.yaml).
	ConfigFile string

	// RulesDir is the common rule store (~/.vibe-rules/rules).
	RulesDir string
}

// DefaultPaths returns the default paths for vibe-rules.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return PathsFor(filepath.Join(homeDir, ".vibe-rules")), nil
}

// PathsFor returns the paths rooted at home.
func PathsFor(home string) *Paths {
	return &Paths{
		HomeDir:    home,
		ConfigFile: filepath.Join(home, "config.yaml"),
		RulesDir:   filepath.Join(home, "rules"),
	}
}

// GetConfigFile returns the config file path.
// If VIBE_RULES_CONFIG is set, it takes precedence.
func GetConfigFile() (string, error) {
	if envPath := os.Getenv(EnvPrefix + "_CONFIG"); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.ConfigFile, nil
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	// Handle ~/path/to/something
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// Handle ~username (not supported, return as-is)
	return path, nil
}
