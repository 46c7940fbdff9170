// Package config provides configuration loading and management.
package config

import (
	"github.com/viberules/cli/internal/editor"
)

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Env: VIBE_RULES_LOG_TIMESTAMPS, Default: false. Override with --timestamps.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// InstallConfig contains settings for the install command.
type InstallConfig struct {
	// Clear removes a package's previously installed rules before
	// re-installing it. Env: VIBE_RULES_INSTALL_CLEAR, Default: true.
	Clear *bool `mapstructure:"clear" yaml:"clear,omitempty"`
}

// Config represents the vibe-rules configuration file.
// Loaded from ~/.vibe-rules/config.yaml.
type Config struct {
	// Home is the directory holding the rule store.
	// Env: VIBE_RULES_HOME, Default: ~/.vibe-rules
	Home string `mapstructure:"home" yaml:"home,omitempty" validate:"omitempty,nonblank"`

	// DefaultEditor is used by install when no editor argument is given.
	// Env: VIBE_RULES_EDITOR
	DefaultEditor string `mapstructure:"defaultEditor" yaml:"defaultEditor,omitempty" validate:"omitempty,editor"`

	// Log contains logging-related settings.
	Log LogConfig `mapstructure:"log" yaml:"log"`

	// Install contains install settings.
	Install InstallConfig `mapstructure:"install" yaml:"install"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `vibe-rules config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		Home:    "~/.vibe-rules",
		Log:     LogConfig{Timestamps: boolPtr(false)},
		Install: InstallConfig{Clear: boolPtr(true)},
	}
}

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every command
// constructor.
type GlobalConfig struct {
	// Config is the loaded config file, nil when it could not be read.
	Config *Config

	// Resolved holds every value after applying precedence.
	Resolved *ResolvedConfig

	// ProjectRoot anchors project-local editor paths (the working directory).
	ProjectRoot string

	// UserHome anchors global editor paths.
	UserHome string

	Verbose bool
}

// Home returns the expanded rule store root.
func (g *GlobalConfig) Home() string {
	if g.Resolved == nil {
		return ""
	}
	home, err := ExpandPath(g.Resolved.Home.Value)
	if err != nil {
		return g.Resolved.Home.Value
	}
	return home
}

// Roots returns the anchors for editor path resolution.
func (g *GlobalConfig) Roots() editor.Roots {
	return editor.Roots{Project: g.ProjectRoot, Home: g.UserHome}
}

func boolPtr(b bool) *bool {
	return &b
}
