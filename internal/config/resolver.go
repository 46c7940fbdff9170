package config

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"

	oerrors "github.com/viberules/cli/internal/errors"
	"github.com/viberules/cli/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is one configuration value after applying precedence.
type ResolvedValue struct {
	Key    string
	Value  string
	Source ConfigSource

	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// Bool parses the value as a boolean. Unset values are false.
func (v ResolvedValue) Bool() bool {
	b, _ := strconv.ParseBool(v.Value)
	return b
}

// ResolvedConfig holds every configuration value with its source.
type ResolvedConfig struct {
	ConfigPath    ResolvedValue
	Home          ResolvedValue
	DefaultEditor ResolvedValue
	Timestamps    ResolvedValue
	InstallClear  ResolvedValue
}

// Values returns the resolved values in display order.
func (r *ResolvedConfig) Values() []ResolvedValue {
	return []ResolvedValue{r.ConfigPath, r.Home, r.DefaultEditor, r.Timestamps, r.InstallClear}
}

// ResolveAllOptions contains the inputs for ResolveAll.
type ResolveAllOptions struct {
	// ConfigFlag is the --config flag value (empty if not set).
	ConfigFlag string

	// HomeFlag is the --home flag value (empty if not set).
	HomeFlag string

	// TimestampsFlag is the --timestamps flag value, nil when not given.
	TimestampsFlag *bool

	// Config is the loaded config file. Nil is treated as empty.
	Config *Config
}

// candidate is one source's value for a key. set is false when that source
// has nothing to say.
type candidate struct {
	source ConfigSource
	value  string
	set    bool
}

// resolve picks the first set candidate and records the rest as shadowed.
func resolve(key string, candidates ...candidate) ResolvedValue {
	rv := ResolvedValue{Key: key, Shadowed: make(map[ConfigSource]string)}
	for _, c := range candidates {
		if !c.set {
			continue
		}
		if rv.Source == "" {
			rv.Value = c.value
			rv.Source = c.source
			continue
		}
		rv.Shadowed[c.source] = c.value
	}
	return rv
}

func stringCandidate(source ConfigSource, value string) candidate {
	return candidate{source: source, value: value, set: value != ""}
}

func boolCandidate(source ConfigSource, value *bool) candidate {
	if value == nil {
		return candidate{source: source}
	}
	return candidate{source: source, value: strconv.FormatBool(*value), set: true}
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) VIBE_RULES_CONFIG env, (3) ~/.vibe-rules/config.yaml
func ResolveConfigPath(flagValue string) (ResolvedValue, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return ResolvedValue{}, err
	}
	env := newEnv()
	return resolve("config",
		stringCandidate(SourceFlag, flagValue),
		stringCandidate(SourceEnv, env.GetString("config")),
		stringCandidate(SourceDefault, paths.ConfigFile),
	), nil
}

// ResolveAll resolves every configuration value using precedence:
// flag > env > config file > default.
func ResolveAll(opts ResolveAllOptions) (*ResolvedConfig, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = &Config{}
	}
	defaults := DefaultConfig()
	env := newEnv()

	configPath, err := ResolveConfigPath(opts.ConfigFlag)
	if err != nil {
		return nil, err
	}

	envTimestamps, err := envBool(env.GetString("log.timestamps"), EnvPrefix+"_LOG_TIMESTAMPS")
	if err != nil {
		return nil, err
	}
	envClear, err := envBool(env.GetString("install.clear"), EnvPrefix+"_INSTALL_CLEAR")
	if err != nil {
		return nil, err
	}

	return &ResolvedConfig{
		ConfigPath: configPath,
		Home: resolve("home",
			stringCandidate(SourceFlag, opts.HomeFlag),
			stringCandidate(SourceEnv, env.GetString("home")),
			stringCandidate(SourceConfig, cfg.Home),
			stringCandidate(SourceDefault, defaults.Home),
		),
		DefaultEditor: resolve("defaultEditor",
			stringCandidate(SourceEnv, env.GetString("defaultEditor")),
			stringCandidate(SourceConfig, cfg.DefaultEditor),
		),
		Timestamps: resolve("log.timestamps",
			boolCandidate(SourceFlag, opts.TimestampsFlag),
			boolCandidate(SourceEnv, envTimestamps),
			boolCandidate(SourceConfig, cfg.Log.Timestamps),
			boolCandidate(SourceDefault, defaults.Log.Timestamps),
		),
		InstallClear: resolve("install.clear",
			boolCandidate(SourceEnv, envClear),
			boolCandidate(SourceConfig, cfg.Install.Clear),
			boolCandidate(SourceDefault, defaults.Install.Clear),
		),
	}, nil
}

func envBool(raw, name string) (*bool, error) {
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, oerrors.NewValidationError(
			fmt.Sprintf("%s must be true or false, got %q", name, raw), "", name, "")
	}
	return &b, nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(logger *log.Logger, values []ResolvedValue) {
	logger = output.OrDiscard(logger)
	for _, v := range values {
		logger.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			logger.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
