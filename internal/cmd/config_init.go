package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/viberules/cli/internal/config"
	oerrors "github.com/viberules/cli/internal/errors"
	"github.com/viberules/cli/internal/output"
)

const configHeader = "# vibe-rules CLI configuration\n" +
	"# Environment variables (VIBE_RULES_*) and flags override these values.\n\n"

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(cfg *config.GlobalConfig) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default configuration file",
		Long: `Create the vibe-rules configuration file with default values.

The file is written to ~/.vibe-rules/config.yaml unless --config or
VIBE_RULES_CONFIG names another location.

Examples:
  # Initialize configuration
  vibe-rules config init

  # Overwrite existing configuration
  vibe-rules config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, cfg, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false,
		"Overwrite existing configuration")

	return cmd
}

func runConfigInit(cmd *cobra.Command, cfg *config.GlobalConfig, force bool) error {
	path, err := config.ExpandPath(cfg.Resolved.ConfigPath.Value)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	exists, err := config.ConfigFileExists(path)
	if err != nil {
		return oerrors.NewIOError("checking config file", path, err)
	}
	if exists && !force {
		return &oerrors.DetailError{
			Type:     "conflict",
			Message:  "configuration already exists",
			Location: path,
			Hint:     "Use --force to overwrite existing configuration.",
			Cause:    oerrors.ErrConflict,
		}
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append([]byte(configHeader), data...)

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return oerrors.NewIOError("creating config directory", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return oerrors.NewIOError("writing config file", path, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), output.FormatCheckmark("Config file created: "+path))
	return nil
}
