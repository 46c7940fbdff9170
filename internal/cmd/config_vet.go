package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viberules/cli/internal/config"
	oerrors "github.com/viberules/cli/internal/errors"
	"github.com/viberules/cli/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(cfg *config.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate configuration",
		Long: `Validate the vibe-rules configuration file.

Checks that the file exists, parses as YAML and holds valid values (for
example, that defaultEditor names a supported editor).

The config path is resolved using precedence:
  --config flag > VIBE_RULES_CONFIG env > ~/.vibe-rules/config.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigVet(cmd, cfg)
		},
	}
}

func runConfigVet(cmd *cobra.Command, cfg *config.GlobalConfig) error {
	path, err := config.ExpandPath(cfg.Resolved.ConfigPath.Value)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	exists, err := config.ConfigFileExists(path)
	if err != nil {
		return oerrors.NewIOError("checking config file", path, err)
	}
	if !exists {
		return oerrors.NewNotFoundError("configuration file not found", path,
			"Run 'vibe-rules config init' to create default configuration")
	}

	loaded, err := config.NewLoader().Load(path)
	if err != nil {
		return oerrors.NewValidationError(err.Error(), path, "", "")
	}
	if err := config.Validate(loaded, path); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), output.FormatCheckmark("Configuration is valid: "+path))
	return nil
}
