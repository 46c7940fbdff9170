package cmd

import (
	"github.com/spf13/cobra"

	"github.com/viberules/cli/internal/config"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(cfg *config.GlobalConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  `Configuration management for the vibe-rules CLI.`,
	}

	cmd.AddCommand(NewConfigInitCmd(cfg))
	cmd.AddCommand(NewConfigShowCmd(cfg))
	cmd.AddCommand(NewConfigVetCmd(cfg))

	return cmd
}
