// Package cmd provides CLI command implementations.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/viberules/cli/internal/cmdutil"
	"github.com/viberules/cli/internal/config"
	"github.com/viberules/cli/internal/output"
	"github.com/viberules/cli/internal/version"
)

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	config     string
	home       string
	verbose    bool
	timestamps bool
}

func (f *globalFlags) addTo(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&f.config, "config", "",
		"Path to config file (env: VIBE_RULES_CONFIG)")
	cmd.PersistentFlags().StringVar(&f.home, "home", "",
		"Rule store directory (env: VIBE_RULES_HOME, default ~/.vibe-rules)")
	cmd.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false,
		"Enable verbose output")
	cmd.PersistentFlags().BoolVar(&f.verbose, "debug", false,
		"Alias for --verbose")
	cmd.PersistentFlags().BoolVar(&f.timestamps, "timestamps", false,
		"Show timestamps in log output (env: VIBE_RULES_LOG_TIMESTAMPS)")
}

// NewRootCmd creates the root command for the vibe-rules CLI.
func NewRootCmd() *cobra.Command {
	var flags globalFlags
	cfg := &config.GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "vibe-rules",
		Short: "Manage AI prompt rules across editors",
		Long: `vibe-rules saves reusable AI assistant rules and writes them into the
configuration files of editors and coding agents (Cursor, Windsurf,
Claude Code, Codex, Amp, Cline, Roo, Zed, VS Code).

Rules live in a local store (~/.vibe-rules/rules) and are applied with
'vibe-rules load'. Packages can ship rules that 'vibe-rules install'
writes for you, and 'vibe-rules convert' moves rules between editor formats.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initializeGlobals(cmd, &flags, cfg)
		},
	}

	flags.addTo(rootCmd)

	rootCmd.AddCommand(NewSaveCmd(cfg))
	rootCmd.AddCommand(NewListCmd(cfg))
	rootCmd.AddCommand(NewLoadCmd(cfg))
	rootCmd.AddCommand(NewInstallCmd(cfg))
	rootCmd.AddCommand(NewConvertCmd(cfg))
	rootCmd.AddCommand(NewConfigCmd(cfg))
	rootCmd.AddCommand(NewVersionCmd(cfg))

	return rootCmd
}

// initializeGlobals loads configuration, sets up logging and fills cfg.
func initializeGlobals(cmd *cobra.Command, flags *globalFlags, cfg *config.GlobalConfig) error {
	configPath, err := config.ResolveConfigPath(flags.config)
	if err != nil {
		return err
	}

	// A broken config file should not block commands that do not need it.
	loaded, loadErr := config.NewLoader().Load(configPath.Value)
	if loadErr == nil {
		if err := config.Validate(loaded, configPath.Value); err != nil {
			loadErr = err
			loaded = nil
		}
	}

	opts := config.ResolveAllOptions{
		ConfigFlag: flags.config,
		HomeFlag:   flags.home,
		Config:     loaded,
	}
	if cmd.Flags().Changed("timestamps") {
		opts.TimestampsFlag = output.BoolPtr(flags.timestamps)
	}

	resolved, err := config.ResolveAll(opts)
	if err != nil {
		return err
	}

	output.SetupLogging(output.LogConfig{
		Verbose:    flags.verbose,
		Timestamps: output.BoolPtr(resolved.Timestamps.Bool()),
	})

	if loadErr != nil {
		output.Warn("ignoring config file", "path", configPath.Value, "error", cmdutil.Summary(loadErr))
	}

	info := version.Get()
	output.Debug("vibe-rules started", "version", info.Version, "commit", info.GitCommit)
	config.LogResolvedValues(output.Logger(), resolved.Values())

	projectRoot, err := os.Getwd()
	if err != nil {
		return err
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	cfg.Config = loaded
	cfg.Resolved = resolved
	cfg.ProjectRoot = projectRoot
	cfg.UserHome = userHome
	cfg.Verbose = flags.verbose

	return nil
}
