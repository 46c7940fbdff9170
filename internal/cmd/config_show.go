package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viberules/cli/internal/cmdutil"
	"github.com/viberules/cli/internal/config"
	"github.com/viberules/cli/internal/output"
)

// NewConfigShowCmd creates the config show command.
func NewConfigShowCmd(cfg *config.GlobalConfig) *cobra.Command {
	var of cmdutil.OutputFlags

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show resolved configuration",
		Long: `Show every configuration value and where it came from.

Values are resolved with the precedence flag > env > config file > default.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd, cfg, &of)
		},
	}

	of.AddTo(cmd)

	return cmd
}

func runConfigShow(cmd *cobra.Command, cfg *config.GlobalConfig, of *cmdutil.OutputFlags) error {
	format, err := of.Parse()
	if err != nil {
		return err
	}

	values := cfg.Resolved.Values()
	out := cmd.OutOrStdout()

	switch format {
	case output.FormatJSON:
		type entry struct {
			Key    string `json:"key"`
			Value  string `json:"value"`
			Source string `json:"source,omitempty"`
		}
		entries := make([]entry, len(values))
		for i, v := range values {
			entries[i] = entry{Key: v.Key, Value: v.Value, Source: string(v.Source)}
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	case output.FormatPlain:
		for _, v := range values {
			fmt.Fprintf(out, "%s=%s\n", v.Key, v.Value)
		}
	default:
		tbl := output.NewTable("KEY", "VALUE", "SOURCE")
		for _, v := range values {
			source := string(v.Source)
			if source == "" {
				source = "-"
			}
			tbl.Row(v.Key, v.Value, source)
		}
		fmt.Fprintln(out, tbl.String())
	}
	return nil
}
