package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/viberules/cli/internal/cmdutil"
	"github.com/viberules/cli/internal/config"
	"github.com/viberules/cli/internal/editor"
	"github.com/viberules/cli/internal/output"
	"github.com/viberules/cli/internal/store"
	"github.com/viberules/cli/internal/suggest"
)

// listEntry is one row of list output.
type listEntry struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Globs       []string `json:"globs,omitempty"`
	AlwaysApply *bool    `json:"alwaysApply,omitempty"`
}

// NewListCmd creates the list command.
func NewListCmd(cfg *config.GlobalConfig) *cobra.Command {
	var (
		of         cmdutil.OutputFlags
		editorFlag string
	)

	cmd := &cobra.Command{
		Use:   "list [filter]",
		Short: "List saved rules",
		Long: `List the rules in the local store.

An optional filter keeps rules whose names fuzzy-match it. With --editor the
raw rules cached for that editor by 'vibe-rules load' are listed instead.

Examples:
  # List every saved rule
  vibe-rules list

  # Rules whose names look like "react"
  vibe-rules list react

  # Names only, for scripts
  vibe-rules list -o plain`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := ""
			if len(args) > 0 {
				filter = args[0]
			}
			return runList(cmd, cfg, filter, editorFlag, &of)
		},
	}

	of.AddTo(cmd)
	cmd.Flags().StringVarP(&editorFlag, "editor", "e", "",
		"List rules cached for an editor instead of the common store")

	return cmd
}

func runList(cmd *cobra.Command, cfg *config.GlobalConfig, filter, editorName string, of *cmdutil.OutputFlags) error {
	format, err := of.Parse()
	if err != nil {
		return err
	}

	entries, err := collectEntries(cfg, editorName)
	if err != nil {
		return err
	}
	entries = filterEntries(entries, filter)

	out := cmd.OutOrStdout()
	switch format {
	case output.FormatJSON:
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	case output.FormatPlain:
		for _, e := range entries {
			fmt.Fprintln(out, e.Name)
		}
	default:
		if len(entries) == 0 {
			fmt.Fprintln(out, output.StyleDim.Render("No rules found"))
			return nil
		}
		tbl := output.NewTable("NAME", "DESCRIPTION", "GLOBS").MaxCellWidth(60)
		for _, e := range entries {
			tbl.Row(e.Name, e.Description, strings.Join(e.Globs, ", "))
		}
		fmt.Fprintln(out, tbl.String())
	}
	return nil
}

func collectEntries(cfg *config.GlobalConfig, editorName string) ([]listEntry, error) {
	if editorName != "" {
		kind, err := editor.ParseKind(editorName)
		if err != nil {
			return nil, err
		}
		internal := &store.Internal{Root: cfg.Home()}
		names, err := internal.List(string(kind))
		if err != nil {
			return nil, err
		}
		entries := make([]listEntry, len(names))
		for i, n := range names {
			entries[i] = listEntry{Name: n}
		}
		return entries, nil
	}

	common := store.NewCommon(cfg.Home())
	names, err := common.List()
	if err != nil {
		return nil, err
	}

	entries := make([]listEntry, 0, len(names))
	for _, n := range names {
		entry := listEntry{Name: n}
		stored, err := common.Load(n)
		if err != nil {
			output.Warn("could not read rule", "rule", n, "error", cmdutil.Summary(err))
		} else {
			md := stored.Meta()
			entry.Description = stored.Description
			entry.Globs = md.Globs
			entry.AlwaysApply = md.AlwaysApply
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func filterEntries(entries []listEntry, filter string) []listEntry {
	if filter == "" {
		return entries
	}
	names := make([]string, len(entries))
	byName := make(map[string]listEntry, len(entries))
	for i, e := range entries {
		names[i] = e.Name
		byName[e.Name] = e
	}

	matched := suggest.Filter(filter, names)
	filtered := make([]listEntry, 0, len(matched))
	for _, n := range matched {
		filtered = append(filtered, byName[n])
	}
	return filtered
}
