package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viberules/cli/internal/cmdutil"
	"github.com/viberules/cli/internal/config"
	oerrors "github.com/viberules/cli/internal/errors"
	"github.com/viberules/cli/internal/editor"
	"github.com/viberules/cli/internal/output"
	"github.com/viberules/cli/internal/provider"
	"github.com/viberules/cli/internal/rule"
	"github.com/viberules/cli/internal/store"
	"github.com/viberules/cli/internal/suggest"
)

// NewLoadCmd creates the load command.
func NewLoadCmd(cfg *config.GlobalConfig) *cobra.Command {
	var (
		tf     cmdutil.TargetFlags
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:     "load <name> <editor>",
		Aliases: []string{"add"},
		Short:   "Apply a saved rule to an editor",
		Long: `Apply a rule from the local store to an editor's configuration.

Per-rule editors (cursor, clinerules, roo, vscode) get one file per rule.
Shared-file editors (windsurf, claude-code, codex, amp, zed, unified) get a
<name>...</name> block that replaces any earlier block for the same rule.
Stored metadata (alwaysApply, globs) is rendered the way each editor expects.

Supported editors: ` + editorList() + `

Examples:
  # Add a rule to Cursor in the current project
  vibe-rules load react-hooks cursor

  # Add a rule to the global Claude Code file
  vibe-rules load react-hooks claude-code --global

  # Preview the change without writing
  vibe-rules load react-hooks windsurf --dry-run`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd, cfg, args[0], args[1], &tf, dryRun)
		},
	}

	tf.AddTo(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"Show the changes that would be written without writing them")

	return cmd
}

func runLoad(cmd *cobra.Command, cfg *config.GlobalConfig, name, editorName string, tf *cmdutil.TargetFlags, dryRun bool) error {
	kind, err := editor.ParseKind(editorName)
	if err != nil {
		return err
	}
	p, err := provider.For(kind)
	if err != nil {
		return err
	}

	stored, err := lookupRule(cfg, kind, name)
	if err != nil {
		if errors.Is(err, oerrors.ErrNotFound) {
			return reportMissingRule(cmd, cfg, name, err)
		}
		return err
	}

	ruleLog := output.RuleLogger(name)
	if tf.Global && !p.Spec().SupportsGlobal() {
		ruleLog.Warn(fmt.Sprintf("%s has no global location, writing to the project file", kind))
	}

	r := stored.Rule()
	md := stored.Meta()
	if md.Description == "" {
		md.Description = stored.Description
	}
	md.IsGlobal = tf.Global

	if !dryRun {
		internal := &store.Internal{Root: cfg.Home()}
		if _, err := internal.Save(string(kind), r); err != nil {
			ruleLog.Debug("could not cache rule", "error", cmdutil.Summary(err))
		}
	}

	target := tf.Resolve(cfg.Roots())
	res, err := p.Apply(p.PathFor(target, name), r, md, provider.Options{
		DryRun: dryRun,
		Logger: ruleLog,
	})
	if err != nil {
		return err
	}

	cmdutil.WriteResult(cmd.OutOrStdout(), name, res, dryRun)
	if stored.Metadata != nil {
		writeMetadata(cmd, *stored.Metadata)
	}
	return nil
}

// lookupRule reads name from the common store, falling back to the raw copy
// cached for kind by an earlier load.
func lookupRule(cfg *config.GlobalConfig, kind editor.Kind, name string) (*rule.Stored, error) {
	stored, err := store.NewCommon(cfg.Home()).Load(name)
	if err == nil || !errors.Is(err, oerrors.ErrNotFound) {
		return stored, err
	}

	internal := &store.Internal{Root: cfg.Home()}
	cached, cacheErr := internal.Load(string(kind), name)
	if cacheErr != nil {
		return nil, err
	}
	output.Debug("using cached rule", "rule", name, "editor", kind)
	return &rule.Stored{Name: cached.Name, Content: cached.Content}, nil
}

// reportMissingRule prints the not-found error followed by the closest saved
// rule names.
func reportMissingRule(cmd *cobra.Command, cfg *config.GlobalConfig, name string, notFound error) error {
	errOut := cmd.ErrOrStderr()
	fmt.Fprint(errOut, notFound.Error())

	names, err := store.NewCommon(cfg.Home()).List()
	if err == nil {
		if similar := suggest.Similar(name, names, suggest.DefaultLimit); len(similar) > 0 {
			fmt.Fprintln(errOut)
			fmt.Fprintln(errOut, "Did you mean one of these rules?")
			for _, s := range similar {
				fmt.Fprintln(errOut, "  "+output.StyleNoun.Render(s))
			}
		}
	}
	return cmdutil.Printed(notFound)
}
