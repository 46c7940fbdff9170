package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viberules/cli/internal/cmdutil"
	"github.com/viberules/cli/internal/config"
	"github.com/viberules/cli/internal/convert"
	"github.com/viberules/cli/internal/editor"
	"github.com/viberules/cli/internal/output"
)

// NewConvertCmd creates the convert command.
func NewConvertCmd(cfg *config.GlobalConfig) *cobra.Command {
	var (
		tf     cmdutil.TargetFlags
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "convert <source-format> <target-format> <source-path>",
		Short: "Convert rules between editor formats",
		Long: `Read every rule from one editor's files and write it in another editor's format.

The source path may be a rule directory (.cursor/rules), its parent (.cursor),
a single rule file, or a shared file such as CLAUDE.md. For shared-file
editors a project directory is accepted and the editor's file inside it is
read. Metadata (alwaysApply, globs) is carried across where both formats can
express it.

A rule that cannot be written is reported and the rest are still converted.

Supported formats: ` + editorList() + `

Examples:
  # Cursor rules into CLAUDE.md
  vibe-rules convert cursor claude-code .cursor/rules

  # Windsurf rules into per-rule Cursor files, previewing only
  vibe-rules convert windsurf cursor .windsurfrules --dry-run`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, cfg, args, &tf, dryRun)
		},
	}

	tf.AddTo(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"Show the changes that would be written without writing them")

	return cmd
}

func runConvert(cmd *cobra.Command, cfg *config.GlobalConfig, args []string, tf *cmdutil.TargetFlags, dryRun bool) error {
	from, err := editor.ParseKind(args[0])
	if err != nil {
		return err
	}
	to, err := editor.ParseKind(args[1])
	if err != nil {
		return err
	}

	converter := &convert.Converter{Logger: output.Logger()}
	report, err := converter.Run(convert.Request{
		From:   from,
		To:     to,
		Source: args[2],
		Target: tf.Resolve(cfg.Roots()),
		DryRun: dryRun,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, o := range report.Outcomes {
		if o.Err != nil {
			cmdutil.WriteFailure(out, o.Name, o.Err)
			continue
		}
		cmdutil.WriteResult(out, o.Name, o.Result, dryRun)
	}

	failed := report.Failed()
	verb := "Converted"
	if dryRun {
		verb = "Would convert"
	}
	summary := fmt.Sprintf("%s %d rule(s) from %s to %s", verb, report.Converted(), from, to)
	if len(failed) > 0 {
		summary += fmt.Sprintf(", %d failed", len(failed))
	}
	fmt.Fprintln(out, output.StyleSummary.Render(summary))

	if report.Converted() == 0 && len(failed) > 0 {
		return cmdutil.Printed(failed[0].Err)
	}
	return nil
}
