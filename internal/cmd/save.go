package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/viberules/cli/internal/config"
	oerrors "github.com/viberules/cli/internal/errors"
	"github.com/viberules/cli/internal/frontmatter"
	"github.com/viberules/cli/internal/output"
	"github.com/viberules/cli/internal/rule"
	"github.com/viberules/cli/internal/store"
)

type saveOptions struct {
	content     string
	file        string
	description string
}

// NewSaveCmd creates the save command.
func NewSaveCmd(cfg *config.GlobalConfig) *cobra.Command {
	var opts saveOptions

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save a rule to the local store",
		Long: `Save a rule to the local store (~/.vibe-rules/rules/<name>.json).

Rule content comes from --content or from a file. A file may start with a
frontmatter header; its description, alwaysApply and globs keys are kept as
rule metadata and the header itself is dropped from the content.

Saving under an existing name replaces the stored rule.

Examples:
  # Save inline content
  vibe-rules save react-hooks -c "Prefer function components and hooks."

  # Save from a Cursor rule file, keeping its metadata
  vibe-rules save api-style -f .cursor/rules/api-style.mdc`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSave(cmd, cfg, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.content, "content", "c", "", "Rule content")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read rule content from a file")
	cmd.Flags().StringVarP(&opts.description, "description", "d", "", "Rule description")
	cmd.MarkFlagsMutuallyExclusive("content", "file")

	return cmd
}

func runSave(cmd *cobra.Command, cfg *config.GlobalConfig, name string, opts *saveOptions) error {
	stored, err := buildStoredRule(name, opts)
	if err != nil {
		return err
	}

	path, err := store.NewCommon(cfg.Home()).Save(stored)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if stored.Metadata == nil {
		fmt.Fprintln(out, output.FormatCheckmark(fmt.Sprintf("Rule %q saved to %s", name, path)))
		return nil
	}

	fmt.Fprintln(out, output.FormatCheckmark(fmt.Sprintf("Rule %q saved with metadata to %s", name, path)))
	writeMetadata(cmd, *stored.Metadata)
	return nil
}

// buildStoredRule assembles the stored rule from the save flags. File content
// has its frontmatter lifted into metadata.
func buildStoredRule(name string, opts *saveOptions) (rule.Stored, error) {
	stored := rule.Stored{Name: name, Description: opts.description}

	switch {
	case opts.file != "":
		data, err := os.ReadFile(opts.file)
		if err != nil {
			if os.IsNotExist(err) {
				return stored, oerrors.NewNotFoundError("rule file not found", opts.file, "")
			}
			return stored, oerrors.NewIOError("reading rule file", opts.file, err)
		}
		content, md := extractFrontmatter(string(data))
		stored.Content = content
		if !md.IsZero() {
			stored.Metadata = &md
		}
		if stored.Description == "" {
			stored.Description = md.Description
		}
	case opts.content != "":
		stored.Content = opts.content
	default:
		return stored, oerrors.NewValidationError("either --content or --file must be specified",
			"", "content", "")
	}

	return stored, nil
}

func extractFrontmatter(input string) (string, rule.Metadata) {
	parsed := frontmatter.Parse(input)
	var md rule.Metadata
	if !parsed.Found {
		return input, md
	}

	if desc, ok := parsed.Frontmatter.String("description"); ok {
		md.Description = desc
	}
	if always, ok := parsed.Frontmatter.Bool("alwaysApply"); ok {
		md.AlwaysApply = rule.Bool(always)
	}
	if globs := parsed.Frontmatter.Strings("globs"); len(globs) > 0 {
		md.Globs = globs
	}
	return parsed.Content, md
}

func writeMetadata(cmd *cobra.Command, md rule.Metadata) {
	out := cmd.OutOrStdout()
	if md.AlwaysApply != nil {
		fmt.Fprintln(out, output.StyleDim.Render(fmt.Sprintf("  - Always Apply: %t", *md.AlwaysApply)))
	}
	if len(md.Globs) > 0 {
		fmt.Fprintln(out, output.StyleDim.Render("  - Globs: "+strings.Join(md.Globs, ", ")))
	}
}
