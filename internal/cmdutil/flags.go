// Package cmdutil provides shared command utilities for the rule commands.
// It centralizes flag group management, result printing and error reporting.
package cmdutil

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/viberules/cli/internal/editor"
	oerrors "github.com/viberules/cli/internal/errors"
	"github.com/viberules/cli/internal/output"
	"github.com/viberules/cli/internal/provider"
)

// TargetFlags holds flags for choosing where rules are written
// (load, install, convert).
type TargetFlags struct {
	Global bool
	Target string
}

// AddTo registers the target flags on the given cobra command.
func (f *TargetFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.Global, "global", "g", false,
		"Write to the editor's global file (claude-code, codex)")
	cmd.Flags().StringVarP(&f.Target, "target", "t", "",
		"Custom target: a directory for per-rule editors, a file for shared-file editors")
}

// Resolve builds the provider target anchored at roots.
func (f *TargetFlags) Resolve(roots editor.Roots) provider.Target {
	return provider.Target{Roots: roots, Global: f.Global, Override: f.Target}
}

// OutputFlags holds the listing format flag (list, config show).
type OutputFlags struct {
	Format string
}

// AddTo registers the output flag on the given cobra command.
func (f *OutputFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Format, "output", "o", "table",
		"Output format: "+strings.Join(output.ValidFormats(), ", "))
}

// Parse validates the requested format.
func (f *OutputFlags) Parse() (output.OutputFormat, error) {
	format, ok := output.ParseOutputFormat(f.Format)
	if !ok {
		return "", oerrors.NewValidationError(
			fmt.Sprintf("unknown output format %q", f.Format), "", "output",
			"Valid formats: "+strings.Join(output.ValidFormats(), ", "))
	}
	return format, nil
}

// ParseEditor resolves an editor argument, falling back to fallback when the
// argument is empty.
func ParseEditor(arg, fallback string) (editor.Kind, error) {
	name := arg
	if name == "" {
		name = fallback
	}
	if name == "" {
		return "", oerrors.NewValidationError("no editor given", "", "editor",
			"Pass an editor argument or set defaultEditor in the config file")
	}
	return editor.ParseKind(name)
}
