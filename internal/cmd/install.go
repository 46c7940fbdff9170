package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/viberules/cli/internal/cmdutil"
	"github.com/viberules/cli/internal/config"
	"github.com/viberules/cli/internal/install"
	"github.com/viberules/cli/internal/output"
	"github.com/viberules/cli/internal/pkgsource"
)

// NewInstallCmd creates the install command.
func NewInstallCmd(cfg *config.GlobalConfig) *cobra.Command {
	var (
		tf      cmdutil.TargetFlags
		noClear bool
	)

	cmd := &cobra.Command{
		Use:   "install [editor] [package...]",
		Short: "Install rules shipped by packages",
		Long: `Install the rules a package ships into an editor's configuration.

A package ships rules as node_modules/<package>/llms.json, llms.yaml,
llms.txt or llms.md. The export is either one rule (a string) or a list of
strings and {name, rule, description, alwaysApply, globs} objects. Rule names
are prefixed with "<package>_".

Without a package every dependency in package.json is checked and packages
that ship no rules are skipped. Without an editor the configured
defaultEditor is used.

Before re-installing, the package's earlier rules are removed so renamed or
dropped rules do not linger. Packages whose rules are already current are
left alone. A failing package does not stop the others.

Examples:
  # Install rules from every dependency for Cursor
  vibe-rules install cursor

  # Install one package's rules into CLAUDE.md
  vibe-rules install claude-code my-lib`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, cfg, args, &tf, noClear)
		},
	}

	tf.AddTo(cmd)
	cmd.Flags().BoolVar(&noClear, "no-clear", false,
		"Keep a package's previously installed rules (env: VIBE_RULES_INSTALL_CLEAR=false)")

	return cmd
}

func runInstall(cmd *cobra.Command, cfg *config.GlobalConfig, args []string, tf *cmdutil.TargetFlags, noClear bool) error {
	editorArg := ""
	if len(args) > 0 {
		editorArg = args[0]
	}
	kind, err := cmdutil.ParseEditor(editorArg, cfg.Resolved.DefaultEditor.Value)
	if err != nil {
		return err
	}

	var packages []string
	if len(args) > 1 {
		packages = args[1:]
	}

	req := install.Request{
		Kind:     kind,
		Packages: packages,
		Target:   tf.Resolve(cfg.Roots()),
		Clear:    cfg.Resolved.InstallClear.Bool() && !noClear,
	}
	installer := &install.Installer{
		Source: &pkgsource.NodeModules{ProjectRoot: cfg.ProjectRoot},
		Logger: output.Logger(),
	}

	var report *install.Report
	run := func() error {
		var runErr error
		report, runErr = installer.Run(req)
		return runErr
	}
	if len(packages) == 0 {
		err = output.RunWithSpinner(context.Background(), run, output.WithTitle("Installing rules from dependencies..."))
	} else {
		err = run()
	}
	if err != nil {
		return err
	}

	writeInstallReport(cmd, report)

	if report.AllFailed() {
		return cmdutil.Printed(firstInstallError(report))
	}
	return nil
}

func writeInstallReport(cmd *cobra.Command, report *install.Report) {
	out := cmd.OutOrStdout()
	for _, pkg := range report.Packages {
		switch pkg.Status {
		case install.StatusInstalled:
			if pkg.Cleared > 0 {
				output.Debug("cleared previous rules", "package", pkg.Package, "count", pkg.Cleared)
			}
			for _, r := range pkg.Rules {
				if r.Err != nil {
					cmdutil.WriteFailure(out, r.Name, r.Err)
					continue
				}
				cmdutil.WriteResult(out, r.Name, r.Result, false)
			}
		case install.StatusUpToDate:
			fmt.Fprintln(out, output.FormatRuleLine(pkg.Package, "", output.StatusUnchanged))
		case install.StatusSkipped:
			output.Debug("skipped package", "package", pkg.Package)
		case install.StatusFailed:
			cmdutil.WriteFailure(out, pkg.Package, firstPackageError(pkg))
		}
	}

	if len(report.Packages) == 0 {
		fmt.Fprintln(out, output.StyleDim.Render("No packages to install"))
		return
	}

	var parts []string
	for _, s := range []install.Status{install.StatusInstalled, install.StatusUpToDate, install.StatusFailed} {
		if n := report.Count(s); n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, s))
		}
	}
	if len(parts) == 0 {
		fmt.Fprintln(out, output.StyleDim.Render("No package ships rules"))
		return
	}
	fmt.Fprintln(out, output.StyleSummary.Render("Packages: "+strings.Join(parts, ", ")))
}

func firstPackageError(pkg install.PackageResult) error {
	if pkg.Err != nil {
		return pkg.Err
	}
	for _, r := range pkg.Rules {
		if r.Err != nil {
			return r.Err
		}
	}
	return errors.New("install failed")
}

func firstInstallError(report *install.Report) error {
	for _, pkg := range report.Packages {
		if pkg.Status == install.StatusFailed {
			return firstPackageError(pkg)
		}
	}
	return errors.New("install failed")
}
