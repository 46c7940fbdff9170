// Package install applies the rules exported by npm packages to an editor.
package install

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/viberules/cli/internal/editor"
	oerrors "github.com/viberules/cli/internal/errors"
	"github.com/viberules/cli/internal/merge"
	"github.com/viberules/cli/internal/output"
	"github.com/viberules/cli/internal/pkgsource"
	"github.com/viberules/cli/internal/provider"
)

// Status is the outcome for one package.
type Status int

const (
	// StatusInstalled means at least one rule was applied.
	StatusInstalled Status = iota

	// StatusUpToDate means every rule was already current and nothing was written.
	StatusUpToDate

	// StatusSkipped means the package ships no rules.
	StatusSkipped

	// StatusFailed means the package could not be installed.
	StatusFailed
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusInstalled:
		return "installed"
	case StatusUpToDate:
		return "up to date"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Request describes one install run.
type Request struct {
	Kind editor.Kind

	// Packages to install. Empty scans the project's package.json and skips
	// dependencies that ship no rules.
	Packages []string

	Target provider.Target

	// Clear removes the package's previously installed rules first.
	Clear bool
}

// RuleOutcome is the result of applying one rule.
type RuleOutcome struct {
	Name   string
	Result merge.Result
	Err    error
}

// PackageResult is the result for one package.
type PackageResult struct {
	Package string
	Status  Status
	Cleared int
	Rules   []RuleOutcome

	// Err is set for failed and skipped packages.
	Err error
}

// Report collects the per-package results of a run.
type Report struct {
	Packages []PackageResult
}

// Count returns the number of packages with status s.
func (r *Report) Count(s Status) int {
	n := 0
	for _, p := range r.Packages {
		if p.Status == s {
			n++
		}
	}
	return n
}

// AllFailed reports whether every package that was attempted failed.
// Skipped packages are not attempts.
func (r *Report) AllFailed() bool {
	failed := r.Count(StatusFailed)
	return failed > 0 && failed == len(r.Packages)-r.Count(StatusSkipped)
}

// Installer installs package rules one package at a time. A failure in one
// package is recorded and the run continues with the next.
type Installer struct {
	Source pkgsource.Source
	Logger *log.Logger
}

// Run installs every requested package. The error covers problems that stop
// the run before any package is attempted: an unknown editor or an
// unreadable package.json.
func (in *Installer) Run(req Request) (*Report, error) {
	logger := output.OrDiscard(in.Logger)

	p, err := provider.For(req.Kind)
	if err != nil {
		return nil, err
	}

	packages := req.Packages
	scanning := len(packages) == 0
	if scanning {
		packages, err = in.Source.Dependencies()
		if err != nil {
			return nil, err
		}
		logger.Debug("scanning dependencies", "count", len(packages))
	}

	report := &Report{}
	for _, pkg := range packages {
		res := in.installPackage(p, pkg, req, logger)
		if scanning && res.Status == StatusFailed && errors.Is(res.Err, oerrors.ErrNotFound) {
			res.Status = StatusSkipped
		}
		report.Packages = append(report.Packages, res)
	}
	return report, nil
}

func (in *Installer) installPackage(p *provider.Provider, pkg string, req Request, logger *log.Logger) PackageResult {
	res := PackageResult{Package: pkg}
	logger = logger.With("package", pkg)

	raw, path, err := in.Source.Load(pkg)
	if err != nil {
		res.Status, res.Err = StatusFailed, err
		return res
	}
	logger.Debug("loaded package export", "path", path)

	rules, err := pkgsource.Normalize(pkg, raw)
	if err != nil {
		logger.Warn("invalid package export", "err", err)
		res.Status, res.Err = StatusFailed, err
		return res
	}
	if len(rules) == 0 {
		res.Status = StatusSkipped
		res.Err = fmt.Errorf("package %q exports no rules", pkg)
		return res
	}

	entries := make([]provider.Entry, len(rules))
	for i, s := range rules {
		entries[i] = provider.Entry{Rule: s.Rule(), Meta: s.Meta()}
	}

	if p.Unchanged(req.Target, entries) {
		logger.Debug("rules already up to date")
		res.Status = StatusUpToDate
		return res
	}

	if req.Clear {
		n, err := p.Clear(req.Target, pkgsource.Prefix(pkg), provider.Options{Logger: logger})
		if err != nil {
			logger.Warn("failed to clear previous rules", "err", err)
		}
		res.Cleared = n
	}

	applied := 0
	for _, e := range entries {
		path := p.PathFor(req.Target, e.Rule.Name)
		result, err := p.Apply(path, e.Rule, e.Meta, provider.Options{Logger: logger})
		if err != nil {
			logger.Warn("failed to apply rule", "rule", e.Rule.Name, "err", err)
		} else {
			applied++
		}
		res.Rules = append(res.Rules, RuleOutcome{Name: e.Rule.Name, Result: result, Err: err})
	}

	if applied == 0 {
		res.Status = StatusFailed
		res.Err = fmt.Errorf("no rules from %q could be applied", pkg)
		return res
	}
	res.Status = StatusInstalled
	return res
}
