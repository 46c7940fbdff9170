package convert

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/viberules/cli/internal/editor"
	oerrors "github.com/viberules/cli/internal/errors"
	"github.com/viberules/cli/internal/merge"
	"github.com/viberules/cli/internal/output"
	"github.com/viberules/cli/internal/provider"
	"github.com/viberules/cli/internal/rule"
)

// Request describes one conversion.
type Request struct {
	From   editor.Kind
	To     editor.Kind
	Source string
	Target provider.Target
	DryRun bool
}

// Outcome is the result for one converted rule.
type Outcome struct {
	Name   string
	Result merge.Result
	Err    error
}

// Report summarizes a conversion.
type Report struct {
	Source   string
	Outcomes []Outcome
}

// Converted returns the number of rules written (or that would be written).
func (r *Report) Converted() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the outcomes that carry an error.
func (r *Report) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}

// Converter replays extracted rules into a target editor format.
type Converter struct {
	Logger *log.Logger
}

// Run extracts every rule from req.Source and applies each one to the target
// format. A rule that fails to apply is recorded in the report and the rest
// continue. The returned error covers request-level problems only: equal or
// unknown formats, a missing source, or a source with no rules.
func (c *Converter) Run(req Request) (*Report, error) {
	logger := output.OrDiscard(c.Logger)

	if req.From == req.To {
		return nil, &oerrors.DetailError{
			Type:    "invalid conversion",
			Message: fmt.Sprintf("source and target formats are both %s", req.From),
			Hint:    "Choose a different target format",
			Cause:   oerrors.ErrConflict,
		}
	}
	if _, ok := editor.Lookup(req.From); !ok {
		return nil, editor.UnknownKindError(string(req.From))
	}
	to, err := provider.For(req.To)
	if err != nil {
		return nil, err
	}

	rules, err := Extract(req.From, req.Source)
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, noRulesError(req.From, req.Source)
	}
	logger.Debug("extracted rules", "format", req.From, "source", req.Source, "count", len(rules))

	var staged map[string]string
	if req.DryRun {
		staged = make(map[string]string)
	}

	report := &Report{Source: req.Source}
	for _, s := range rules {
		out := Outcome{Name: s.Name}
		if !rule.ValidName(s.Name) || s.Content == "" {
			out.Err = oerrors.NewValidationError(
				fmt.Sprintf("rule %q has an unusable name or empty content", s.Name), req.Source, "", "")
			report.Outcomes = append(report.Outcomes, out)
			continue
		}

		path := to.PathFor(req.Target, s.Name)
		out.Result, out.Err = to.Apply(path, s.Rule(), s.Meta(), provider.Options{
			DryRun: req.DryRun,
			Logger: logger,
			Staged: staged,
		})
		if out.Err != nil {
			logger.Warn("failed to convert rule", "rule", s.Name, "err", out.Err)
		}
		report.Outcomes = append(report.Outcomes, out)
	}
	return report, nil
}
