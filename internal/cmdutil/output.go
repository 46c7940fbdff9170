package cmdutil

import (
	"errors"
	"fmt"
	"io"

	oerrors "github.com/viberules/cli/internal/errors"
	"github.com/viberules/cli/internal/merge"
	"github.com/viberules/cli/internal/output"
)

// StatusFor maps a write result to the status word printed after the rule.
func StatusFor(res merge.Result) string {
	switch {
	case res.Action == merge.ActionUnchanged:
		return output.StatusUnchanged
	case res.Created:
		return output.StatusCreated
	default:
		return output.StatusUpdated
	}
}

// WriteResult prints one rule line. On dry runs a changed result is followed
// by the diff that would be written.
func WriteResult(w io.Writer, name string, res merge.Result, dryRun bool) {
	fmt.Fprintln(w, output.FormatRuleLine(name, res.Path, StatusFor(res)))
	if dryRun && res.Changed() {
		fmt.Fprint(w, output.ColorizeDiff(output.Diff(res.Path, res.Before, res.After)))
	}
}

// WriteFailure prints a failed rule line and logs the reason.
func WriteFailure(w io.Writer, name string, err error) {
	fmt.Fprintln(w, output.FormatRuleLine(name, "", output.StatusFailed))
	output.RuleLogger(name).Error(Summary(err))
}

// Summary returns a one-line description of err. Detail errors render their
// message alone.
func Summary(err error) string {
	var detail *oerrors.DetailError
	if errors.As(err, &detail) {
		return detail.Message
	}
	return err.Error()
}

// Printed wraps err in an ExitError that main will not print again.
func Printed(err error) error {
	return &oerrors.ExitError{
		Code:    oerrors.ExitCodeFromError(err),
		Err:     err,
		Printed: true,
	}
}
