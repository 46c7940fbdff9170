package merge

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"

	oerrors "github.com/viberules/cli/internal/errors"
	"github.com/viberules/cli/internal/fsutil"
	"github.com/viberules/cli/internal/output"
	"github.com/viberules/cli/internal/rule"
)

// Options control a single Apply call.
type Options struct {
	// Wrapped places new blocks inside the integration wrapper.
	Wrapped bool

	// DryRun computes the result without touching the filesystem.
	DryRun bool

	// Logger receives debug and warning output. Nil discards it.
	Logger *log.Logger

	// Staged carries dry-run results between calls in one batch, keyed by
	// path. A staged path is read from the map instead of disk and each dry
	// run records its output, so later previews build on earlier ones.
	Staged map[string]string
}

// Result describes what Apply did to the target.
type Result struct {
	Path   string
	Action Action

	// Before and After are the file contents around the merge.
	Before string
	After  string

	// Created is true when the target did not exist beforehand.
	Created bool

	// Repaired is true when a directory occupying the target path was removed.
	Repaired bool
}

// Changed reports whether the target content differs after the merge.
func (r Result) Changed() bool {
	return r.Action != ActionUnchanged
}

// Apply merges the tagged block for r into the file at path.
//
// The parent directory is created as needed. A directory found where the
// file should be is treated as corrupt state: it is removed and the target
// is recreated as an empty regular file. The merged content is then written
// atomically, and not at all when nothing changed.
func Apply(path string, r rule.Rule, md rule.Metadata, opts Options) (Result, error) {
	logger := output.OrDiscard(opts.Logger)
	res := Result{Path: path}

	if opts.DryRun && opts.Staged != nil {
		if staged, ok := opts.Staged[path]; ok {
			res.Before = staged
			res.After, res.Action = Plan(res.Before, r, md, opts.Wrapped)
			opts.Staged[path] = res.After
			return res, nil
		}
	}

	if !opts.DryRun {
		if err := fsutil.EnsureParent(path); err != nil {
			return res, oerrors.NewIOError("preparing target directory", path, err)
		}
	}

	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		logger.Warn("found a directory where a file was expected, removing it", "path", path)
		res.Repaired = true
		res.Created = true
		if !opts.DryRun {
			if err := os.RemoveAll(path); err != nil {
				return res, oerrors.NewIOError("removing directory at target path", path, err)
			}
		}
	case errors.Is(err, fs.ErrNotExist):
		res.Created = true
	case err != nil:
		return res, oerrors.NewIOError("inspecting target", path, err)
	}

	if res.Created && !opts.DryRun {
		if err := createEmpty(path); err != nil {
			return res, err
		}
		logger.Debug("created empty target", "path", path)
	}

	if !res.Created {
		data, err := os.ReadFile(path)
		if err != nil {
			return res, oerrors.NewIOError("reading target", path, err)
		}
		res.Before = string(data)
	}

	res.After, res.Action = Plan(res.Before, r, md, opts.Wrapped)
	logger.Debug("merged rule block", "rule", r.Name, "path", path, "action", res.Action)

	if opts.DryRun {
		if opts.Staged != nil {
			opts.Staged[path] = res.After
		}
		return res, nil
	}
	if res.Action == ActionUnchanged && !res.Created {
		return res, nil
	}

	if err := fsutil.AtomicWrite(path, []byte(res.After), fsutil.FilePerm); err != nil {
		return res, oerrors.NewIOError("writing target", path, err)
	}
	return res, nil
}

// createEmpty creates path as an empty regular file and verifies the result.
func createEmpty(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, fsutil.FilePerm)
	if err != nil {
		return oerrors.NewIOError("creating target", path, err)
	}
	if err := f.Close(); err != nil {
		return oerrors.NewIOError("creating target", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return oerrors.NewIOError("creating target", path, err)
	}
	if !info.Mode().IsRegular() {
		return oerrors.NewIOError("creating target", path,
			fmt.Errorf("expected a regular file, found %s", info.Mode().Type()))
	}
	return nil
}

// RemoveFromFile deletes blocks whose names start with prefix from the file
// at path. A missing file is not an error. It returns the number of blocks
// removed.
func RemoveFromFile(path, prefix string, dryRun bool) (int, error) {
	content, ok, err := fsutil.ReadIfExists(path)
	if err != nil {
		return 0, oerrors.NewIOError("reading target", path, err)
	}
	if !ok {
		return 0, nil
	}

	updated, n := RemovePrefixed(content, prefix)
	if n == 0 || dryRun {
		return n, nil
	}
	if err := fsutil.AtomicWrite(path, []byte(updated), fsutil.FilePerm); err != nil {
		return 0, oerrors.NewIOError("writing target", path, err)
	}
	return n, nil
}
