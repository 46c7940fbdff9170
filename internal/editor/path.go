package editor

import (
	"path/filepath"
	"regexp"
	"strings"
)

var slugSeparators = regexp.MustCompile(`[^a-z0-9_]+`)

// Slug lowercases name, collapses every run of characters outside
// [a-z0-9_] into a single "-" and trims leading and trailing dashes.
func Slug(name string) string {
	s := slugSeparators.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}

// Roots anchors relative editor paths.
type Roots struct {
	// Project is the project root for local paths.
	Project string

	// Home is the user home directory for global paths.
	Home string
}

// ResolvePath returns the file a rule named name is written to. For
// multi-file editors this is a per-rule file; for single-file editors it is
// the shared file. global selects the home-level file when the editor has
// one and is otherwise ignored. ResolvePath does no I/O.
func ResolvePath(k Kind, name string, global bool, roots Roots) string {
	s := MustLookup(k)
	if s.MultiFile() {
		return filepath.Join(roots.Project, filepath.FromSlash(s.Dir), Slug(name)+s.Ext)
	}
	return DefaultTarget(k, global, roots)
}

// DefaultTarget returns the rule directory (multi-file) or shared file
// (single-file) used when no rule name is known yet. It agrees with the
// directory component of ResolvePath.
func DefaultTarget(k Kind, global bool, roots Roots) string {
	s := MustLookup(k)
	if s.MultiFile() {
		return filepath.Join(roots.Project, filepath.FromSlash(s.Dir))
	}
	if global && s.SupportsGlobal() {
		return filepath.Join(roots.Home, filepath.FromSlash(s.GlobalFile))
	}
	return filepath.Join(roots.Project, filepath.FromSlash(s.File))
}

// TargetFor applies a --target override. For multi-file editors override
// names the rule directory; for single-file editors it names the file.
func TargetFor(k Kind, name string, global bool, override string, roots Roots) string {
	if override == "" {
		return ResolvePath(k, name, global, roots)
	}
	s := MustLookup(k)
	if s.MultiFile() {
		return filepath.Join(override, Slug(name)+s.Ext)
	}
	return override
}

// RuleName recovers a rule name from a multi-file rule path by stripping the
// editor's extension from the base name.
func RuleName(k Kind, path string) string {
	return strings.TrimSuffix(filepath.Base(path), MustLookup(k).Ext)
}
