// Package convert reads rules back out of an editor's native files and
// replays them into another editor format.
package convert

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/viberules/cli/internal/editor"
	oerrors "github.com/viberules/cli/internal/errors"
	"github.com/viberules/cli/internal/frontmatter"
	"github.com/viberules/cli/internal/merge"
	"github.com/viberules/cli/internal/rule"
)

// Extract returns every rule stored at path in the kind's native format, in
// file-name order for multi-file editors and document order for shared
// files. A path that does not exist fails with ErrNotFound; a path that holds
// no rules returns an empty slice.
//
// For multi-file editors path is the rule directory or a single rule file.
// For single-file editors path is the shared file or a directory containing
// it under its default name.
func Extract(kind editor.Kind, path string) ([]rule.Stored, error) {
	spec, ok := editor.Lookup(kind)
	if !ok {
		return nil, editor.UnknownKindError(string(kind))
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, oerrors.NewNotFoundError("source not found", path, "Check the source path")
	}
	if err != nil {
		return nil, oerrors.NewIOError("inspecting source", path, err)
	}

	if spec.MultiFile() {
		if !info.IsDir() {
			s, err := extractFile(spec, path)
			if err != nil {
				return nil, err
			}
			return []rule.Stored{s}, nil
		}
		return extractDir(spec, ruleDir(spec, path))
	}

	if info.IsDir() {
		path = filepath.Join(path, filepath.Base(filepath.FromSlash(spec.File)))
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, oerrors.NewNotFoundError("source not found", path, "Check the source path")
	}
	if err != nil {
		return nil, oerrors.NewIOError("reading source", path, err)
	}
	return ExtractShared(spec, string(data)), nil
}

// ruleDir descends from a project-level editor directory (".cursor") into
// the rule directory (".cursor/rules") when given the parent.
func ruleDir(spec editor.Spec, dir string) string {
	last := filepath.Base(filepath.FromSlash(spec.Dir))
	parent := filepath.Base(filepath.Dir(filepath.FromSlash(spec.Dir)))
	if parent != "." && filepath.Base(dir) == parent {
		candidate := filepath.Join(dir, last)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
	}
	return dir
}

func extractDir(spec editor.Spec, dir string) ([]rule.Stored, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, oerrors.NewIOError("listing source directory", dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), spec.Ext) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	rules := make([]rule.Stored, 0, len(names))
	for _, n := range names {
		s, err := extractFile(spec, filepath.Join(dir, n))
		if err != nil {
			return nil, err
		}
		rules = append(rules, s)
	}
	return rules, nil
}

func extractFile(spec editor.Spec, path string) (rule.Stored, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return rule.Stored{}, oerrors.NewIOError("reading rule file", path, err)
	}
	name := editor.RuleName(spec.Kind, path)
	return ParseRuleFile(spec, name, string(data)), nil
}

// ParseRuleFile inverts the multi-file rendering for spec.
func ParseRuleFile(spec editor.Spec, name, content string) rule.Stored {
	content = normalizeNewlines(content)
	s := rule.Stored{Name: name}
	var md rule.Metadata

	switch spec.Style {
	case editor.StyleCursorFrontmatter:
		res := frontmatter.Parse(content)
		s.Description, _ = res.Frontmatter.String("description")
		if v, ok := res.Frontmatter.Bool("alwaysApply"); ok {
			md.AlwaysApply = rule.Bool(v)
		}
		md.Globs = rule.Globs(res.Frontmatter.Strings("globs"))
		s.Content = res.Content
	case editor.StyleVSCodeFrontmatter:
		res := frontmatter.Parse(content)
		s.Description, _ = res.Frontmatter.String("description")
		if globs := res.Frontmatter.Strings("applyTo"); !universal(globs) {
			md.Globs = rule.Globs(globs)
		}
		s.Content = res.Content
	default:
		md, s.Content = rule.ParseMetadataLines(strings.TrimSpace(content))
	}

	s.Content = strings.TrimSpace(s.Content)
	if !md.IsZero() {
		s.Metadata = &md
	}
	return s
}

// ExtractShared returns every tagged block in a shared file. Wrapped editors
// only read inside the integration wrapper when one is present.
func ExtractShared(spec editor.Spec, content string) []rule.Stored {
	content = normalizeNewlines(content)
	if spec.Wrapped {
		if inner, ok := merge.WrapperRegion(content); ok {
			content = inner
		}
	}

	blocks := merge.Scan(content)
	rules := make([]rule.Stored, 0, len(blocks))
	for _, b := range blocks {
		md, body := rule.ParseMetadataLines(strings.TrimSpace(b.Body))
		s := rule.Stored{Name: b.Name, Content: strings.TrimSpace(body)}
		if !md.IsZero() {
			s.Metadata = &md
		}
		rules = append(rules, s)
	}
	return rules
}

func universal(globs []string) bool {
	return len(globs) == 0 || (len(globs) == 1 && globs[0] == rule.UniversalApplyTo)
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// noRulesError reports an extraction that found nothing to convert.
func noRulesError(kind editor.Kind, path string) error {
	return &oerrors.DetailError{
		Type:     "no rules found",
		Message:  fmt.Sprintf("no %s rules found in source", kind),
		Location: path,
		Cause:    oerrors.ErrFormat,
	}
}
