// Package provider composes the formatter, path table and merge engine into
// one strategy per editor kind.
package provider

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	oerrors "github.com/viberules/cli/internal/errors"
	"github.com/viberules/cli/internal/editor"
	"github.com/viberules/cli/internal/frontmatter"
	"github.com/viberules/cli/internal/fsutil"
	"github.com/viberules/cli/internal/merge"
	"github.com/viberules/cli/internal/output"
	"github.com/viberules/cli/internal/rule"
)

// Entry is a rule together with the metadata it is rendered with.
type Entry struct {
	Rule rule.Rule
	Meta rule.Metadata
}

// Target locates where rules are written.
type Target struct {
	Roots editor.Roots

	// Global selects the home-level file for editors that have one.
	Global bool

	// Override is the --target flag: a directory for multi-file editors and a
	// file for single-file editors. Empty uses the editor's default location.
	Override string
}

// Options control Apply and Clear.
type Options struct {
	DryRun bool
	Logger *log.Logger

	// Staged threads dry-run output between Apply calls on shared files.
	// See merge.Options.Staged.
	Staged map[string]string
}

// Provider is the strategy for one editor kind.
type Provider struct {
	spec editor.Spec
}

// For returns the provider for kind.
func For(kind editor.Kind) (*Provider, error) {
	spec, ok := editor.Lookup(kind)
	if !ok {
		return nil, editor.UnknownKindError(string(kind))
	}
	return &Provider{spec: spec}, nil
}

// Kind returns the editor kind served by p.
func (p *Provider) Kind() editor.Kind {
	return p.spec.Kind
}

// Spec returns the capability row behind p.
func (p *Provider) Spec() editor.Spec {
	return p.spec
}

// Generate renders r the way the editor stores it. Multi-file editors get the
// whole file body; single-file editors get the tagged block.
func (p *Provider) Generate(r rule.Rule, md rule.Metadata) string {
	switch p.spec.Style {
	case editor.StyleCursorFrontmatter:
		return frontmatterHeader(rule.CursorFields(r, md), r.Content) + r.Content
	case editor.StyleVSCodeFrontmatter:
		return frontmatterHeader(rule.VSCodeFields(r, md), r.Content) + r.Content
	case editor.StyleMetadataLines:
		return rule.FormatWithMetadata(r, md)
	default:
		return rule.TaggedBlock(r, md)
	}
}

// frontmatterHeader renders fields. An empty header is still written when the
// body would otherwise be read back as one.
func frontmatterHeader(fields []rule.Field, body string) string {
	if header := rule.RenderFrontmatter(fields); header != "" {
		return header
	}
	if frontmatter.Parse(body).Found {
		return "---\n---\n"
	}
	return ""
}

// PathFor returns the file a rule named name is written to.
func (p *Provider) PathFor(t Target, name string) string {
	return editor.TargetFor(p.spec.Kind, name, t.Global, t.Override, t.Roots)
}

// DefaultPath returns the rule directory (multi-file) or shared file
// (single-file) for t.
func (p *Provider) DefaultPath(t Target) string {
	if t.Override != "" {
		return t.Override
	}
	return editor.DefaultTarget(p.spec.Kind, t.Global, t.Roots)
}

// Apply writes r to path. Single-file editors merge a tagged block through
// the merge engine; multi-file editors write the whole file, skipping the
// write when the content is already current.
func (p *Provider) Apply(path string, r rule.Rule, md rule.Metadata, opts Options) (merge.Result, error) {
	if !p.spec.MultiFile() {
		return merge.Apply(path, r, md, merge.Options{
			Wrapped: p.spec.Wrapped,
			DryRun:  opts.DryRun,
			Logger:  opts.Logger,
			Staged:  opts.Staged,
		})
	}
	return p.writeFile(path, r, md, opts)
}

func (p *Provider) writeFile(path string, r rule.Rule, md rule.Metadata, opts Options) (merge.Result, error) {
	logger := output.OrDiscard(opts.Logger)
	res := merge.Result{Path: path, After: fileContent(p.Generate(r, md))}

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
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return res, oerrors.NewIOError("reading target", path, err)
		}
		res.Before = string(data)
	}

	switch {
	case res.Created:
		res.Action = merge.ActionInserted
	case res.Before == res.After:
		res.Action = merge.ActionUnchanged
	default:
		res.Action = merge.ActionReplaced
	}
	logger.Debug("rendered rule file", "rule", r.Name, "path", path, "action", res.Action)

	if opts.DryRun || res.Action == merge.ActionUnchanged {
		return res, nil
	}
	if err := fsutil.EnsureParent(path); err != nil {
		return res, oerrors.NewIOError("preparing target directory", path, err)
	}
	if _, err := fsutil.WriteIfChanged(path, []byte(res.After)); err != nil {
		return res, oerrors.NewIOError("writing target", path, err)
	}
	return res, nil
}

// Clear removes every rule whose name starts with prefix from the location
// described by t. Multi-file editors delete matching files from the rule
// directory; single-file editors drop matching blocks from the shared file.
// A missing location clears nothing. It returns the number of rules removed.
func (p *Provider) Clear(t Target, prefix string, opts Options) (int, error) {
	logger := output.OrDiscard(opts.Logger)
	target := p.DefaultPath(t)

	if !p.spec.MultiFile() {
		n, err := merge.RemoveFromFile(target, prefix, opts.DryRun)
		if n > 0 {
			logger.Debug("cleared rule blocks", "path", target, "prefix", prefix, "count", n)
		}
		return n, err
	}

	entries, err := os.ReadDir(target)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, oerrors.NewIOError("listing rule directory", target, err)
	}

	filePrefix := filePrefix(prefix)
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), p.spec.Ext) {
			continue
		}
		if !strings.HasPrefix(e.Name(), filePrefix) {
			continue
		}
		path := filepath.Join(target, e.Name())
		if !opts.DryRun {
			if err := os.Remove(path); err != nil {
				return removed, oerrors.NewIOError("removing rule file", path, err)
			}
		}
		logger.Debug("removed rule file", "path", path)
		removed++
	}
	return removed, nil
}

// Unchanged reports whether applying every entry to t would leave every
// target byte-identical. A missing target counts as a change.
func (p *Provider) Unchanged(t Target, entries []Entry) bool {
	if len(entries) == 0 {
		return false
	}

	if p.spec.MultiFile() {
		for _, e := range entries {
			current, ok, err := fsutil.ReadIfExists(p.PathFor(t, e.Rule.Name))
			if err != nil || !ok {
				return false
			}
			if strings.TrimSpace(current) != strings.TrimSpace(p.Generate(e.Rule, e.Meta)) {
				return false
			}
		}
		return true
	}

	// Every entry lands in the same shared file, so replay them all.
	path := p.PathFor(t, entries[0].Rule.Name)
	current, ok, err := fsutil.ReadIfExists(path)
	if err != nil || !ok {
		return false
	}
	updated := current
	for _, e := range entries {
		updated, _ = merge.Plan(updated, e.Rule, e.Meta, p.spec.Wrapped)
	}
	return updated == current
}

// filePrefix maps a rule-name prefix to the prefix of the slugged file names
// it produces.
func filePrefix(prefix string) string {
	trimmed := strings.TrimSuffix(prefix, "_")
	slug := editor.Slug(trimmed)
	if trimmed == prefix {
		return slug
	}
	return slug + "_"
}

func fileContent(s string) string {
	return strings.TrimRight(s, "\n") + "\n"
}
