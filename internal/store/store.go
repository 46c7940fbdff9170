// Package store persists rule definitions as flat files under the user's
// vibe-rules home.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	oerrors "github.com/viberules/cli/internal/errors"
	"github.com/viberules/cli/internal/fsutil"
	"github.com/viberules/cli/internal/rule"
)

const (
	jsonExt   = ".json"
	legacyExt = ".txt"
)

// Common is the editor-independent store. Each rule is one
// <Dir>/<name>.json file; <name>.txt files written by older releases are
// still read.
type Common struct {
	Dir string
}

// NewCommon returns the common store rooted at <home>/rules.
func NewCommon(home string) *Common {
	return &Common{Dir: filepath.Join(home, "rules")}
}

// Path returns the JSON file for name.
func (c *Common) Path(name string) string {
	return filepath.Join(c.Dir, name+jsonExt)
}

// Save validates s and writes it, replacing any rule with the same name.
func (c *Common) Save(s rule.Stored) (string, error) {
	if err := rule.Validate(s); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding rule %q: %w", s.Name, err)
	}
	data = append(data, '\n')

	path := c.Path(s.Name)
	if err := os.MkdirAll(c.Dir, fsutil.DirPerm); err != nil {
		return "", oerrors.NewIOError("creating rules directory", c.Dir, err)
	}
	if err := fsutil.AtomicWrite(path, data, fsutil.FilePerm); err != nil {
		return "", oerrors.NewIOError("saving rule", path, err)
	}
	return path, nil
}

// Load reads the rule called name, trying the JSON form first and the legacy
// plain-text form second. A missing rule returns an error wrapping
// ErrNotFound.
func (c *Common) Load(name string) (*rule.Stored, error) {
	if !rule.ValidName(name) {
		return nil, notFound(name, c.Dir)
	}

	path := c.Path(name)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var s rule.Stored
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, oerrors.NewValidationError(
				fmt.Sprintf("rule file is not valid JSON: %v", err), path, "", "Re-save the rule with 'vibe-rules save'")
		}
		if s.Name == "" {
			s.Name = name
		}
		return &s, nil
	case !errors.Is(err, fs.ErrNotExist):
		return nil, oerrors.NewIOError("reading rule", path, err)
	}

	legacy := filepath.Join(c.Dir, name+legacyExt)
	data, err = os.ReadFile(legacy)
	switch {
	case err == nil:
		return &rule.Stored{Name: name, Content: string(data)}, nil
	case errors.Is(err, fs.ErrNotExist):
		return nil, notFound(name, c.Dir)
	default:
		return nil, oerrors.NewIOError("reading rule", legacy, err)
	}
}

// List returns the sorted union of JSON and legacy rule names. A missing
// directory lists nothing.
func (c *Common) List() ([]string, error) {
	return listNames(c.Dir, jsonExt, legacyExt)
}

// Internal is the per-editor raw text cache: <Root>/<kind>/<name>.txt holds
// the rule body exactly as it was loaded, before formatting.
type Internal struct {
	Root string
}

func (s *Internal) path(kind, name string) string {
	return filepath.Join(s.Root, kind, name+legacyExt)
}

// Save writes the raw content for a rule under kind.
func (s *Internal) Save(kind string, r rule.Rule) (string, error) {
	if !rule.ValidName(r.Name) {
		return "", oerrors.NewValidationError(fmt.Sprintf("invalid rule name %q", r.Name), "", "name", "")
	}
	path := s.path(kind, r.Name)
	if err := fsutil.EnsureParent(path); err != nil {
		return "", oerrors.NewIOError("creating cache directory", filepath.Dir(path), err)
	}
	if err := fsutil.AtomicWrite(path, []byte(r.Content), fsutil.FilePerm); err != nil {
		return "", oerrors.NewIOError("caching rule", path, err)
	}
	return path, nil
}

// Load reads the cached content for name under kind.
func (s *Internal) Load(kind, name string) (*rule.Rule, error) {
	if !rule.ValidName(name) {
		return nil, notFound(name, filepath.Join(s.Root, kind))
	}
	path := s.path(kind, name)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, notFound(name, filepath.Join(s.Root, kind))
	}
	if err != nil {
		return nil, oerrors.NewIOError("reading cached rule", path, err)
	}
	return &rule.Rule{Name: name, Content: string(data)}, nil
}

// List returns the cached rule names for kind.
func (s *Internal) List(kind string) ([]string, error) {
	return listNames(filepath.Join(s.Root, kind), legacyExt)
}

func listNames(dir string, exts ...string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, oerrors.NewIOError("listing rules", dir, err)
	}

	seen := make(map[string]bool)
	names := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		for _, ext := range exts {
			if !strings.HasSuffix(e.Name(), ext) {
				continue
			}
			name := strings.TrimSuffix(e.Name(), ext)
			if name != "" && !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
			break
		}
	}
	sort.Strings(names)
	return names, nil
}

func notFound(name, dir string) error {
	return oerrors.NewNotFoundError(fmt.Sprintf("rule %q not found", name), dir,
		"Run 'vibe-rules list' to see saved rules")
}
