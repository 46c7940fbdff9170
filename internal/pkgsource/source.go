// Package pkgsource reads rule exports shipped by installed npm packages.
//
// A package exposes its rules as a declarative file at the package root:
// llms.json or llms.yaml holding the export value, or llms.txt / llms.md
// holding a single rule as plain text.
package pkgsource

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"sigs.k8s.io/yaml"

	oerrors "github.com/viberules/cli/internal/errors"
)

// ExportFiles lists the export file names in lookup order.
var ExportFiles = []string{"llms.json", "llms.yaml", "llms.yml", "llms.txt", "llms.md"}

// Source resolves a package name to its raw export.
type Source interface {
	// Load returns the export as JSON and the file it was read from.
	Load(pkg string) (json.RawMessage, string, error)

	// Dependencies returns the project's declared package names.
	Dependencies() ([]string, error)
}

// NodeModules reads exports from <ProjectRoot>/node_modules.
type NodeModules struct {
	ProjectRoot string
}

var _ Source = (*NodeModules)(nil)

// PackageDir returns the install directory for pkg. Scoped names
// ("@scope/name") map to nested directories.
func (n *NodeModules) PackageDir(pkg string) string {
	return filepath.Join(n.ProjectRoot, "node_modules", filepath.FromSlash(pkg))
}

// Load returns the first export file found for pkg, converted to JSON.
// A package without an export file fails with ErrNotFound.
func (n *NodeModules) Load(pkg string) (json.RawMessage, string, error) {
	dir := n.PackageDir(pkg)
	for _, name := range ExportFiles {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, path, oerrors.NewIOError("reading package export", path, err)
		}

		raw, err := toJSON(name, data)
		if err != nil {
			return nil, path, oerrors.NewValidationError(
				fmt.Sprintf("package export is not valid: %v", err), path, "", "")
		}
		return raw, path, nil
	}

	return nil, dir, oerrors.NewNotFoundError(
		fmt.Sprintf("package %q has no rule export", pkg), dir,
		"Packages ship rules as llms.json, llms.yaml, llms.txt or llms.md")
}

func toJSON(name string, data []byte) (json.RawMessage, error) {
	switch filepath.Ext(name) {
	case ".json":
		if !json.Valid(data) {
			return nil, errors.New("invalid JSON")
		}
		return data, nil
	case ".yaml", ".yml":
		return yaml.YAMLToJSON(data)
	default:
		return json.Marshal(string(data))
	}
}

type packageJSON struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Dependencies returns the sorted union of dependencies and devDependencies
// declared in <ProjectRoot>/package.json.
func (n *NodeModules) Dependencies() ([]string, error) {
	path := filepath.Join(n.ProjectRoot, "package.json")
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, oerrors.NewNotFoundError("package.json not found", path,
			"Run install from the project root or name a package explicitly")
	}
	if err != nil {
		return nil, oerrors.NewIOError("reading package.json", path, err)
	}

	var pj packageJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return nil, oerrors.NewValidationError(
			fmt.Sprintf("package.json is not valid JSON: %v", err), path, "", "")
	}

	seen := make(map[string]bool)
	for name := range pj.Dependencies {
		seen[name] = true
	}
	for name := range pj.DevDependencies {
		seen[name] = true
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
