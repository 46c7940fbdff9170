package output

import (
	"strings"

	udiff "github.com/aymanbagabas/go-udiff"
	"github.com/charmbracelet/lipgloss"
)

var (
	diffAdd    = lipgloss.NewStyle().Foreground(colorGreen)
	diffDelete = lipgloss.NewStyle().Foreground(colorRed)
	diffHunk   = lipgloss.NewStyle().Foreground(ColorCyan)
)

// Diff returns a unified diff between before and after for path.
// Returns an empty string when the contents are identical.
func Diff(path, before, after string) string {
	if before == after {
		return ""
	}
	return udiff.Unified("a/"+path, "b/"+path, before, after)
}

// ColorizeDiff styles a unified diff line by line.
func ColorizeDiff(diff string) string {
	if diff == "" {
		return ""
	}

	lines := strings.Split(strings.TrimSuffix(diff, "\n"), "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines[i] = StyleSummary.Render(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = diffHunk.Render(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = diffAdd.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = diffDelete.Render(line)
		}
	}
	return strings.Join(lines, "\n") + "\n"
}
