package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// emptyCell stands in for a blank value so columns stay readable.
const emptyCell = "-"

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorCyan)
	tableBorderStyle = lipgloss.NewStyle().Foreground(ColorDimGray)
	tableCellStyle   = lipgloss.NewStyle().PaddingRight(1)
)

// Table collects rows for a bordered listing such as `list` or `config show`.
type Table struct {
	headers  []string
	rows     [][]string
	maxWidth int
}

// NewTable creates a table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// MaxCellWidth truncates cells longer than n runes. Zero disables truncation.
func (t *Table) MaxCellWidth(n int) *Table {
	t.maxWidth = n
	return t
}

// Row adds a row. Missing trailing cells and blank cells render as "-".
func (t *Table) Row(cells ...string) *Table {
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = t.cell(cells[i])
		} else {
			row[i] = emptyCell
		}
	}
	t.rows = append(t.rows, row)
	return t
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) cell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return emptyCell
	}
	if t.maxWidth > 0 {
		r := []rune(s)
		if len(r) > t.maxWidth {
			return string(r[:t.maxWidth-1]) + "…"
		}
	}
	return s
}

// String renders the table.
func (t *Table) String() string {
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		BorderRow(false).
		Headers(t.headers...).
		Rows(t.rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})
	return tbl.String()
}
