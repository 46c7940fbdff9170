package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableRow(t *testing.T) {
	tbl := NewTable("NAME", "DESCRIPTION", "GLOBS")
	tbl.Row("go-style", "  Format\n with gofmt ")
	tbl.Row("empty", "", "")

	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, []string{"go-style", "Format with gofmt", "-"}, tbl.rows[0])
	assert.Equal(t, []string{"empty", "-", "-"}, tbl.rows[1])
}

func TestTableMaxCellWidth(t *testing.T) {
	tbl := NewTable("NAME").MaxCellWidth(5)
	tbl.Row("abcdefgh")
	tbl.Row("abc")

	assert.Equal(t, "abcd…", tbl.rows[0][0])
	assert.Equal(t, "abc", tbl.rows[1][0])
}

func TestTableString(t *testing.T) {
	out := NewTable("KEY", "VALUE").Row("home", "~/.vibe-rules").String()

	assert.Contains(t, out, "KEY")
	assert.Contains(t, out, "~/.vibe-rules")
	assert.Equal(t, 1, strings.Count(out, "home"))
}
