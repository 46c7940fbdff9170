package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputFormatValid(t *testing.T) {
	tests := []struct {
		format OutputFormat
		valid  bool
	}{
		{FormatTable, true},
		{FormatJSON, true},
		{FormatPlain, true},
		{OutputFormat("yaml"), false},
		{OutputFormat(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.format.Valid())
		})
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		input string
		want  OutputFormat
		valid bool
	}{
		{"table", FormatTable, true},
		{"", FormatTable, true},
		{"JSON", FormatJSON, true},
		{"plain", FormatPlain, true},
		{"names", FormatPlain, true},
		{"yaml", OutputFormat("yaml"), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseOutputFormat(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.valid, ok)
		})
	}
}

func TestValidFormats(t *testing.T) {
	assert.Equal(t, []string{"table", "json", "plain"}, ValidFormats())
}

func TestTable(t *testing.T) {
	tbl := NewTable("NAME", "DESCRIPTION").Row("api", "API conventions").Row("style", "")
	assert.Equal(t, 2, tbl.Len())

	out := stripAnsi(tbl.String())
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "api")
	assert.Contains(t, out, "API conventions")
}
