package output

import "strings"

// OutputFormat specifies how listings are printed.
type OutputFormat string

const (
	// FormatTable renders a lipgloss table.
	FormatTable OutputFormat = "table"

	// FormatJSON renders machine-readable JSON.
	FormatJSON OutputFormat = "json"

	// FormatPlain renders one value per line.
	FormatPlain OutputFormat = "plain"
)

// String returns the string representation of the output format.
func (f OutputFormat) String() string {
	return string(f)
}

// Valid checks if the output format is valid.
func (f OutputFormat) Valid() bool {
	switch f {
	case FormatTable, FormatJSON, FormatPlain:
		return true
	default:
		return false
	}
}

// ParseOutputFormat parses a string into an OutputFormat.
// The second return value is false when the input is not a known format.
func ParseOutputFormat(s string) (OutputFormat, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "table", "":
		return FormatTable, true
	case "json":
		return FormatJSON, true
	case "plain", "text", "names":
		return FormatPlain, true
	default:
		return OutputFormat(s), false
	}
}

// ValidFormats returns a slice of valid output format strings.
func ValidFormats() []string {
	return []string{"table", "json", "plain"}
}
