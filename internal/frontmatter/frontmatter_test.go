package frontmatter

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_FullHeader(t *testing.T) {
	res := Parse("---\ndescription: X\nalwaysApply: true\nglobs: [\"a/*\",\"b/*\"]\n---\nBODY")

	require.True(t, res.Found)
	assert.Equal(t, Map{
		"description": "X",
		"alwaysApply": true,
		"globs":       []string{"a/*", "b/*"},
	}, res.Frontmatter)
	assert.Equal(t, "BODY", res.Content)
}

func TestParse_PlainText(t *testing.T) {
	input := "# API Guidelines\n\nUse REST."
	res := Parse(input)

	assert.False(t, res.Found)
	assert.Empty(t, res.Frontmatter)
	assert.NotNil(t, res.Frontmatter)
	assert.Equal(t, input, res.Content)
}

func TestParse_Unterminated(t *testing.T) {
	input := "---\ndescription: never closed\nbody text"
	res := Parse(input)

	assert.False(t, res.Found)
	assert.Empty(t, res.Frontmatter)
	assert.Equal(t, input, res.Content)
}

func TestParse_ValueCoercion(t *testing.T) {
	input := strings.Join([]string{
		"---",
		"# a comment",
		"",
		"flag: false",
		"count: 42",
		"ratio: 1.5",
		"version: 1.2.3",
		"empty: ",
		"nothing: null",
		"single: 'quoted'",
		"double: \"quoted too\"",
		"mismatched: \"half'",
		"globs: src/**/*.ts",
		"list: ['a', \"b\" , c]",
		"braces: [\"src/{a,b}/*.ts\", lib/**]",
		"emptyList: []",
		"url: http://example.com:8080",
		"no colon here",
		": no key",
		"---",
		"",
		"",
		"Body",
	}, "\n")

	res := Parse(input)
	fm := res.Frontmatter

	assert.Equal(t, false, fm["flag"])
	assert.Equal(t, 42, fm["count"])
	assert.Equal(t, 1.5, fm["ratio"])
	assert.Equal(t, "1.2.3", fm["version"])
	assert.NotContains(t, fm, "empty")
	assert.NotContains(t, fm, "nothing")
	assert.Equal(t, "quoted", fm["single"])
	assert.Equal(t, "quoted too", fm["double"])
	assert.Equal(t, "\"half'", fm["mismatched"])
	assert.Equal(t, "src/**/*.ts", fm["globs"])
	assert.Equal(t, []string{"a", "b", "c"}, fm["list"])
	assert.Equal(t, []string{"src/{a,b}/*.ts", "lib/**"}, fm["braces"])
	assert.Equal(t, []string{}, fm["emptyList"])
	assert.Equal(t, "http://example.com:8080", fm["url"])
	assert.Len(t, fm, 12)
	assert.Equal(t, "Body", res.Content)
}

func TestParse_Malformed(t *testing.T) {
	input := "---\ninvalid: yaml: content[\nnot-closed: \"quote\nglobs: [a, b\n---\n\nContent should still be parsed"

	res := Parse(input)

	assert.Equal(t, "Content should still be parsed", res.Content)
	assert.Equal(t, "yaml: content[", res.Frontmatter["invalid"])
	assert.Equal(t, "\"quote", res.Frontmatter["not-closed"])
	assert.Equal(t, "[a, b", res.Frontmatter["globs"])
}

func TestParse_CRLF(t *testing.T) {
	res := Parse("---\r\ndescription: Windows\r\nalwaysApply: true\r\n---\r\nBody\r\n")

	require.True(t, res.Found)
	assert.Equal(t, "Windows", res.Frontmatter["description"])
	assert.Equal(t, true, res.Frontmatter["alwaysApply"])
	assert.Equal(t, "Body\r\n", res.Content)
}

func TestMapAccessors(t *testing.T) {
	fm := Map{
		"description": "d",
		"alwaysApply": true,
		"globs":       "a/*, b/* ,",
		"list":        []string{"x", "y"},
		"count":       3,
	}

	s, ok := fm.String("description")
	assert.True(t, ok)
	assert.Equal(t, "d", s)

	_, ok = fm.String("count")
	assert.False(t, ok)

	b, ok := fm.Bool("alwaysApply")
	assert.True(t, ok)
	assert.True(t, b)

	_, ok = fm.Bool("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"a/*", "b/*"}, fm.Strings("globs"))
	assert.Equal(t, []string{"x", "y"}, fm.Strings("list"))
	assert.Nil(t, fm.Strings("count"))
}

func TestParse_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("input without a leading delimiter is returned unchanged", prop.ForAll(
		func(s string) bool {
			input := "x" + s
			res := Parse(input)
			return res.Content == input && len(res.Frontmatter) == 0
		},
		gen.AnyString(),
	))

	properties.Property("parse never panics on arbitrary headers", prop.ForAll(
		func(header, body string) bool {
			res := Parse("---\n" + header + "\n---\n" + body)
			return res.Frontmatter != nil
		},
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.Property("string values survive", prop.ForAll(
		func(key, value string) bool {
			res := Parse("---\n" + key + ": " + value + "\n---\nbody")
			got, ok := res.Frontmatter.String(key)
			return ok && got == value && res.Content == "body"
		},
		gen.Identifier(),
		gen.AlphaString().SuchThat(func(s string) bool {
			return s != "" && s != "true" && s != "false" && s != "null"
		}),
	))

	properties.TestingRun(t)
}
