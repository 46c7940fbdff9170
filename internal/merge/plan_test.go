package merge

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viberules/cli/internal/rule"
)

func TestPlan_WrappedReplaceKeepsSingleBlock(t *testing.T) {
	current := "# Project notes\n\n" + WrapperStart + "\n\n<foo>\nold\n</foo>\n\n" + WrapperEnd + "\n"

	updated, action := Plan(current, rule.Rule{Name: "foo", Content: "new"}, rule.Metadata{}, true)

	assert.Equal(t, ActionReplaced, action)
	assert.Equal(t, 1, strings.Count(updated, "<foo>"))
	assert.Contains(t, updated, "<foo>\nnew\n</foo>")
	assert.NotContains(t, updated, "old")
	assert.Equal(t, 1, strings.Count(updated, WrapperStart))
	assert.Equal(t, 1, strings.Count(updated, WrapperEnd))
	assert.True(t, strings.HasPrefix(updated, "# Project notes\n\n"))
}

func TestPlan_EmptyWrappedCreatesWrapper(t *testing.T) {
	updated, action := Plan("", rule.Rule{Name: "bar", Content: "body"}, rule.Metadata{}, true)

	assert.Equal(t, ActionWrapped, action)
	assert.Equal(t, WrapperStart+"\n\n<bar>\nbody\n</bar>\n\n"+WrapperEnd+"\n", updated)
	assert.Equal(t, []string{"bar"}, blockNames(Scan(updated)))
}

func TestPlan_WrapsExistingContent(t *testing.T) {
	updated, action := Plan("  # My notes\n\nKeep me.\n\n", rule.Rule{Name: "bar", Content: "body"}, rule.Metadata{}, true)

	assert.Equal(t, ActionWrapped, action)
	assert.Equal(t, WrapperStart+"\n\n# My notes\n\nKeep me.\n\n<bar>\nbody\n</bar>\n\n"+WrapperEnd+"\n", updated)
}

func TestPlan_InsertsBeforeWrapperEnd(t *testing.T) {
	current := "user text\n\n" + WrapperStart + "\n\n<a>\nA\n</a>\n\n" + WrapperEnd + "\n\ntrailing user text\n"

	updated, action := Plan(current, rule.Rule{Name: "b", Content: "B"}, rule.Metadata{}, true)

	assert.Equal(t, ActionInserted, action)
	assert.Equal(t, "user text\n\n"+WrapperStart+"\n\n<a>\nA\n</a>\n\n<b>\nB\n</b>\n\n"+WrapperEnd+"\n\ntrailing user text\n", updated)
}

func TestPlan_InsertsBeforeLegacyWrapperEnd(t *testing.T) {
	current := "<vibe-tools Integration>\n<a>\nA\n</a>\n</vibe-tools Integration>\n"

	updated, action := Plan(current, rule.Rule{Name: "b", Content: "B"}, rule.Metadata{}, true)

	assert.Equal(t, ActionInserted, action)
	assert.Equal(t, "<vibe-tools Integration>\n<a>\nA\n</a>\n\n<b>\nB\n</b>\n\n</vibe-tools Integration>\n", updated)
}

func TestPlan_PrefersCommentWrapperEnd(t *testing.T) {
	current := "<vibe-tools Integration>\n</vibe-tools Integration>\n" + WrapperStart + "\n" + WrapperEnd + "\n"

	updated, _ := Plan(current, rule.Rule{Name: "b", Content: "B"}, rule.Metadata{}, true)

	assert.Less(t, strings.Index(updated, "<b>"), strings.Index(updated, WrapperEnd))
	assert.Greater(t, strings.Index(updated, "<b>"), strings.Index(updated, WrapperStart))
}

func TestPlan_UnwrappedAppend(t *testing.T) {
	tests := []struct {
		name    string
		current string
		want    string
	}{
		{name: "empty file", current: "", want: "<r>\nbody\n</r>\n"},
		{name: "whitespace only", current: "\n\n  \n", want: "<r>\nbody\n</r>\n"},
		{name: "existing content", current: "<a>\nA\n</a>\n", want: "<a>\nA\n</a>\n\n<r>\nbody\n</r>\n"},
		{name: "existing content without newline", current: "notes", want: "notes\n\n<r>\nbody\n</r>\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, action := Plan(tt.current, rule.Rule{Name: "r", Content: "body"}, rule.Metadata{}, false)
			assert.Equal(t, ActionAppended, action)
			assert.Equal(t, tt.want, updated)
		})
	}
}

func TestPlan_ReplacePreservesSurroundingBytes(t *testing.T) {
	current := "head  \n\n\n<r>\nold\n</r>\n\n\n  tail without newline"

	updated, action := Plan(current, rule.Rule{Name: "r", Content: "new"}, rule.Metadata{}, false)

	assert.Equal(t, ActionReplaced, action)
	assert.Equal(t, "head  \n\n\n<r>\nnew\n</r>\n\n\n  tail without newline\n", updated)
}

func TestPlan_IgnoresMidLineTag(t *testing.T) {
	current := "Prose mentioning <r>inline</r> usage.\n"

	updated, action := Plan(current, rule.Rule{Name: "r", Content: "body"}, rule.Metadata{}, false)

	assert.Equal(t, ActionAppended, action)
	assert.True(t, strings.HasPrefix(updated, current))
}

func TestPlan_IgnoresTagNestedInAnotherBlock(t *testing.T) {
	current := "<b>\nExample of a rule tag:\n<a>\nx\n</a>\n</b>\n"

	updated, action := Plan(current, rule.Rule{Name: "a", Content: "new"}, rule.Metadata{}, false)

	assert.Equal(t, ActionAppended, action)
	assert.Equal(t, current+"\n<a>\nnew\n</a>\n", updated)

	blocks := Scan(updated)
	require.Len(t, blocks, 2)
	assert.Equal(t, "b", blocks[0].Name)
	assert.Contains(t, blocks[0].Body, "<a>\nx\n</a>")
	assert.Equal(t, "a", blocks[1].Name)
	assert.Equal(t, "\nnew\n", blocks[1].Body)
}

func TestPlan_EscapesRegexMetacharacters(t *testing.T) {
	current := "<aXb>\nother\n</aXb>\n<a.b>\nold\n</a.b>\n"

	updated, action := Plan(current, rule.Rule{Name: "a.b", Content: "new"}, rule.Metadata{}, false)

	assert.Equal(t, ActionReplaced, action)
	assert.Equal(t, "<aXb>\nother\n</aXb>\n<a.b>\nnew\n</a.b>\n", updated)
}

func TestPlan_Unchanged(t *testing.T) {
	r := rule.Rule{Name: "r", Content: "body"}
	first, _ := Plan("", r, rule.Metadata{}, true)

	second, action := Plan(first, r, rule.Metadata{}, true)

	assert.Equal(t, ActionUnchanged, action)
	assert.Equal(t, first, second)
}

func TestPlan_Metadata(t *testing.T) {
	updated, _ := Plan("", rule.Rule{Name: "r", Content: "body"}, rule.Metadata{AlwaysApply: rule.Bool(true)}, false)
	assert.Equal(t, "<r>\nAlways Apply: true - This rule should ALWAYS be applied by the AI\n\nbody\n</r>\n", updated)
}

func TestPlan_Idempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("applying the same rule twice is a no-op the second time", prop.ForAll(
		func(current, name, body string, wrapped bool) bool {
			r := rule.Rule{Name: name, Content: body}
			first, _ := Plan(current, r, rule.Metadata{}, wrapped)
			second, action := Plan(first, r, rule.Metadata{}, wrapped)
			return first == second && action == ActionUnchanged
		},
		gen.AnyString(),
		gen.Identifier(),
		gen.AlphaString(),
		gen.Bool(),
	))

	properties.Property("result ends with exactly one newline", prop.ForAll(
		func(current, name string, wrapped bool) bool {
			updated, _ := Plan(current, rule.Rule{Name: name, Content: "x"}, rule.Metadata{}, wrapped)
			return strings.HasSuffix(updated, "\n") && !strings.HasSuffix(updated, "\n\n")
		},
		gen.AnyString(),
		gen.Identifier(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestRemovePrefixed(t *testing.T) {
	content := WrapperStart + "\n\n<keep>\nK\n</keep>\n\n<pkg_a>\nA\n</pkg_a>\n\n<pkg_b>\nB\n</pkg_b>\n\n" + WrapperEnd + "\n"

	updated, n := RemovePrefixed(content, "pkg_")

	assert.Equal(t, 2, n)
	assert.Equal(t, WrapperStart+"\n\n<keep>\nK\n</keep>\n\n"+WrapperEnd+"\n", updated)
}

func TestRemovePrefixed_NoMatch(t *testing.T) {
	content := "<keep>\nK\n</keep>"

	updated, n := RemovePrefixed(content, "pkg_")
	assert.Zero(t, n)
	assert.Equal(t, content, updated)

	updated, n = RemovePrefixed(content, "")
	assert.Zero(t, n)
	assert.Equal(t, content, updated)
}

func TestRemovePrefixed_Everything(t *testing.T) {
	updated, n := RemovePrefixed("<pkg_a>\nA\n</pkg_a>\n", "pkg_")
	assert.Equal(t, 1, n)
	assert.Empty(t, updated)
}

func TestRemoveThenReapplyIsStable(t *testing.T) {
	r := rule.Rule{Name: "pkg_a", Content: "A"}
	applied, _ := Plan("", r, rule.Metadata{}, true)

	cleared, _ := RemovePrefixed(applied, "pkg_")
	reapplied, action := Plan(cleared, r, rule.Metadata{}, true)

	assert.Equal(t, ActionInserted, action)
	assert.Equal(t, applied, reapplied)
}
