package pkgsource

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/viberules/cli/internal/editor"
	oerrors "github.com/viberules/cli/internal/errors"
	"github.com/viberules/cli/internal/rule"
)

// Item is the object form of one exported rule.
type Item struct {
	Name        string     `json:"name" validate:"required,nonblank"`
	Rule        string     `json:"rule" validate:"required,nonblank"`
	Description string     `json:"description,omitempty"`
	AlwaysApply *bool      `json:"alwaysApply,omitempty"`
	Globs       rule.Globs `json:"globs,omitempty"`
}

// Prefix returns the rule-name prefix owned by pkg.
func Prefix(pkg string) string {
	return pkg + "_"
}

// Normalize turns a package export into named rules. The export is either a
// single string, which becomes one rule, or a list whose items are strings or
// Item objects. Any invalid item rejects the whole export with ErrValidation.
//
// Every rule name starts with Prefix(pkg).
func Normalize(pkg string, export json.RawMessage) ([]rule.Stored, error) {
	export = bytes.TrimSpace(export)
	if len(export) == 0 || bytes.Equal(export, []byte("null")) {
		return nil, invalid(pkg, "export is empty")
	}
	description := "Rule from " + pkg

	var text string
	if err := json.Unmarshal(export, &text); err == nil {
		if strings.TrimSpace(text) == "" {
			return nil, invalid(pkg, "export string is empty")
		}
		name := editor.Slug(pkg)
		if !strings.HasPrefix(name, Prefix(pkg)) {
			name = Prefix(pkg) + name
		}
		return []rule.Stored{{Name: name, Content: text, Description: description}}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(export, &items); err != nil {
		return nil, invalid(pkg, "export must be a string or a list of rules")
	}

	rules := make([]rule.Stored, 0, len(items))
	for i, raw := range items {
		s, err := normalizeItem(pkg, i, raw, description)
		if err != nil {
			return nil, err
		}
		rules = append(rules, s)
	}
	return rules, nil
}

func normalizeItem(pkg string, index int, raw json.RawMessage, description string) (rule.Stored, error) {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if strings.TrimSpace(text) == "" {
			return rule.Stored{}, invalid(pkg, fmt.Sprintf("item %d is an empty string", index))
		}
		return rule.Stored{
			Name:        editor.Slug(fmt.Sprintf("%s_%d", pkg, index)),
			Content:     text,
			Description: description,
		}, nil
	}

	var item Item
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&item); err != nil {
		return rule.Stored{}, invalid(pkg, fmt.Sprintf("item %d: %v", index, err))
	}
	if err := rule.Validator().Struct(item); err != nil {
		detail := rule.FormatValidationError(err, "")
		return rule.Stored{}, invalid(pkg, fmt.Sprintf("item %d: %v", index, detailMessage(detail)))
	}

	name := item.Name
	if !strings.HasPrefix(name, Prefix(pkg)) {
		name = Prefix(pkg) + name
	}
	if item.Description != "" {
		description = item.Description
	}

	s := rule.Stored{Name: name, Content: item.Rule, Description: description}
	md := rule.Metadata{AlwaysApply: item.AlwaysApply, Globs: item.Globs}
	if !md.IsZero() {
		s.Metadata = &md
	}
	return s, nil
}

func detailMessage(err error) string {
	if d, ok := err.(*oerrors.DetailError); ok {
		return d.Message
	}
	return err.Error()
}

func invalid(pkg, reason string) error {
	return &oerrors.DetailError{
		Type:    "invalid package export",
		Message: reason,
		Context: map[string]string{"Package": pkg},
		Hint:    "Each item must be a string or an object with name and rule",
		Cause:   oerrors.ErrValidation,
	}
}
