package rule

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	oerrors "github.com/viberules/cli/internal/errors"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator with the rule tags registered:
//
//	rulename  usable as a file name: no path separators, no leading dot, and
//	          at least one ASCII letter, digit or underscore so it has a slug
//	nonblank  at least one non-whitespace character
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("rulename", validateRuleName)
		_ = v.RegisterValidation("nonblank", validateNonBlank)
		validate = v
	})
	return validate
}

func validateRuleName(fl validator.FieldLevel) bool {
	return ValidName(fl.Field().String())
}

func validateNonBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// ValidName reports whether name can be used as a rule name.
func ValidName(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return false
	}
	if strings.HasPrefix(name, ".") {
		return false
	}
	return strings.ContainsFunc(name, isSlugRune)
}

func isSlugRune(r rune) bool {
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')
}

// Validate checks that s has a usable name and non-empty content.
func Validate(s Stored) error {
	if err := Validator().Struct(s); err != nil {
		return FormatValidationError(err, s.Name)
	}
	return nil
}

// FormatValidationError converts validator errors into a DetailError
// wrapping ErrValidation. Other errors are returned unchanged.
func FormatValidationError(err error, subject string) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var (
		messages []string
		fields   []string
	)
	for _, e := range verrs {
		fields = append(fields, e.Field())
		switch e.Tag() {
		case "required", "nonblank":
			messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
		case "rulename":
			messages = append(messages, fmt.Sprintf("%s %q needs a letter or digit and cannot contain path separators or start with a dot", e.Field(), e.Value()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of: %s", e.Field(), e.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s failed validation: %s", e.Field(), e.Tag()))
		}
	}

	detail := &oerrors.DetailError{
		Type:    "validation failed",
		Message: strings.Join(messages, "; "),
		Field:   strings.Join(fields, ", "),
		Cause:   oerrors.ErrValidation,
	}
	if subject != "" {
		detail.Context = map[string]string{"Rule": subject}
	}
	return detail
}
