package config

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/viberules/cli/internal/editor"
	oerrors "github.com/viberules/cli/internal/errors"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func configValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("editor", func(fl validator.FieldLevel) bool {
			_, err := editor.ParseKind(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		validate = v
	})
	return validate
}

// Validate checks the loaded configuration. Problems are reported together
// in one error wrapping ErrValidation.
func Validate(cfg *Config, location string) error {
	err := configValidator().Struct(cfg)
	if err == nil {
		return nil
	}
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
		case "editor":
			messages = append(messages, fmt.Sprintf("%s %q is not a supported editor (valid: %s)",
				e.Field(), e.Value(), strings.Join(editor.Names(), ", ")))
		case "nonblank":
			messages = append(messages, fmt.Sprintf("%s must not be empty or whitespace only", e.Field()))
		default:
			messages = append(messages, fmt.Sprintf("%s failed validation: %s", e.Field(), e.Tag()))
		}
	}

	return &oerrors.DetailError{
		Type:     "invalid configuration",
		Message:  strings.Join(messages, "; "),
		Location: location,
		Field:    strings.Join(fields, ", "),
		Hint:     "Fix the config file or regenerate it with 'vibe-rules config init --force'",
		Cause:    oerrors.ErrValidation,
	}
}
