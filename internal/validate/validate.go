package validate

// This package adds struct and field validation as a thin wrapper around the go-playground/validator package.
//
// e.g. internal/picker/picker.go
//   type Selection struct {
//       Minutes int `yaml:"minutes" validate:"min=0,max=60"`
//       Seconds int `yaml:"seconds" validate:"min=0,max=59"`
//   }
//
// Picker selections and config preferences share these range rules.

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

//nolint:gochecknoglobals // Shared validator singleton.
var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

// get returns a process-wide singleton of the validator.
func get() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New(validator.WithRequiredStructEnabled())
	})
	return validatorInst
}

// Struct validates a struct using the shared validator instance.
func Struct(v any) error {
	return get().Struct(v)
}

// Var validates a single variable against the provided tag constraints.
func Var(field any, tag string) error {
	return get().Var(field, tag)
}

// Describe flattens validator errors into one line, e.g.
// "Seconds must be <= 59 (got 75)". Other errors are returned as-is.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, describeField(fe))
	}
	return strings.Join(parts, "; ")
}

func describeField(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		name = "value"
	}
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s must be >= %s (got %v)", name, fe.Param(), fe.Value())
	case "max":
		return fmt.Sprintf("%s must be <= %s (got %v)", name, fe.Param(), fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s] (got %v)", name, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %q validation (got %v)", name, fe.Tag(), fe.Value())
	}
}
