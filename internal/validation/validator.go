package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MessageProvider lets an input type phrase its own constraint messages.
// field is the dotted json path of the failing field (e.g. "name").
type MessageProvider interface {
	ValidationMessage(field, tag, param string) (string, bool)
}

// Validator runs struct-tag constraints and records failures on a Form.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator that reports fields by their json names.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		return name
	})
	return &Validator{validate: v}
}

// Validate checks input and adds one message per failed constraint to the
// matching node of form. The returned error is non-nil only when input
// cannot be validated at all (e.g. it is not a struct).
func (v *Validator) Validate(form *Form, input any) error {
	err := v.validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("cannot validate %T: %w", input, err)
	}

	provider, _ := input.(MessageProvider)
	for _, fe := range fieldErrs {
		path := namespacePath(fe.Namespace())
		form.Path(path...).AddError(message(provider, strings.Join(path, "."), fe))
	}
	return nil
}

// namespacePath turns "WidgetInput.tags[0]" into ["tags", "0"], dropping the
// root struct name.
func namespacePath(ns string) []string {
	parts := strings.Split(ns, ".")
	if len(parts) > 0 {
		parts = parts[1:]
	}

	path := make([]string, 0, len(parts))
	for _, p := range parts {
		for p != "" {
			open := strings.IndexByte(p, '[')
			if open < 0 {
				path = append(path, p)
				break
			}
			if open > 0 {
				path = append(path, p[:open])
			}
			end := strings.IndexByte(p[open:], ']')
			if end < 0 {
				path = append(path, p[open:])
				break
			}
			path = append(path, p[open+1:open+end])
			p = p[open+end+1:]
		}
	}
	return path
}

func message(provider MessageProvider, field string, fe validator.FieldError) string {
	if provider != nil {
		if msg, ok := provider.ValidationMessage(field, fe.Tag(), fe.Param()); ok {
			return msg
		}
	}
	return DefaultMessage(fe.Tag(), fe.Param())
}

// DefaultMessage returns the generic message for a failed constraint tag.
func DefaultMessage(tag, param string) string {
	switch tag {
	case "required":
		return "This value should not be blank."
	case "max":
		return fmt.Sprintf("This value is too long. It should have %s characters or less.", param)
	case "min":
		return fmt.Sprintf("This value is too short. It should have %s characters or more.", param)
	case "email":
		return "This value is not a valid email address."
	case "oneof":
		return "The value you selected is not a valid choice."
	default:
		return "This value is not valid."
	}
}
