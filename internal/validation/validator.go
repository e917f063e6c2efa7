// Package validation provides request validation utilities using the validator/v10 library.
package validation

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"

	domainerrors "github.com/benthecarman/macro-factor-go/internal/errors"
)

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator configured for our domain.
func New() *Validator {
	v := validator.New()

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		// Remove options like omitempty, -
		for i := range len(name) {
			if name[i] == ',' {
				return name[:i]
			}
		}
		return name
	})

	return &Validator{v: v}
}

// Validate validates a struct and returns a domain validation error.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

// formatError converts validator errors to domain errors.
func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fieldErrors := make(map[string]string)
	for _, e := range validationErrs {
		fieldErrors[e.Field()] = friendlyMessage(e)
	}

	return domainerrors.ValidationWithDetails("validation failed", fieldErrors)
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s", e.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", e.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "datetime":
		return fmt.Sprintf("must be a date in %s format", e.Param())
	default:
		return fmt.Sprintf("failed %s validation", e.Tag())
	}
}
