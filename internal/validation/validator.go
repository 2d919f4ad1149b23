// Package validation checks caller input against struct tag rules before it reaches the store.
package validation

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"timetracker/internal/errors"
)

// Validator wraps go-playground/validator and converts its results into
// ValidationError values carried by an errors.AppError.
type Validator struct {
	v *validator.Validate
}

// New creates a validator that reports fields by their json names and
// understands the extra "notblank" rule.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// Error is always nil for a non-empty tag and a non-nil func.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return &Validator{v: v}
}

// Validate checks s and returns an AppError of type Validation whose cause
// is a *ValidationError listing every failed field.
func (v *Validator) Validate(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.NewValidationError("invalid input", err)
	}

	ve := NewValidationError()
	for _, fe := range fieldErrs {
		ve.AddError(fe.Field(), fe.Tag(), fe.Field()+" "+friendlyMessage(fe), fe.Value())
	}
	return errors.NewValidationError(ve.GetUserFriendlyMessage(), ve)
}

// FieldErrors extracts the per-field failures from an error returned by Validate.
func FieldErrors(err error) []FieldError {
	var ve *ValidationError
	if stderrors.As(err, &ve) {
		return ve.Errors
	}
	return nil
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "notblank":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", e.Param())
		}
		return "must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", e.Param())
		}
		return "must not exceed " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "is invalid"
	}
}
