// Package validation checks request structs with go-playground/validator and reports the
// failures as an *apperr.ValidationError keyed by the json field name.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rbac-admin/rbac-admin/internal/apperr"
)

// Validator wraps a configured validator.Validate.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator that names fields by their json tag.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return &Validator{validate: v}
}

// Struct validates s. It returns nil or an *apperr.ValidationError.
func (v *Validator) Struct(s any) error {
	verr, err := v.Fields(s)
	if err != nil {
		return err
	}

	return verr.OrNil()
}

// Fields validates s and returns the collected reasons, so callers can add their own checks
// (uniqueness, existence) before reporting. The returned error is set only for unusable input.
func (v *Validator) Fields(s any) (*apperr.ValidationError, error) {
	out := apperr.NewValidation()

	err := v.validate.Struct(s)
	if err == nil {
		return out, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil, fmt.Errorf("validate: %w", err)
	}

	for _, fe := range fieldErrs {
		out.Add(fe.Field(), translate(fe))
	}

	return out, nil
}

// translate maps a validator tag to a reason and a readable message.
func translate(fe validator.FieldError) apperr.FieldError {
	field := strings.ReplaceAll(fe.Field(), "_", " ")
	isList := fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array

	switch fe.Tag() {
	case "required":
		return apperr.FieldError{Reason: apperr.ReasonRequired, Message: fmt.Sprintf("The %s field is required.", field)}
	case "min":
		if isList {
			// an empty selection counts as missing
			return apperr.FieldError{Reason: apperr.ReasonRequired, Message: fmt.Sprintf("The %s field is required.", field)}
		}

		return apperr.FieldError{
			Reason:  apperr.ReasonMin,
			Param:   fe.Param(),
			Message: fmt.Sprintf("The %s must be at least %s characters.", field, fe.Param()),
		}
	case "max":
		return apperr.FieldError{
			Reason:  apperr.ReasonMax,
			Param:   fe.Param(),
			Message: fmt.Sprintf("The %s may not be greater than %s characters.", field, fe.Param()),
		}
	case "email":
		return apperr.FieldError{Reason: apperr.ReasonEmail, Message: fmt.Sprintf("The %s must be a valid email address.", field)}
	case "eqfield":
		return apperr.FieldError{Reason: apperr.ReasonConfirmed, Message: fmt.Sprintf("The %s confirmation does not match.", field)}
	default:
		return apperr.FieldError{Reason: apperr.ReasonInvalid, Param: fe.Tag(), Message: fmt.Sprintf("The %s is invalid.", field)}
	}
}
