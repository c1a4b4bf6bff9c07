// Package apperr defines the typed errors shared by the store, the access gate and the admin services.
//
// The web layer maps each kind to an HTTP status:
//   - *ValidationError    -> 422
//   - *AuthorizationError -> 403
//   - *NotFoundError      -> 404
//   - ErrUnauthenticated  -> 401
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Reasons attached to a FieldError.
const (
	ReasonRequired        = "required"
	ReasonMin             = "min"
	ReasonMax             = "max"
	ReasonEmail           = "email"
	ReasonConfirmed       = "confirmed"
	ReasonUnique          = "unique"
	ReasonExists          = "exists"
	ReasonCurrentPassword = "current_password"
	ReasonInvalid         = "invalid"
)

// ErrUnauthenticated is returned when a request carries no valid session.
var ErrUnauthenticated = errors.New("unauthenticated")

// FieldError is a single reason why a field was rejected.
type FieldError struct {
	Reason  string `json:"reason"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

// ValidationError collects field level reasons. It is always recoverable: the caller
// re-submits the form with the reasons attached.
type ValidationError struct {
	Fields map[string][]FieldError `json:"fields"`
}

// NewValidation returns an empty ValidationError.
func NewValidation() *ValidationError {
	return &ValidationError{Fields: make(map[string][]FieldError)}
}

// Invalid is a shortcut for a ValidationError with a single reason.
func Invalid(field, reason, message string) *ValidationError {
	return NewValidation().Add(field, FieldError{Reason: reason, Message: message})
}

// Unique reports a uniqueness collision on field.
func Unique(field string) *ValidationError {
	return Invalid(field, ReasonUnique, fmt.Sprintf("The %s has already been taken.", field))
}

// Add appends a reason for field and returns the receiver for chaining.
func (e *ValidationError) Add(field string, fe FieldError) *ValidationError {
	if e.Fields == nil {
		e.Fields = make(map[string][]FieldError)
	}

	e.Fields[field] = append(e.Fields[field], fe)

	return e
}

// Merge copies all reasons of other into e.
func (e *ValidationError) Merge(other *ValidationError) *ValidationError {
	if other == nil {
		return e
	}

	for field, reasons := range other.Fields {
		for _, r := range reasons {
			e.Add(field, r)
		}
	}

	return e
}

// Empty reports whether no reason was recorded.
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

// Has reports whether field was rejected for reason.
func (e *ValidationError) Has(field, reason string) bool {
	if e == nil {
		return false
	}

	for _, r := range e.Fields[field] {
		if r.Reason == reason {
			return true
		}
	}

	return false
}

// OrNil returns nil when no reason was recorded, so callers can write `return v.OrNil()`.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}

	return e
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}

	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		reasons := make([]string, 0, len(e.Fields[f]))
		for _, r := range e.Fields[f] {
			reasons = append(reasons, r.Reason)
		}

		parts = append(parts, f+": "+strings.Join(reasons, ","))
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

// AuthorizationError is returned by the access gate when the effective permission set of the
// current user lacks Permission.
type AuthorizationError struct {
	Permission string
	UserID     uint64
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("user %d lacks permission %q", e.UserID, e.Permission)
}

// NotFoundError is returned when a referenced id does not exist.
type NotFoundError struct {
	Entity string
	ID     uint64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// NotFound builds a NotFoundError.
func NotFound(entity string, id uint64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// IsValidation reports whether err wraps a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsAuthorization reports whether err wraps an *AuthorizationError.
func IsAuthorization(err error) bool {
	var a *AuthorizationError
	return errors.As(err, &a)
}

// IsNotFound reports whether err wraps a *NotFoundError.
func IsNotFound(err error) bool {
	var n *NotFoundError
	return errors.As(err, &n)
}
