package web

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/rbac-admin/rbac-admin/internal/apperr"
	"github.com/rbac-admin/rbac-admin/internal/auth"
)

// Error codes of ErrorResponse.
const (
	CodeValidation      = "validation"
	CodeForbidden       = "forbidden"
	CodeNotFound        = "not_found"
	CodeUnauthenticated = "unauthenticated"
	CodeBadRequest      = "bad_request"
	CodeInternal        = "internal"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string                         `json:"error"`
	Message string                         `json:"message"`
	Fields  map[string][]apperr.FieldError `json:"fields,omitempty"`
}

// ErrorHandler maps the typed errors of the services to HTTP responses.
// Anything it does not know is logged and reported as 500 without details.
func ErrorHandler(c fiber.Ctx, err error) error {
	var (
		verr     *apperr.ValidationError
		aerr     *apperr.AuthorizationError
		nerr     *apperr.NotFoundError
		fiberErr *fiber.Error
	)

	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error:   CodeValidation,
			Message: "The given data was invalid.",
			Fields:  verr.Fields,
		})
	case errors.As(err, &aerr):
		return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
			Error:   CodeForbidden,
			Message: "This action is unauthorized.",
		})
	case errors.As(err, &nerr):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   CodeNotFound,
			Message: nerr.Error(),
		})
	case errors.Is(err, auth.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   CodeUnauthenticated,
			Message: "These credentials do not match our records.",
		})
	case errors.Is(err, apperr.ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   CodeUnauthenticated,
			Message: "Unauthenticated.",
		})
	case errors.As(err, &fiberErr):
		return c.Status(fiberErr.Code).JSON(ErrorResponse{
			Error:   fiberCode(fiberErr.Code),
			Message: fiberErr.Message,
		})
	}

	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   CodeInternal,
		Message: "Internal server error.",
	})
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return CodeNotFound
	case fiber.StatusUnauthorized:
		return CodeUnauthenticated
	case fiber.StatusForbidden:
		return CodeForbidden
	case fiber.StatusInternalServerError:
		return CodeInternal
	default:
		return CodeBadRequest
	}
}
