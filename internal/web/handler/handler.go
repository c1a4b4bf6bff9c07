// Package handler holds what the route handlers share: their dependencies and the request helpers.
package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/rbac-admin/rbac-admin/internal/admin"
	"github.com/rbac-admin/rbac-admin/internal/auth"
	"github.com/rbac-admin/rbac-admin/internal/config"
	"github.com/rbac-admin/rbac-admin/internal/db/store"
	"github.com/rbac-admin/rbac-admin/internal/validation"
	"github.com/rbac-admin/rbac-admin/internal/web/session"
)

const (
	// RootPath is the root path of the route tree.
	RootPath = "/"

	// IDParam is the route parameter of the entity id.
	IDParam = "id"

	// ErrNilDepsFatalLogMsg is used if app or deps is nil.
	ErrNilDepsFatalLogMsg = "app or deps is nil"
)

// Deps are the collaborators every handler is initialized with.
type Deps struct {
	Config    *config.Config
	Store     *store.Store
	Gate      *auth.Gate
	Resolver  *auth.Resolver
	Validator *validation.Validator
	Sessions  *session.Manager
	Local     *auth.LocalProvider
}

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, deps *Deps) error
}

// ErrMalformedBody is returned when the request body can not be decoded.
var ErrMalformedBody = fiber.NewError(fiber.StatusBadRequest, "malformed request body")

// Bind decodes the request body into out.
func Bind(c fiber.Ctx, out any) error {
	if err := c.Bind().Body(out); err != nil {
		return ErrMalformedBody
	}

	return nil
}

// BindAuthorized decodes the request body into out like Bind. When the body can not be decoded
// the caller is checked for permission first, so a denied caller never learns about its body.
func BindAuthorized(c fiber.Ctx, gate *auth.Gate, permission string, out any) error {
	if err := c.Bind().Body(out); err != nil {
		if aerr := gate.Authorize(c.Context(), auth.PrincipalFrom(c), permission); aerr != nil {
			return aerr
		}

		return ErrMalformedBody
	}

	return nil
}

// ParamID parses the :id route parameter. Ids that can not exist are reported as not found.
func ParamID(c fiber.Ctx) (uint64, error) {
	id, err := strconv.ParseUint(c.Params(IDParam), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.ErrNotFound
	}

	return id, nil
}

// ListQuery reads the search and page query parameters. A missing or broken page is the first page.
func ListQuery(c fiber.Ctx) store.ListQuery {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		page = 1
	}

	return admin.Query(c.Query("search"), page)
}
