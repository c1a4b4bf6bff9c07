// Package permission provides the handlers of the permission management screens.
package permission

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/rbac-admin/rbac-admin/internal/admin/permission"
	"github.com/rbac-admin/rbac-admin/internal/auth"
	"github.com/rbac-admin/rbac-admin/internal/web/handler"
)

// Service provides CRUD operations for permissions.
type Service struct {
	handler.Service
	permissions *permission.Service
	gate        *auth.Gate
}

// Init registers routes.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || deps == nil {
		return errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	s.gate = deps.Gate
	s.permissions = permission.New(deps.Store, deps.Gate, deps.Validator)

	group := app.Group(permission.Path)
	group.Get("", s.List)
	group.Post("", s.Create)
	group.Get("/:"+handler.IDParam, s.Get)
	group.Put("/:"+handler.IDParam, s.Update)
	group.Delete("/:"+handler.IDParam, s.Delete)

	return nil
}

// List shows permissions with pagination and search.
func (s *Service) List(c fiber.Ctx) error {
	res, err := s.permissions.List(c.Context(), auth.PrincipalFrom(c), handler.ListQuery(c))
	if err != nil {
		return err
	}

	return c.JSON(res)
}

// Get returns a single permission for the edit screen.
func (s *Service) Get(c fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return err
	}

	perm, err := s.permissions.Get(c.Context(), auth.PrincipalFrom(c), uint(id))
	if err != nil {
		return err
	}

	return c.JSON(perm)
}

// Create adds a permission.
func (s *Service) Create(c fiber.Ctx) error {
	var in permission.Input
	if err := handler.BindAuthorized(c, s.gate, auth.PermPermissionsCreate, &in); err != nil {
		return err
	}

	res, err := s.permissions.Create(c.Context(), auth.PrincipalFrom(c), in)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(res)
}

// Update renames a permission.
func (s *Service) Update(c fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return err
	}

	var in permission.Input
	if err = handler.BindAuthorized(c, s.gate, auth.PermPermissionsEdit, &in); err != nil {
		return err
	}

	res, err := s.permissions.Update(c.Context(), auth.PrincipalFrom(c), uint(id), in)
	if err != nil {
		return err
	}

	return c.JSON(res)
}

// Delete removes a permission and its grants.
func (s *Service) Delete(c fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return err
	}

	res, err := s.permissions.Delete(c.Context(), auth.PrincipalFrom(c), uint(id))
	if err != nil {
		return err
	}

	return c.JSON(res)
}
