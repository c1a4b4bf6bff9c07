// Package role provides the handlers of the role management screens.
package role

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/rbac-admin/rbac-admin/internal/admin/role"
	"github.com/rbac-admin/rbac-admin/internal/auth"
	"github.com/rbac-admin/rbac-admin/internal/web/handler"
)

// Service provides CRUD operations for roles.
type Service struct {
	handler.Service
	roles *role.Service
	gate  *auth.Gate
}

// Init registers routes. The create screen is registered before the :id routes.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || deps == nil {
		return errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	s.gate = deps.Gate
	s.roles = role.New(deps.Store, deps.Gate, deps.Validator)

	group := app.Group(role.Path)
	group.Get("", s.List)
	group.Post("", s.Create)
	group.Get("/create", s.CreateForm)
	group.Get("/:"+handler.IDParam, s.Get)
	group.Put("/:"+handler.IDParam, s.Update)
	group.Delete("/:"+handler.IDParam, s.Delete)

	return nil
}

// List shows roles with their permissions.
func (s *Service) List(c fiber.Ctx) error {
	res, err := s.roles.List(c.Context(), auth.PrincipalFrom(c), handler.ListQuery(c))
	if err != nil {
		return err
	}

	return c.JSON(res)
}

// CreateForm returns the grouped permissions offered on the create screen.
func (s *Service) CreateForm(c fiber.Ctx) error {
	form, err := s.roles.CreateForm(c.Context(), auth.PrincipalFrom(c))
	if err != nil {
		return err
	}

	return c.JSON(form)
}

// Get returns the role with its permission ids for the edit screen.
func (s *Service) Get(c fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return err
	}

	form, err := s.roles.Get(c.Context(), auth.PrincipalFrom(c), uint(id))
	if err != nil {
		return err
	}

	return c.JSON(form)
}

// Create adds a role with its permissions.
func (s *Service) Create(c fiber.Ctx) error {
	var in role.Input
	if err := handler.BindAuthorized(c, s.gate, auth.PermRolesCreate, &in); err != nil {
		return err
	}

	res, err := s.roles.Create(c.Context(), auth.PrincipalFrom(c), in)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(res)
}

// Update renames a role and replaces its permissions.
func (s *Service) Update(c fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return err
	}

	var in role.Input
	if err = handler.BindAuthorized(c, s.gate, auth.PermRolesEdit, &in); err != nil {
		return err
	}

	res, err := s.roles.Update(c.Context(), auth.PrincipalFrom(c), uint(id), in)
	if err != nil {
		return err
	}

	return c.JSON(res)
}

// Delete removes a role.
func (s *Service) Delete(c fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return err
	}

	res, err := s.roles.Delete(c.Context(), auth.PrincipalFrom(c), uint(id))
	if err != nil {
		return err
	}

	return c.JSON(res)
}
