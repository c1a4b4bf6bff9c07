// Package user provides handlers for managing users (CRUD) in admin area.
package user

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/rbac-admin/rbac-admin/internal/admin/user"
	"github.com/rbac-admin/rbac-admin/internal/auth"
	"github.com/rbac-admin/rbac-admin/internal/web/handler"
)

// Service provides CRUD operations for users.
type Service struct {
	handler.Service
	users *user.Service
	gate  *auth.Gate
}

// Init registers routes.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || deps == nil {
		return errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	s.gate = deps.Gate
	s.users = user.New(deps.Store, deps.Gate, deps.Validator)

	group := app.Group(user.Path)
	group.Get("", s.List)
	group.Post("", s.Create)
	group.Get("/create", s.CreateForm)
	group.Get("/:"+handler.IDParam, s.Get)
	group.Put("/:"+handler.IDParam, s.Update)
	group.Put("/:"+handler.IDParam+"/permissions", s.SyncPermissions)
	group.Delete("/:"+handler.IDParam, s.Delete)

	return nil
}

// List shows users with simple pagination and search.
func (s *Service) List(c fiber.Ctx) error {
	res, err := s.users.List(c.Context(), auth.PrincipalFrom(c), handler.ListQuery(c))
	if err != nil {
		return err
	}

	return c.JSON(res)
}

// CreateForm returns the roles offered on the create screen.
func (s *Service) CreateForm(c fiber.Ctx) error {
	form, err := s.users.CreateForm(c.Context(), auth.PrincipalFrom(c))
	if err != nil {
		return err
	}

	return c.JSON(form)
}

// Get returns the user with its roles and direct grants for the edit screen.
func (s *Service) Get(c fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return err
	}

	form, err := s.users.Get(c.Context(), auth.PrincipalFrom(c), id)
	if err != nil {
		return err
	}

	return c.JSON(form)
}

// Create adds a user.
func (s *Service) Create(c fiber.Ctx) error {
	var in user.CreateInput
	if err := handler.BindAuthorized(c, s.gate, auth.PermUsersCreate, &in); err != nil {
		return err
	}

	res, err := s.users.Create(c.Context(), auth.PrincipalFrom(c), in)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(res)
}

// Update stores the profile and the roles of a user.
func (s *Service) Update(c fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return err
	}

	var in user.UpdateInput
	if err = handler.BindAuthorized(c, s.gate, auth.PermUsersEdit, &in); err != nil {
		return err
	}

	res, err := s.users.Update(c.Context(), auth.PrincipalFrom(c), id, in)
	if err != nil {
		return err
	}

	return c.JSON(res)
}

// SyncPermissions replaces the direct grants of a user.
func (s *Service) SyncPermissions(c fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return err
	}

	var in user.PermissionsInput
	if err = handler.BindAuthorized(c, s.gate, auth.PermUsersEdit, &in); err != nil {
		return err
	}

	res, err := s.users.SyncPermissions(c.Context(), auth.PrincipalFrom(c), id, in)
	if err != nil {
		return err
	}

	return c.JSON(res)
}

// Delete removes a user.
func (s *Service) Delete(c fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return err
	}

	res, err := s.users.Delete(c.Context(), auth.PrincipalFrom(c), id)
	if err != nil {
		return err
	}

	return c.JSON(res)
}
