// Package profile serves the account screen of the current user.
package profile

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/rbac-admin/rbac-admin/internal/admin/profile"
	"github.com/rbac-admin/rbac-admin/internal/auth"
	"github.com/rbac-admin/rbac-admin/internal/web/handler"
)

// Service is the profile handler service.
type Service struct {
	handler.Service
	deps    *handler.Deps
	profile *profile.Service
}

// Init registers the profile routes.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || deps == nil {
		return errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	s.deps = deps
	s.profile = profile.New(deps.Store, deps.Validator)

	app.Get(profile.Path, s.Get)
	app.Put(profile.Path, s.Update)
	app.Delete(profile.Path, s.Delete)

	return nil
}

// Get returns the current user.
func (s *Service) Get(c fiber.Ctx) error {
	view, err := s.profile.Get(c.Context(), auth.PrincipalFrom(c))
	if err != nil {
		return err
	}

	return c.JSON(view)
}

// Update stores name and email of the current user.
func (s *Service) Update(c fiber.Ctx) error {
	var in profile.UpdateInput
	if err := handler.Bind(c, &in); err != nil {
		return err
	}

	res, err := s.profile.Update(c.Context(), auth.PrincipalFrom(c), in)
	if err != nil {
		return err
	}

	return c.JSON(res)
}

// Delete removes the account of the current user and ends the session.
func (s *Service) Delete(c fiber.Ctx) error {
	var in profile.DeleteInput
	if err := handler.Bind(c, &in); err != nil {
		return err
	}

	res, err := s.profile.Delete(c.Context(), auth.PrincipalFrom(c), in)
	if err != nil {
		return err
	}

	if err = s.deps.Sessions.Destroy(c); err != nil {
		log.Error().Err(err).Msg("failed to delete session")
	}

	return c.JSON(res)
}
