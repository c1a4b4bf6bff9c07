// Package logout ends the session of the current user.
package logout

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/rbac-admin/rbac-admin/internal/admin"
	"github.com/rbac-admin/rbac-admin/internal/web/handler"
	"github.com/rbac-admin/rbac-admin/internal/web/handler/login"
)

// Path is the path to the logout endpoint.
const Path = handler.RootPath + "logout"

// Service is the logout handler service.
type Service struct {
	handler.Service
	deps *handler.Deps
}

// Init initializes the logout handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || deps == nil {
		return errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	s.deps = deps

	app.Post(Path, s.Logout)

	return nil
}

// Logout handles user logout by clearing the session.
func (s *Service) Logout(c fiber.Ctx) error {
	if err := s.deps.Sessions.Destroy(c); err != nil {
		log.Error().Err(err).Msg("failed to delete session")
	}

	return c.JSON(admin.Result{Message: "Logged out.", Redirect: login.Path})
}
