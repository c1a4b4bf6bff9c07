// Package login authenticates local users and starts their session.
package login

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/rbac-admin/rbac-admin/internal/admin"
	"github.com/rbac-admin/rbac-admin/internal/web/handler"
	"github.com/rbac-admin/rbac-admin/internal/web/session"
)

const (
	// Path is the path to the login endpoint.
	Path = handler.RootPath + "login"

	// RedirectPath is where a successful login leads to.
	RedirectPath = handler.RootPath + "profile"
)

// Input is the login form.
type Input struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Service is the login handler service.
type Service struct {
	handler.Service
	deps *handler.Deps
}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || deps == nil {
		return errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	s.deps = deps

	app.Post(Path, s.Post)

	return nil
}

// Post handles the login form submission.
func (s *Service) Post(c fiber.Ctx) error {
	var in Input
	if err := handler.Bind(c, &in); err != nil {
		return err
	}

	in.Email = strings.TrimSpace(in.Email)

	if err := s.deps.Validator.Struct(in); err != nil {
		return err
	}

	user, err := s.deps.Local.Authenticate(c.Context(), in.Email, in.Password)
	if err != nil {
		return err
	}

	data := &session.Data{UserID: user.ID, Name: user.Name, Email: user.Email}
	if err = s.deps.Sessions.Start(c, data); err != nil {
		return err
	}

	log.Info().Uint64("user_id", user.ID).Msg("user logged in")

	return c.JSON(admin.Result{Message: "Logged in.", Redirect: RedirectPath})
}
