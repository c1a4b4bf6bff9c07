package auth

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/rbac-admin/rbac-admin/internal/apperr"
	fiberadapter "github.com/rbac-admin/rbac-admin/internal/logger/adapter/fiber"
	"github.com/rbac-admin/rbac-admin/internal/web/session"
)

// LocalsPrincipal is the fiber.Locals key of the request principal.
const LocalsPrincipal = "principal"

// RequireSession creates Fiber middleware that turns the session cookie into a Principal.
// Requests without a valid session fail with apperr.ErrUnauthenticated.
func RequireSession(sessions *session.Manager, resolver *Resolver) fiber.Handler {
	return func(c fiber.Ctx) error {
		data, err := sessions.Load(c)
		if errors.Is(err, session.ErrNoSession) {
			return apperr.ErrUnauthenticated
		}

		if err != nil {
			log.Error().Err(err).Msg("Failed to read session")
			return apperr.ErrUnauthenticated
		}

		principal := NewPrincipal(data.UserID, resolver)
		principal.Name = data.Name
		principal.Email = data.Email

		c.Locals(LocalsPrincipal, principal)
		c.Locals(fiberadapter.LocalsUserID, principal.UserID)

		return c.Next()
	}
}

// PrincipalFrom returns the principal stored by RequireSession, nil outside an authenticated route.
func PrincipalFrom(c fiber.Ctx) *Principal {
	p, _ := c.Locals(LocalsPrincipal).(*Principal)
	return p
}
