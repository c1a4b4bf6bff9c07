// Package admintest wires the admin services against an in-memory database for tests.
package admintest

import (
	"fmt"
	"testing"

	"github.com/rbac-admin/rbac-admin/internal/auth"
	"github.com/rbac-admin/rbac-admin/internal/db/dbtest"
	"github.com/rbac-admin/rbac-admin/internal/db/models"
	"github.com/rbac-admin/rbac-admin/internal/db/store"
	"github.com/rbac-admin/rbac-admin/internal/validation"
)

// Env bundles the collaborators of the admin services.
type Env struct {
	Store     *store.Store
	Gate      *auth.Gate
	Validator *validation.Validator
	Resolver  *auth.Resolver
}

// New creates an Env on a fresh database.
func New(t *testing.T) *Env {
	t.Helper()

	s := dbtest.Store(t)

	return &Env{
		Store:     s,
		Gate:      auth.NewGate(),
		Validator: validation.New(),
		Resolver:  auth.NewResolver(s),
	}
}

// Actor creates a user holding permissions through a dedicated role and returns its principal.
func (e *Env) Actor(t *testing.T, permissions ...string) *auth.Principal {
	t.Helper()

	var n int64
	e.Store.DB().Model(&models.User{}).Count(&n)

	role := dbtest.Role(t, e.Store, fmt.Sprintf("actor-%d", n), permissions...)
	u := dbtest.User(t, e.Store, fmt.Sprintf("actor%d@example.com", n), role)

	return e.Principal(u.ID)
}

// Principal builds a fresh principal of userID, the way every request does.
func (e *Env) Principal(userID uint64) *auth.Principal {
	return auth.NewPrincipal(userID, e.Resolver)
}
