// Package dbtest opens migrated in-memory databases for tests.
package dbtest

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rbac-admin/rbac-admin/internal/config"
	"github.com/rbac-admin/rbac-admin/internal/db"
	"github.com/rbac-admin/rbac-admin/internal/db/models"
	"github.com/rbac-admin/rbac-admin/internal/db/store"
)

// New returns a migrated in-memory sqlite connection that is closed with the test.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := db.Open(&config.Config{DB: config.DB{GormEngine: config.EngineSQLite}})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))

	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return conn
}

// Store returns a Store on top of New.
func Store(t *testing.T) *store.Store {
	t.Helper()

	return store.New(New(t))
}

// Permissions creates a permission per name and returns them in the same order.
func Permissions(t *testing.T, s *store.Store, names ...string) []models.Permission {
	t.Helper()

	out := make([]models.Permission, 0, len(names))

	for _, name := range names {
		p := models.Permission{Name: name}
		require.NoError(t, s.CreatePermission(t.Context(), &p))

		out = append(out, p)
	}

	return out
}

// Role creates a role holding the named permissions, creating missing ones.
func Role(t *testing.T, s *store.Store, name string, permissions ...string) *models.Role {
	t.Helper()

	ids := make([]uint, 0, len(permissions))

	for _, pn := range permissions {
		var p models.Permission

		err := s.DB().Where(models.Permission{Name: pn}).FirstOrCreate(&p).Error
		require.NoError(t, err)

		ids = append(ids, p.ID)
	}

	r := &models.Role{Name: name}
	require.NoError(t, s.CreateRole(t.Context(), r, ids))

	return r
}

// User creates a user with the given roles. The password hash is a placeholder.
func User(t *testing.T, s *store.Store, email string, roles ...*models.Role) *models.User {
	t.Helper()

	ids := make([]uint, 0, len(roles))
	for _, r := range roles {
		ids = append(ids, r.ID)
	}

	u := &models.User{Name: email, Email: email, Password: "x"}
	require.NoError(t, s.CreateUser(t.Context(), u, ids))

	return u
}

// IDs returns the ids of permissions.
func IDs(permissions []models.Permission) []uint {
	ids := make([]uint, 0, len(permissions))
	for _, p := range permissions {
		ids = append(ids, p.ID)
	}

	return ids
}
