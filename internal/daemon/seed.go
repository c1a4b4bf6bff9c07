package daemon

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/rbac-admin/rbac-admin/internal/apperr"
	"github.com/rbac-admin/rbac-admin/internal/auth"
	"github.com/rbac-admin/rbac-admin/internal/config"
	"github.com/rbac-admin/rbac-admin/internal/db/models"
	"github.com/rbac-admin/rbac-admin/internal/db/store"
)

// Seed creates the built-in permissions and grants every existing permission to the super admin
// role. The admin user of cfg is created only while the users table is empty. Seed can run on
// every start.
func Seed(ctx context.Context, s *store.Store, cfg config.Seed) error {
	return s.Transaction(ctx, func(tx *store.Store) error {
		for _, name := range auth.All() {
			if _, err := tx.EnsurePermission(ctx, name); err != nil {
				return err
			}
		}

		all, err := tx.AllPermissions(ctx)
		if err != nil {
			return err
		}

		ids := make([]uint, 0, len(all))
		for _, p := range all {
			ids = append(ids, p.ID)
		}

		role, err := tx.RoleByName(ctx, models.SuperAdminRole)

		switch {
		case apperr.IsNotFound(err):
			role = &models.Role{Name: models.SuperAdminRole}
			if err = tx.CreateRole(ctx, role, ids); err != nil {
				return err
			}

			log.Info().Str("role", role.Name).Int("permissions", len(ids)).Msg("seeded super admin role")
		case err != nil:
			return err
		default:
			if err = tx.SyncRolePermissions(ctx, role.ID, ids); err != nil {
				return err
			}
		}

		return seedAdmin(ctx, tx, cfg, role.ID)
	})
}

func seedAdmin(ctx context.Context, s *store.Store, cfg config.Seed, roleID uint) error {
	count, err := s.CountUsers(ctx)
	if err != nil || count > 0 {
		return err
	}

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Warn().Msg("no users and no seed admin configured: nobody can log in")
		return nil
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	name := cfg.AdminName
	if name == "" {
		name = "Administrator"
	}

	u := &models.User{Name: name, Email: cfg.AdminEmail, Password: hash}
	if err = s.CreateUser(ctx, u, []uint{roleID}); err != nil {
		return err
	}

	log.Info().Str("email", u.Email).Msg("seeded admin user")

	return nil
}
