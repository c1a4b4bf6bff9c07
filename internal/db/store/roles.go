package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/rbac-admin/rbac-admin/internal/apperr"
	"github.com/rbac-admin/rbac-admin/internal/db/models"
)

// permissionSummary preloads only id and name of the permissions.
func permissionSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name").Order("name")
}

func preloadRolePermissions(db *gorm.DB) *gorm.DB {
	return db.Preload("Permissions", permissionSummary)
}

// ListRoles returns one page of roles with their permissions, most recent first.
func (s *Store) ListRoles(ctx context.Context, q ListQuery) (Page[models.Role], error) {
	page, err := list[models.Role](ctx, s.db, q, preloadRolePermissions)
	if err != nil {
		return page, fmt.Errorf("list roles: %w", err)
	}

	return page, nil
}

// AllRoles returns every role, most recent first, leaving out the roles named in exclude.
func (s *Store) AllRoles(ctx context.Context, exclude ...string) ([]models.Role, error) {
	var roles []models.Role

	query := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if len(exclude) > 0 {
		query = query.Where("name NOT IN ?", exclude)
	}

	if err := query.Find(&roles).Error; err != nil {
		return nil, fmt.Errorf("load roles: %w", err)
	}

	return roles, nil
}

// GetRole loads a role by id with its permissions.
func (s *Store) GetRole(ctx context.Context, id uint) (*models.Role, error) {
	var r models.Role

	if err := s.db.WithContext(ctx).Scopes(preloadRolePermissions).First(&r, id).Error; err != nil {
		return nil, notFound(err, EntityRole, uint64(id))
	}

	return &r, nil
}

// RoleByName loads a role by its unique name.
func (s *Store) RoleByName(ctx context.Context, name string) (*models.Role, error) {
	var r models.Role

	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&r).Error; err != nil {
		return nil, notFound(err, EntityRole, 0)
	}

	return &r, nil
}

// RoleNameTaken reports whether another role than exceptID already uses name.
func (s *Store) RoleNameTaken(ctx context.Context, name string, exceptID uint) (bool, error) {
	var count int64

	err := s.db.WithContext(ctx).
		Model(&models.Role{}).
		Where("name = ? AND id <> ?", name, exceptID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check role name: %w", err)
	}

	return count > 0, nil
}

// CreateRole inserts the role and grants it permissionIDs in one transaction.
func (s *Store) CreateRole(ctx context.Context, r *models.Role, permissionIDs []uint) error {
	return s.Transaction(ctx, func(tx *Store) error {
		if err := tx.db.WithContext(ctx).Omit("Permissions").Create(r).Error; err != nil {
			return normalize(err, "name")
		}

		return tx.SyncRolePermissions(ctx, r.ID, permissionIDs)
	})
}

// UpdateRole renames the role and replaces its permissions in one transaction.
func (s *Store) UpdateRole(ctx context.Context, id uint, name string, permissionIDs []uint) (*models.Role, error) {
	err := s.Transaction(ctx, func(tx *Store) error {
		r, err := tx.GetRole(ctx, id)
		if err != nil {
			return err
		}

		if err = tx.db.WithContext(ctx).Model(r).Omit("Permissions").Update("name", name).Error; err != nil {
			return normalize(err, "name")
		}

		return tx.SyncRolePermissions(ctx, id, permissionIDs)
	})
	if err != nil {
		return nil, err
	}

	return s.GetRole(ctx, id)
}

// DeleteRole removes the role, its permission grants and its user assignments.
func (s *Store) DeleteRole(ctx context.Context, id uint) error {
	return s.Transaction(ctx, func(tx *Store) error {
		db := tx.db.WithContext(ctx)

		if err := db.Where("role_id = ?", id).Delete(&models.UserRole{}).Error; err != nil {
			return fmt.Errorf("delete role assignments: %w", err)
		}

		if err := db.Where("role_id = ?", id).Delete(&models.RolePermission{}).Error; err != nil {
			return fmt.Errorf("delete role grants: %w", err)
		}

		res := db.Delete(&models.Role{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete role: %w", res.Error)
		}

		if res.RowsAffected == 0 {
			return apperr.NotFound(EntityRole, uint64(id))
		}

		return nil
	})
}

// RolePermissionIDs returns the ids of the permissions granted to the role.
func (s *Store) RolePermissionIDs(ctx context.Context, roleID uint) ([]uint, error) {
	var ids []uint

	err := s.db.WithContext(ctx).
		Model(&models.RolePermission{}).
		Where("role_id = ?", roleID).
		Order("permission_id").
		Pluck("permission_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("load role permissions: %w", err)
	}

	return ids, nil
}
