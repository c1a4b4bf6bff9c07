package store

import (
	"context"
	"fmt"

	"github.com/rbac-admin/rbac-admin/internal/apperr"
	"github.com/rbac-admin/rbac-admin/internal/db/models"
)

// ListPermissions returns one page of permissions, most recent first.
func (s *Store) ListPermissions(ctx context.Context, q ListQuery) (Page[models.Permission], error) {
	page, err := list[models.Permission](ctx, s.db, q)
	if err != nil {
		return page, fmt.Errorf("list permissions: %w", err)
	}

	return page, nil
}

// AllPermissions returns every permission ordered by name.
func (s *Store) AllPermissions(ctx context.Context) ([]models.Permission, error) {
	var permissions []models.Permission

	if err := s.db.WithContext(ctx).Order("name").Find(&permissions).Error; err != nil {
		return nil, fmt.Errorf("load permissions: %w", err)
	}

	return permissions, nil
}

// GetPermission loads a permission by id.
func (s *Store) GetPermission(ctx context.Context, id uint) (*models.Permission, error) {
	var p models.Permission

	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, notFound(err, EntityPermission, uint64(id))
	}

	return &p, nil
}

// PermissionNameTaken reports whether another permission than exceptID already uses name.
func (s *Store) PermissionNameTaken(ctx context.Context, name string, exceptID uint) (bool, error) {
	var count int64

	err := s.db.WithContext(ctx).
		Model(&models.Permission{}).
		Where("name = ? AND id <> ?", name, exceptID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check permission name: %w", err)
	}

	return count > 0, nil
}

// CreatePermission inserts p. A name collision is reported as a validation error on "name".
func (s *Store) CreatePermission(ctx context.Context, p *models.Permission) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return normalize(err, "name")
	}

	return nil
}

// EnsurePermission returns the permission called name, creating it when missing.
func (s *Store) EnsurePermission(ctx context.Context, name string) (*models.Permission, error) {
	p := models.Permission{Name: name}

	if err := s.db.WithContext(ctx).Where(models.Permission{Name: name}).FirstOrCreate(&p).Error; err != nil {
		return nil, normalize(err, "name")
	}

	return &p, nil
}

// RenamePermission sets the name of permission id.
func (s *Store) RenamePermission(ctx context.Context, id uint, name string) (*models.Permission, error) {
	p, err := s.GetPermission(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Name = name

	if err = s.db.WithContext(ctx).Model(p).Update("name", name).Error; err != nil {
		return nil, normalize(err, "name")
	}

	return p, nil
}

// DeletePermission removes the permission and every grant of it to roles and users.
func (s *Store) DeletePermission(ctx context.Context, id uint) error {
	return s.Transaction(ctx, func(tx *Store) error {
		db := tx.db.WithContext(ctx)

		if err := db.Where("permission_id = ?", id).Delete(&models.RolePermission{}).Error; err != nil {
			return fmt.Errorf("delete role grants: %w", err)
		}

		if err := db.Where("permission_id = ?", id).Delete(&models.UserPermission{}).Error; err != nil {
			return fmt.Errorf("delete user grants: %w", err)
		}

		res := db.Delete(&models.Permission{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete permission: %w", res.Error)
		}

		if res.RowsAffected == 0 {
			return apperr.NotFound(EntityPermission, uint64(id))
		}

		return nil
	})
}
