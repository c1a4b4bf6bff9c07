package store

import (
	"context"
	"fmt"

	"github.com/rbac-admin/rbac-admin/internal/db/models"
)

// DirectPermissionNames returns the names of the permissions granted directly to the user.
func (s *Store) DirectPermissionNames(ctx context.Context, userID uint64) ([]string, error) {
	var names []string

	err := s.db.WithContext(ctx).
		Model(&models.Permission{}).
		Distinct("permissions.name").
		Joins("JOIN user_permissions ON user_permissions.permission_id = permissions.id").
		Where("user_permissions.user_id = ?", userID).
		Pluck("permissions.name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("load direct permissions: %w", err)
	}

	return names, nil
}

// RolePermissionNames returns the names of the permissions the user holds through its roles.
func (s *Store) RolePermissionNames(ctx context.Context, userID uint64) ([]string, error) {
	var names []string

	err := s.db.WithContext(ctx).
		Model(&models.Permission{}).
		Distinct("permissions.name").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Joins("JOIN user_roles ON user_roles.role_id = role_permissions.role_id").
		Where("user_roles.user_id = ?", userID).
		Pluck("permissions.name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("load role permissions: %w", err)
	}

	return names, nil
}
