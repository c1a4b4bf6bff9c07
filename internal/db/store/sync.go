package store

import (
	"context"
	"fmt"
	"slices"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rbac-admin/rbac-admin/internal/apperr"
	"github.com/rbac-admin/rbac-admin/internal/db/models"
)

// Validation fields of association syncs.
const (
	FieldPermissions = "permissions"
	FieldRoles       = "roles"
)

// uniqueIDs returns ids sorted and without duplicates.
func uniqueIDs[T uint | uint64](ids []T) []T {
	out := slices.Clone(ids)
	slices.Sort(out)

	return slices.Compact(out)
}

// diff returns the ids of want missing in have (add) and of have missing in want (remove).
func diff[T uint | uint64](have, want []T) (add, remove []T) {
	for _, id := range want {
		if !slices.Contains(have, id) {
			add = append(add, id)
		}
	}

	for _, id := range have {
		if !slices.Contains(want, id) {
			remove = append(remove, id)
		}
	}

	return add, remove
}

// requireExisting fails with a validation error on field unless every id exists in model's table.
func (s *Store) requireExisting(ctx context.Context, model any, field string, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	var found []uint

	if err := s.db.WithContext(ctx).Model(model).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return fmt.Errorf("check %s: %w", field, err)
	}

	for _, id := range ids {
		if !slices.Contains(found, id) {
			return apperr.Invalid(field, apperr.ReasonExists, fmt.Sprintf("The selected %s are invalid.", field))
		}
	}

	return nil
}

// RequirePermissions fails with a validation error unless every permission id exists.
func (s *Store) RequirePermissions(ctx context.Context, ids []uint) error {
	return s.requireExisting(ctx, &models.Permission{}, FieldPermissions, uniqueIDs(ids))
}

// RequireRoles fails with a validation error unless every role id exists.
func (s *Store) RequireRoles(ctx context.Context, ids []uint) error {
	return s.requireExisting(ctx, &models.Role{}, FieldRoles, uniqueIDs(ids))
}

// syncJoin replaces the set of ids linked to owner in a join table. Rows already present are kept,
// including rows inserted by another writer while the sync runs.
func syncJoin(
	ctx context.Context,
	db *gorm.DB,
	table any,
	ownerColumn string,
	owner any,
	column string,
	want []uint,
	row func(id uint) any,
) error {
	db = db.WithContext(ctx)

	var have []uint
	if err := db.Model(table).Where(ownerColumn+" = ?", owner).Pluck(column, &have).Error; err != nil {
		return fmt.Errorf("load %s: %w", column, err)
	}

	add, remove := diff(have, uniqueIDs(want))

	if len(remove) > 0 {
		err := db.Where(ownerColumn+" = ? AND "+column+" IN ?", owner, remove).Delete(table).Error
		if err != nil {
			return fmt.Errorf("detach %s: %w", column, err)
		}
	}

	// a concurrent sync may have linked the same pair since the pluck
	for _, id := range add {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(row(id)).Error; err != nil {
			return fmt.Errorf("attach %s: %w", column, err)
		}
	}

	return nil
}

// SyncRolePermissions makes permissionIDs the exact permission set of the role.
// It does not open a transaction of its own; call it from Transaction.
func (s *Store) SyncRolePermissions(ctx context.Context, roleID uint, permissionIDs []uint) error {
	if err := s.RequirePermissions(ctx, permissionIDs); err != nil {
		return err
	}

	return syncJoin(ctx, s.db, &models.RolePermission{}, "role_id", roleID, "permission_id", permissionIDs,
		func(id uint) any { return &models.RolePermission{RoleID: roleID, PermissionID: id} })
}

// SyncUserRoles makes roleIDs the exact role set of the user.
func (s *Store) SyncUserRoles(ctx context.Context, userID uint64, roleIDs []uint) error {
	if err := s.RequireRoles(ctx, roleIDs); err != nil {
		return err
	}

	return syncJoin(ctx, s.db, &models.UserRole{}, "user_id", userID, "role_id", roleIDs,
		func(id uint) any { return &models.UserRole{UserID: userID, RoleID: id} })
}

// SyncUserPermissions makes permissionIDs the exact set of direct grants of the user.
func (s *Store) SyncUserPermissions(ctx context.Context, userID uint64, permissionIDs []uint) error {
	if err := s.RequirePermissions(ctx, permissionIDs); err != nil {
		return err
	}

	return syncJoin(ctx, s.db, &models.UserPermission{}, "user_id", userID, "permission_id", permissionIDs,
		func(id uint) any { return &models.UserPermission{UserID: userID, PermissionID: id} })
}
