package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/rbac-admin/rbac-admin/internal/apperr"
	"github.com/rbac-admin/rbac-admin/internal/db/models"
)

func preloadUserRoles(db *gorm.DB) *gorm.DB {
	return db.Preload("Roles", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name").Order("name")
	})
}

// ListUsers returns one page of users with their role names, most recent first.
func (s *Store) ListUsers(ctx context.Context, q ListQuery) (Page[models.User], error) {
	page, err := list[models.User](ctx, s.db, q, preloadUserRoles)
	if err != nil {
		return page, fmt.Errorf("list users: %w", err)
	}

	return page, nil
}

// GetUser loads a user by id with roles and direct permissions.
func (s *Store) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	var u models.User

	err := s.db.WithContext(ctx).
		Scopes(preloadUserRoles).
		Preload("Permissions", permissionSummary).
		First(&u, id).Error
	if err != nil {
		return nil, notFound(err, EntityUser, id)
	}

	return &u, nil
}

// UserByEmail loads a user by the exact email address.
func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User

	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, notFound(err, EntityUser, 0)
	}

	return &u, nil
}

// EmailTaken reports whether another user than exceptID already uses email.
func (s *Store) EmailTaken(ctx context.Context, email string, exceptID uint64) (bool, error) {
	var count int64

	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ? AND id <> ?", email, exceptID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}

	return count > 0, nil
}

// CountUsers returns the number of users.
func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var count int64

	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}

	return count, nil
}

// CreateUser inserts the user and assigns roleIDs in one transaction.
func (s *Store) CreateUser(ctx context.Context, u *models.User, roleIDs []uint) error {
	return s.Transaction(ctx, func(tx *Store) error {
		if err := tx.db.WithContext(ctx).Omit("Roles", "Permissions").Create(u).Error; err != nil {
			return normalize(err, "email")
		}

		return tx.SyncUserRoles(ctx, u.ID, roleIDs)
	})
}

// UserProfile holds the editable profile columns of a user.
type UserProfile struct {
	Name  string
	Email string
}

// UpdateProfile stores name and email. Changing the email clears the verification timestamp.
func (s *Store) UpdateProfile(ctx context.Context, id uint64, p UserProfile) (*models.User, error) {
	var u models.User

	db := s.db.WithContext(ctx)

	if err := db.First(&u, id).Error; err != nil {
		return nil, notFound(err, EntityUser, id)
	}

	changes := map[string]any{"name": p.Name, "email": p.Email}
	if u.Email != p.Email {
		changes["email_verified_at"] = nil
		u.EmailVerifiedAt = nil
	}

	if err := db.Model(&u).Updates(changes).Error; err != nil {
		return nil, normalize(err, "email")
	}

	u.Name, u.Email = p.Name, p.Email

	return &u, nil
}

// UpdateUser stores name and email and replaces the roles of the user in one transaction.
func (s *Store) UpdateUser(ctx context.Context, id uint64, p UserProfile, roleIDs []uint) (*models.User, error) {
	err := s.Transaction(ctx, func(tx *Store) error {
		if _, err := tx.UpdateProfile(ctx, id, p); err != nil {
			return err
		}

		return tx.SyncUserRoles(ctx, id, roleIDs)
	})
	if err != nil {
		return nil, err
	}

	return s.GetUser(ctx, id)
}

// SetPassword replaces the password hash of the user.
func (s *Store) SetPassword(ctx context.Context, id uint64, hash string) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("password", hash)
	if res.Error != nil {
		return fmt.Errorf("set password: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return apperr.NotFound(EntityUser, id)
	}

	return nil
}

// DeleteUser removes the user with its role assignments and direct grants.
func (s *Store) DeleteUser(ctx context.Context, id uint64) error {
	return s.Transaction(ctx, func(tx *Store) error {
		db := tx.db.WithContext(ctx)

		if err := db.Where("user_id = ?", id).Delete(&models.UserRole{}).Error; err != nil {
			return fmt.Errorf("delete user roles: %w", err)
		}

		if err := db.Where("user_id = ?", id).Delete(&models.UserPermission{}).Error; err != nil {
			return fmt.Errorf("delete user grants: %w", err)
		}

		res := db.Delete(&models.User{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete user: %w", res.Error)
		}

		if res.RowsAffected == 0 {
			return apperr.NotFound(EntityUser, id)
		}

		return nil
	})
}

// UserRoleIDs returns the ids of the roles assigned to the user.
func (s *Store) UserRoleIDs(ctx context.Context, userID uint64) ([]uint, error) {
	var ids []uint

	err := s.db.WithContext(ctx).
		Model(&models.UserRole{}).
		Where("user_id = ?", userID).
		Order("role_id").
		Pluck("role_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("load user roles: %w", err)
	}

	return ids, nil
}
