package models

import "time"

// User represents an account of the admin application.
// Its effective permissions are the union of the direct grants and the permissions of all
// assigned roles.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Name is the display name of the user.
	Name string `gorm:"size:255;not null" json:"name"`
	// Email is the unique login identifier.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	// Password is the hashed password and is never serialized.
	Password string `gorm:"size:255;not null" json:"-"`
	// EmailVerifiedAt is cleared whenever Email changes.
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	// Roles assigned to the user, stored in user_roles.
	Roles []Role `gorm:"many2many:user_roles;" json:"roles,omitempty"`
	// Permissions granted directly to the user, stored in user_permissions.
	Permissions []Permission `gorm:"many2many:user_permissions;" json:"permissions,omitempty"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the database table name for the User model.
func (User) TableName() string {
	return "users"
}
