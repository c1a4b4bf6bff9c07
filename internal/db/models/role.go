package models

import "time"

// SuperAdminRole is the reserved role name that is hidden from the user edit screen.
const SuperAdminRole = "super-admin"

// Role represents a named collection of permissions that can be assigned to users.
type Role struct {
	// ID is the unique identifier for the role.
	ID uint `gorm:"primaryKey" json:"id"`
	// Name is the unique name of the role (e.g., "super-admin", "auditor").
	Name string `gorm:"uniqueIndex;size:255;not null" json:"name"`
	// Permissions granted by the role, stored in role_permissions.
	Permissions []Permission `gorm:"many2many:role_permissions;" json:"permissions,omitempty"`
	// CreatedAt is the timestamp when the role was created (managed by GORM).
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is the timestamp when the role was last updated (managed by GORM).
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the database table name for the Role model.
func (Role) TableName() string {
	return "roles"
}
