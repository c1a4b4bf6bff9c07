package models

import (
	"strings"
	"time"
)

// Permission represents a single named capability, conventionally "<resource> <action>"
// (e.g. "users index", "roles delete").
// Permissions are granted to roles and, directly, to users.
type Permission struct {
	// ID is the unique identifier for the permission.
	ID uint `gorm:"primaryKey" json:"id"`
	// Name is the unique permission name.
	Name string `gorm:"uniqueIndex;size:255;not null" json:"name"`
	// CreatedAt is the timestamp when the permission was created (managed by GORM).
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is the timestamp when the permission was last updated (managed by GORM).
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the database table name for the Permission model.
func (Permission) TableName() string {
	return "permissions"
}

// Group returns the resource prefix of the permission name, the text before the first space.
// It is used for presentation only and never for authorization.
func (p Permission) Group() string {
	prefix, _, _ := strings.Cut(p.Name, " ")
	return prefix
}
