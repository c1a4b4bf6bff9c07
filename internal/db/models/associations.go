package models

// RolePermission is a row of the role_permissions join table.
// The table itself is created by the many2many relation on Role; this type is used
// to write and delete single rows during a sync.
type RolePermission struct {
	RoleID       uint `gorm:"primaryKey;column:role_id"`
	PermissionID uint `gorm:"primaryKey;column:permission_id"`
}

// TableName specifies the database table name for the RolePermission model.
func (RolePermission) TableName() string {
	return "role_permissions"
}

// UserRole is a row of the user_roles join table.
type UserRole struct {
	UserID uint64 `gorm:"primaryKey;column:user_id"`
	RoleID uint   `gorm:"primaryKey;column:role_id"`
}

// TableName specifies the database table name for the UserRole model.
func (UserRole) TableName() string {
	return "user_roles"
}

// UserPermission is a row of the user_permissions join table (direct grants).
type UserPermission struct {
	UserID       uint64 `gorm:"primaryKey;column:user_id"`
	PermissionID uint   `gorm:"primaryKey;column:permission_id"`
}

// TableName specifies the database table name for the UserPermission model.
func (UserPermission) TableName() string {
	return "user_permissions"
}

// All returns the models to migrate, in dependency order.
func All() []any {
	return []any{
		&Permission{},
		&Role{},
		&User{},
	}
}
