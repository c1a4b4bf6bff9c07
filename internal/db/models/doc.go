// Package models contains the gorm model definitions of the RBAC schema.
package models
