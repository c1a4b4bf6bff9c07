// Package main provides the entry point of rbac-admin.
// It serves a JSON admin API, built on the Fiber framework, for managing users, roles and
// permissions. Data is persisted with gorm on MySQL, PostgreSQL or SQLite, and every admin
// action is authorized against the effective permission set of the signed in user.
package main
