package auth

import (
	"context"
	"fmt"
)

// PermissionSource loads the permission names a user holds. It is implemented by *store.Store.
type PermissionSource interface {
	DirectPermissionNames(ctx context.Context, userID uint64) ([]string, error)
	RolePermissionNames(ctx context.Context, userID uint64) ([]string, error)
}

// Resolver computes effective permission sets. It keeps no state between calls.
type Resolver struct {
	source PermissionSource
}

// NewResolver creates a resolver reading from source.
func NewResolver(source PermissionSource) *Resolver {
	return &Resolver{source: source}
}

// Effective returns the union of the direct grants of the user and the permissions of all its roles.
// A user without roles and grants, or an unknown user, gets an empty set.
func (r *Resolver) Effective(ctx context.Context, userID uint64) (PermissionSet, error) {
	direct, err := r.source.DirectPermissionNames(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve permissions of user %d: %w", userID, err)
	}

	viaRoles, err := r.source.RolePermissionNames(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve permissions of user %d: %w", userID, err)
	}

	return NewPermissionSet(direct, viaRoles), nil
}
