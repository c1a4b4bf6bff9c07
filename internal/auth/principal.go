package auth

import (
	"context"
	"sync"
)

// Principal is the authenticated user of one request.
// Its effective permission set is loaded on first use and kept until the request ends.
type Principal struct {
	UserID uint64
	Name   string
	Email  string

	resolver *Resolver

	mu          sync.Mutex
	permissions PermissionSet
}

// NewPrincipal creates the principal of userID. Build a new one for every request.
func NewPrincipal(userID uint64, resolver *Resolver) *Principal {
	return &Principal{UserID: userID, resolver: resolver}
}

// Permissions returns the effective permission set, resolving it on the first call.
// Failed lookups are not cached.
func (p *Principal) Permissions(ctx context.Context) (PermissionSet, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.permissions != nil {
		return p.permissions, nil
	}

	if p.resolver == nil {
		return nil, ErrNoResolver
	}

	set, err := p.resolver.Effective(ctx, p.UserID)
	if err != nil {
		return nil, err
	}

	p.permissions = set

	return set, nil
}

// Can reports whether the principal holds permission.
func (p *Principal) Can(ctx context.Context, permission string) (bool, error) {
	set, err := p.Permissions(ctx)
	if err != nil {
		return false, err
	}

	return set.Has(permission), nil
}
