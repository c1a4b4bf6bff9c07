package auth

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/rbac-admin/rbac-admin/internal/apperr"
	"github.com/rbac-admin/rbac-admin/internal/db/models"
)

// UserSource is the part of the store the local provider needs.
type UserSource interface {
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	SetPassword(ctx context.Context, id uint64, hash string) error
}

// LocalProvider handles local database authentication.
type LocalProvider struct {
	users UserSource
}

// NewLocalProvider creates a new local authentication provider.
func NewLocalProvider(users UserSource) *LocalProvider {
	return &LocalProvider{users: users}
}

// Authenticate returns the user owning email when password matches.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (p *LocalProvider) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := p.users.UserByEmail(ctx, email)
	if apperr.IsNotFound(err) {
		return nil, ErrInvalidCredentials
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	match, err := VerifyPassword(password, user.Password)
	if err != nil {
		// a malformed stored hash can never match
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("stored password hash is unreadable")
		return nil, ErrInvalidCredentials
	}

	if !match {
		return nil, ErrInvalidCredentials
	}

	if IsLegacyHash(user.Password) {
		p.upgradeHash(ctx, user, password)
	}

	return user, nil
}

// upgradeHash replaces a bcrypt hash with an Argon2id one. Errors are logged and ignored.
func (p *LocalProvider) upgradeHash(ctx context.Context, user *models.User, password string) {
	hash, err := HashPassword(password)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to rehash legacy password")
		return
	}

	if err = p.users.SetPassword(ctx, user.ID, hash); err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to store rehashed password")
		return
	}

	user.Password = hash

	log.Info().Uint64("user_id", user.ID).Msg("legacy password hash upgraded to argon2id")
}

// CheckPassword verifies the password of an already loaded user, for re-authentication of sensitive actions.
func CheckPassword(user *models.User, password string) bool {
	match, err := VerifyPassword(password, user.Password)
	return err == nil && match
}
