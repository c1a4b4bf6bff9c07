package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rbac-admin/rbac-admin/internal/auth"
	"github.com/rbac-admin/rbac-admin/internal/db/dbtest"
	"github.com/rbac-admin/rbac-admin/internal/db/models"
)

func legacyHash(t *testing.T, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	// the previous system wrote PHP style $2y$ hashes
	return "$2y$" + strings.TrimPrefix(string(hash), "$2a$")
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := auth.HashPassword("secret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
	assert.False(t, auth.IsLegacyHash(hash))

	ok, err := auth.VerifyPassword("secret", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = auth.VerifyPassword("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = auth.VerifyPassword("secret", "not-a-hash")
	assert.Error(t, err)
}

func TestVerifyLegacyPassword(t *testing.T) {
	hash := legacyHash(t, "secret")
	assert.True(t, auth.IsLegacyHash(hash))

	ok, err := auth.VerifyPassword("secret", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = auth.VerifyPassword("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalProviderAuthenticate(t *testing.T) {
	s := dbtest.Store(t)

	hash, err := auth.HashPassword("secret")
	require.NoError(t, err)

	user := &models.User{Name: "Ada", Email: "ada@example.com", Password: hash}
	require.NoError(t, s.CreateUser(t.Context(), user, nil))

	p := auth.NewLocalProvider(s)

	got, err := p.Authenticate(t.Context(), "ada@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = p.Authenticate(t.Context(), "ada@example.com", "wrong")
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = p.Authenticate(t.Context(), "nobody@example.com", "secret")
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = p.Authenticate(t.Context(), "ADA@example.com", "secret")
	require.ErrorIs(t, err, auth.ErrInvalidCredentials, "emails match exactly")
}

func TestLocalProviderUpgradesLegacyHash(t *testing.T) {
	s := dbtest.Store(t)

	user := &models.User{Name: "Old", Email: "old@example.com", Password: legacyHash(t, "secret")}
	require.NoError(t, s.CreateUser(t.Context(), user, nil))

	p := auth.NewLocalProvider(s)

	_, err := p.Authenticate(t.Context(), "old@example.com", "secret")
	require.NoError(t, err)

	stored, err := s.UserByEmail(t.Context(), "old@example.com")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.Password, "$argon2id$"))
	assert.True(t, auth.CheckPassword(stored, "secret"))

	_, err = p.Authenticate(t.Context(), "old@example.com", "secret")
	require.NoError(t, err, "the upgraded hash still verifies")
}
