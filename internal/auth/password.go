package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"
)

// HashParams are the Argon2id parameters of new hashes.
var HashParams = argon2id.DefaultParams //nolint:gochecknoglobals

// bcrypt prefixes of hashes imported from the previous system.
var legacyPrefixes = []string{"$2y$", "$2a$", "$2b$"} //nolint:gochecknoglobals

// HashPassword returns the Argon2id hash of password.
func HashPassword(password string) (string, error) {
	hash, err := argon2id.CreateHash(password, HashParams)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return hash, nil
}

// IsLegacyHash reports whether hash is a bcrypt hash that should be replaced.
func IsLegacyHash(hash string) bool {
	for _, prefix := range legacyPrefixes {
		if strings.HasPrefix(hash, prefix) {
			return true
		}
	}

	return false
}

// VerifyPassword reports whether password matches hash. Argon2id and bcrypt hashes are accepted.
func VerifyPassword(password, hash string) (bool, error) {
	if IsLegacyHash(hash) {
		err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}

		if err != nil {
			return false, fmt.Errorf("verify password: %w", err)
		}

		return true, nil
	}

	match, err := argon2id.ComparePasswordAndHash(password, hash)
	if err != nil {
		return false, fmt.Errorf("verify password: %w", err)
	}

	return match, nil
}
