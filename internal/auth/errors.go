package auth

import "errors"

var (
	// ErrInvalidCredentials is returned when email or password do not match a user.
	// Unknown emails and wrong passwords are not distinguished.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNoResolver is returned by a Principal that was built without a resolver.
	ErrNoResolver = errors.New("principal has no permission resolver")
)
