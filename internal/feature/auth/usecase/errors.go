// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	// During token verification it means the token was valid but the backing
	// record no longer exists (deleted or deactivated account).
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to register a user with
	// an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned on login failure. Unknown email and
	// wrong password surface identically so the cause cannot be distinguished.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
