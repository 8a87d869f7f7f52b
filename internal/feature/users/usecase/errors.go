package usecase

import "errors"

// ErrUserNotFound is returned when no account exists for the given ID.
var ErrUserNotFound = errors.New("user not found")
