// Package usecase implements the business logic for the books feature.
package usecase

import "errors"

var (
	// ErrBookNotFound is returned when no book matches the given ID or ISBN.
	ErrBookNotFound = errors.New("book not found")

	// ErrInvalidBookID is returned when an ID is not a valid object ID.
	ErrInvalidBookID = errors.New("invalid book id")

	// ErrDuplicateISBN is returned when creating a book with an ISBN that
	// already exists in the catalog.
	ErrDuplicateISBN = errors.New("isbn already exists")
)
