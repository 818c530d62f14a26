package storage

import "errors"

// Store errors, classified for HTTP mapping at the server boundary.
var (
	// ErrNotFound is returned when no document matches the given id.
	ErrNotFound = errors.New("car not found")

	// ErrNotOwner is returned when a mutation is attempted by a user who
	// does not own the listing.
	ErrNotOwner = errors.New("not authorized: listing owned by another seller")

	// ErrInvalidID is returned when an id is not a valid ObjectID hex string.
	ErrInvalidID = errors.New("invalid id")
)
