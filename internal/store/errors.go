package store

import "errors"

var (
	ErrEntityNotFound     = errors.New("entity not found")
	ErrLoginAlreadyExists = errors.New("given login already exists")
	ErrNoUserWasFound     = errors.New("no user was found")

	// ErrStorageUnavailable marks transient database failures that the
	// caller may safely retry.
	ErrStorageUnavailable = errors.New("storage temporarily unavailable")
)
