package models

import "errors"

var (
	// ErrNotFound reports a referenced order, item, driver, bus or passenger
	// that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUserCancelled reports a declined confirmation.
	ErrUserCancelled = errors.New("cancelled by user")

	ErrDuplicate = errors.New("already exists")

	ErrInvalidInput = errors.New("invalid input")
)
