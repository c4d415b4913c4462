package types

import "errors"

// Core operation errors. Every precondition violation detected by a store
// operation is reported with one of these, wrapped with %w where context helps.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrDuplicateName = errors.New("duplicate name")
	ErrRange         = errors.New("ranking out of range")
	ErrInvalidType   = errors.New("invalid category type")
	ErrInvalidName   = errors.New("invalid name")
)

// Persistence errors.
var (
	ErrPersist         = errors.New("persisting state")
	ErrDetached        = errors.New("repository is detached")
	ErrAlreadyAttached = errors.New("repository is already attached")
	ErrCorruptSnapshot = errors.New("snapshot is inconsistent")
)

// IsUserError reports whether err is caused by invalid caller input rather
// than a system failure.
func IsUserError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrDuplicateName) ||
		errors.Is(err, ErrRange) ||
		errors.Is(err, ErrInvalidType) ||
		errors.Is(err, ErrInvalidName)
}
