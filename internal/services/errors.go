package services

import (
	"errors"

	"reviewhub/internal/models"

	"gorm.io/gorm"
)

// Error taxonomy the handlers map onto HTTP statuses. Services wrap these
// with fmt.Errorf("...: %w", ...) so callers can test with errors.Is.
var (
	// ErrValidation marks a malformed or out-of-range field (400).
	ErrValidation = errors.New("validation failed")
	// ErrConflict marks a uniqueness violation such as a duplicate review
	// or a mismatched signup (400).
	ErrConflict = errors.New("conflict")
	// ErrNotFound marks an unknown slug, id or username (404).
	ErrNotFound = errors.New("not found")
	// ErrPermissionDenied marks an authenticated actor lacking the required
	// role (403).
	ErrPermissionDenied = errors.New("permission denied")
	// ErrUnauthenticated marks an anonymous request to an operation that
	// requires credentials (401).
	ErrUnauthenticated = errors.New("authentication required")
)

// permissionErr picks the right taxonomy entry for a failed policy check:
// anonymous actors get ErrUnauthenticated, everyone else ErrPermissionDenied.
func permissionErr(actor *models.User) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	return ErrPermissionDenied
}

// dataErr translates repository errors into the service taxonomy, leaving
// anything unrecognized untouched.
func dataErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errors.Join(ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errors.Join(ErrConflict, err)
	default:
		return err
	}
}
