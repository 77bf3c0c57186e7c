package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the content lifecycle. Services wrap these with
// fmt.Errorf("...: %w", Err...) so handlers can map them with errors.Is.
var (
	// ErrValidation marks malformed or too-short input. User-correctable.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks an unknown identifier.
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks an authenticated actor without rights for the action.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidState marks an action illegal for the entity's current
	// lifecycle state, e.g. approving an already-decided submission.
	ErrInvalidState = errors.New("invalid state")

	// ErrDuplicateTitle marks a slug collision at submit or approve time.
	ErrDuplicateTitle = errors.New("duplicate title")

	// ErrLockContention marks a regeneration already in flight for the
	// same resource. Callers should retry later.
	ErrLockContention = errors.New("operation already in progress")

	// ErrInfrastructure marks a storage or network failure that is not
	// attributable to caller input.
	ErrInfrastructure = errors.New("infrastructure failure")
)

// Validationf wraps ErrValidation with a caller-facing detail message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}

// Infrastructure wraps a low-level storage/network error. A nil err
// returns nil so repository call sites can wrap unconditionally.
func Infrastructure(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrInfrastructure, err)
}
