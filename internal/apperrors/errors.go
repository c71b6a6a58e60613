package apperrors

import "errors"

// Sentinel error categories shared by repositories, services and handlers.
// Callers classify failures with errors.Is and wrap additional context with
// fmt.Errorf("...: %w", ...).
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates the acting user does not own the entity.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidOperation indicates a mutation that violates a business
	// rule, such as changing a price that already has pledges against it.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrConflict indicates a uniqueness violation, such as a duplicate
	// username or email.
	ErrConflict = errors.New("conflict")
)
