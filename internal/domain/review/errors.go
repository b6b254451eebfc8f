package review

import "errors"

var (
	// ErrForbidden is returned when the acting user lacks the admin capability
	ErrForbidden = errors.New("forbidden: admin capability required")

	// ErrInvalidState is returned when a review state string is not one of
	// the canonical values
	ErrInvalidState = errors.New("invalid review state")

	// ErrUnknownKind is returned when a record kind is not recognized
	ErrUnknownKind = errors.New("unknown record kind")

	// ErrNotFound is returned when the target record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrStorage is returned when the repository fails to load or save
	ErrStorage = errors.New("storage failure")

	// ErrAuditWriteFailed is reported when the audit entry could not be
	// written after the state change committed. It never rolls back the
	// transition; callers surface it as a warning.
	ErrAuditWriteFailed = errors.New("audit write failed")
)
