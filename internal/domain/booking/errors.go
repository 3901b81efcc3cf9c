package booking

import "errors"

var (
	// ErrNotFound is returned when a booking does not exist
	ErrNotFound = errors.New("booking not found")

	// ErrVersionConflict is returned when an update precondition fails
	// because the row changed since the client last read it
	ErrVersionConflict = errors.New("booking was modified by another request")

	// ErrInvalidDate is returned when a date field cannot be parsed
	ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrFoldersUnavailable is returned when no folder provisioner is configured
	ErrFoldersUnavailable = errors.New("folder provisioning is not configured")

	// ErrEmailUnavailable is returned when no email sender is configured
	ErrEmailUnavailable = errors.New("email sending is not configured")
)
