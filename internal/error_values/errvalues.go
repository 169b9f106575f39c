package errorvalues

import "errors"

var (
	ErrUserExists       = errors.New("such user already exists")
	ErrUserNotFound     = errors.New("user doesn't exist")
	ErrWrongCredentials = errors.New("wrong email or password")
	ErrInvalidToken     = errors.New("invalid token")

	ErrEntryNotFound    = errors.New("entry doesn't exist")
	ErrReminderNotFound = errors.New("reminder doesn't exist")
	ErrEventNotFound    = errors.New("calendar event doesn't exist")
	ErrTemplateNotFound = errors.New("template doesn't exist")
	// Returned when a resource exists but belongs to another user.
	// Handlers must answer it exactly like a not-found.
	ErrWrongOwner = errors.New("resource has different owner")

	ErrInvalidDateRange = errors.New("start date is after end date")
	ErrInvalidPage      = errors.New("page must be positive")
	// Wraps field-level failures so handlers can answer 400 instead of 500
	ErrValidation = errors.New("validation error")
)
