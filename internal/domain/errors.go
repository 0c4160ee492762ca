package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidPassword is returned when a password doesn't meet requirements.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrInvalidTaskStatus is returned when a task status is not valid.
	ErrInvalidTaskStatus = errors.New("invalid task status")

	// ErrInvalidTaskPriority is returned when a task priority is not valid.
	ErrInvalidTaskPriority = errors.New("invalid task priority")

	// ErrInvalidNotificationType is returned when a notification type is not valid.
	ErrInvalidNotificationType = errors.New("invalid notification type")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)
