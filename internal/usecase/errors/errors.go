package errors

import "errors"

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrConfiguration = errors.New("configuration error")
)

// Participant errors
var (
	ErrParticipantNameRequired = errors.New("participant name is required")
	ErrParticipantExists       = errors.New("participant already exists")
	ErrParticipantNotFound     = errors.New("participant not found")
	ErrNoParticipantSelected   = errors.New("select a participant first")
)

// Record errors
var (
	ErrMeetingIDRequired = errors.New("meeting id is required")
	ErrCategoryRequired  = errors.New("reaction name is required")
)

// Export errors
var (
	ErrNothingToExport     = errors.New("nothing to export")
	ErrArchiveNotAvailable = errors.New("export archive is not configured")
)

// Timer errors
var (
	ErrTimerRunning    = errors.New("meeting timer already running")
	ErrTimerNotRunning = errors.New("meeting timer is not running")
)
