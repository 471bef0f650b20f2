package errors

import (
	"fmt"
	"net/http"
	"time"
)

// AppError is the error shape returned to API clients
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap returns the underlying error
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	details := make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Timestamp: time.Now(),
		Code:      ErrorCode_INTERNAL,
		Message:   "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode:  http.StatusBadRequest,
		Timestamp: time.Now(),
		Code:      ErrorCode_INVALID_ARGUMENT,
		Message:   message,
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode:  http.StatusNotFound,
		Timestamp: time.Now(),
		Code:      ErrorCode_NOT_FOUND,
		Message:   fmt.Sprintf("%s not found", resource),
	}
}

func ErrAlreadyExists(resource string) AppError {
	return AppError{
		HTTPCode:  http.StatusConflict,
		Timestamp: time.Now(),
		Code:      ErrorCode_ALREADY_EXISTS,
		Message:   fmt.Sprintf("%s already exists", resource),
	}
}

func ErrInvalidPayload(err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusBadRequest,
		Timestamp: time.Now(),
		Code:      ErrorCode_INVALID_PAYLOAD,
		Message:   "Invalid payload",
	}
}

func ErrConfiguration(err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Timestamp: time.Now(),
		Code:      ErrorCode_CONFIGURATION,
		Message:   "Server is misconfigured",
	}
}

// Participant Errors
func ErrParticipantNotFound(name string) AppError {
	return AppError{
		HTTPCode:  http.StatusNotFound,
		Timestamp: time.Now(),
		Code:      ErrorCode_NOT_FOUND,
		Message:   "Participant not found",
	}.WithDetail("participant", name)
}

func ErrParticipantAlreadyExists(name string) AppError {
	return AppError{
		HTTPCode:  http.StatusConflict,
		Timestamp: time.Now(),
		Code:      ErrorCode_ALREADY_EXISTS,
		Message:   "Participant already exists",
	}.WithDetail("participant", name)
}

func ErrParticipantNotSelected() AppError {
	return AppError{
		HTTPCode:  http.StatusConflict,
		Timestamp: time.Now(),
		Code:      ErrorCode_PARTICIPANT_NOT_SELECTED,
		Message:   "Select a participant first",
	}
}

// Export Errors
func ErrNothingToExport() AppError {
	return AppError{
		HTTPCode:  http.StatusUnprocessableEntity,
		Timestamp: time.Now(),
		Code:      ErrorCode_EXPORT_NOTHING_TO_EXPORT,
		Message:   "There are no reactions to export",
	}
}

func ErrExportFailed(format string, err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Timestamp: time.Now(),
		Code:      ErrorCode_EXPORT_FAILED,
		Message:   "Failed to export records",
	}.WithDetail("format", format)
}

func ErrImportFailed(err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusBadRequest,
		Timestamp: time.Now(),
		Code:      ErrorCode_IMPORT_FAILED,
		Message:   "Failed to import records",
	}
}

// Timer Errors
func ErrTimerInvalidState(message string) AppError {
	return AppError{
		HTTPCode:  http.StatusConflict,
		Timestamp: time.Now(),
		Code:      ErrorCode_TIMER_INVALID_STATE,
		Message:   message,
	}
}

// Integration Errors
func ErrStorageFailed(operation string, err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Timestamp: time.Now(),
		Code:      ErrorCode_INTEGRATION_STORAGE_FAILED,
		Message:   fmt.Sprintf("Storage operation failed: %s", operation),
	}
}

func ErrServiceUnavailable(service string) AppError {
	return AppError{
		HTTPCode:  http.StatusServiceUnavailable,
		Timestamp: time.Now(),
		Code:      ErrorCode_INTEGRATION_STORAGE_FAILED,
		Message:   fmt.Sprintf("%s is not available", service),
	}
}
