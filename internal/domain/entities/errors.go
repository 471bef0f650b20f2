package entities

import "errors"

// Domain errors
var (
	// Record errors
	ErrMissingField      = errors.New("missing required field")
	ErrUnknownRecordType = errors.New("unknown record type")
)
