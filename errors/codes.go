package errors

// ErrorCode identifies an application error in API responses
type ErrorCode int32

const (
	ErrorCode_HTTP_OK ErrorCode = 200

	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS   ErrorCode = 1003
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1004
	ErrorCode_CONFIGURATION    ErrorCode = 1005

	ErrorCode_PARTICIPANT_NOT_SELECTED ErrorCode = 2001

	ErrorCode_EXPORT_NOTHING_TO_EXPORT ErrorCode = 3001
	ErrorCode_EXPORT_FAILED            ErrorCode = 3002
	ErrorCode_IMPORT_FAILED            ErrorCode = 3003

	ErrorCode_TIMER_INVALID_STATE ErrorCode = 4001

	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 5001
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                    "HTTP_OK",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:             "ALREADY_EXISTS",
	ErrorCode_INVALID_PAYLOAD:            "INVALID_PAYLOAD",
	ErrorCode_CONFIGURATION:              "CONFIGURATION",
	ErrorCode_PARTICIPANT_NOT_SELECTED:   "PARTICIPANT_NOT_SELECTED",
	ErrorCode_EXPORT_NOTHING_TO_EXPORT:   "EXPORT_NOTHING_TO_EXPORT",
	ErrorCode_EXPORT_FAILED:              "EXPORT_FAILED",
	ErrorCode_IMPORT_FAILED:              "IMPORT_FAILED",
	ErrorCode_TIMER_INVALID_STATE:        "TIMER_INVALID_STATE",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
