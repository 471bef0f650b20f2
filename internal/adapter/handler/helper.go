package handler

import (
	stdErrors "errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-reactions/errors"
	usecaseErrors "github.com/johnquangdev/meeting-reactions/internal/usecase/errors"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code      interface{}       `json:"code,omitempty"`
	Message   string            `json:"message,omitempty"`
	Info      string            `json:"info,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
	Timestamp string            `json:"timestamp,omitempty"`
}

// getRequestID reads the request id set by the RequestID middleware, falling
// back to the incoming header
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	return HandleSuccessWithStatus(logger, c, http.StatusOK, data)
}

// HandleSuccessWithStatus writes a standardized success response with a custom status
func HandleSuccessWithStatus(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(status, resp)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	appErr := toAppError(err)
	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Any("app_code", appErr.Code),
			zap.Error(err),
		)
	}

	info := ""
	if appErr.Raw != nil {
		info = appErr.Raw.Error()
	}

	body := errs{
		Code:      appErr.Code,
		Message:   appErr.Message,
		Info:      info,
		Details:   appErr.Details,
		Timestamp: appErr.Timestamp.UTC().Format(time.RFC3339),
	}

	return c.JSON(appErr.HTTPCode, body)
}

// toAppError maps usecase errors to API errors
func toAppError(err error) errors.AppError {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	switch {
	case stdErrors.Is(err, usecaseErrors.ErrParticipantNotFound):
		appErr = errors.ErrNotFound("Participant")
		appErr.Raw = err
		return appErr
	case stdErrors.Is(err, usecaseErrors.ErrParticipantExists):
		appErr = errors.ErrAlreadyExists("Participant")
		appErr.Raw = err
		return appErr
	case stdErrors.Is(err, usecaseErrors.ErrNoParticipantSelected):
		return errors.ErrParticipantNotSelected()
	case stdErrors.Is(err, usecaseErrors.ErrParticipantNameRequired),
		stdErrors.Is(err, usecaseErrors.ErrMeetingIDRequired),
		stdErrors.Is(err, usecaseErrors.ErrCategoryRequired),
		stdErrors.Is(err, usecaseErrors.ErrInvalidInput):
		return errors.ErrInvalidArgument(err.Error())
	case stdErrors.Is(err, usecaseErrors.ErrNothingToExport):
		return errors.ErrNothingToExport()
	case stdErrors.Is(err, usecaseErrors.ErrArchiveNotAvailable):
		return errors.ErrServiceUnavailable("Export archive")
	case stdErrors.Is(err, usecaseErrors.ErrTimerRunning),
		stdErrors.Is(err, usecaseErrors.ErrTimerNotRunning):
		return errors.ErrTimerInvalidState(err.Error())
	case stdErrors.Is(err, usecaseErrors.ErrConfiguration):
		return errors.ErrConfiguration(err)
	}

	return errors.ErrInternal(err)
}
