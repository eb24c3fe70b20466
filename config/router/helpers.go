package router

import (
	"net/http"

	"github.com/akeren/waitlist-api/internal/log"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
)

// GetLogger returns the request-scoped logger injected by the router, or a
// fresh correlated one when the handler runs outside the middleware chain.
func GetLogger(ctx *RequestContext) *log.Logger {
	if l, ok := ctx.Request.Context().Value(log.LoggerKeyForContext).(*log.Logger); ok && l != nil {
		return l
	}

	return log.NewLoggerWithJSONOutput().WithCorrelationID(ctx.Request.Context())
}

func ErrorResult(statusCode int, message string, data any) *ServiceResult {
	return &ServiceResult{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
	}
}

func OKResult(data any, message string) *ServiceResult {
	return ErrorResult(http.StatusOK, message, data)
}

// BadRequestResult carries field-level validation details in data when there are any.
func BadRequestResult(message string, details any) *ServiceResult {
	return ErrorResult(http.StatusBadRequest, message, details)
}

func InternalServerErrorResult(message string) *ServiceResult {
	return ErrorResult(http.StatusInternalServerError, message, nil)
}

// ResultFromError maps an application error onto the envelope. Only the
// AppError message reaches the client.
func ResultFromError(err error) *ServiceResult {
	return ErrorResult(apperrors.HTTPStatusCode(err), apperrors.GetHumanReadableMessage(err), nil)
}
