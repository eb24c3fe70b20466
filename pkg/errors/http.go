package errors

import (
	"errors"
)

// GenericMessage is shown for anything that is not an AppError so driver and
// network error strings never reach a client.
const GenericMessage = "An unexpected error occurred"

// Store and notification failures are deliberately absent: they fall through
// to 500 like any unknown type.
var statusByType = map[string]int{
	ErrorTypeInvalidRequest: StatusBadRequest,
	ErrorTypeNotFound:       StatusNotFound,
	ErrorTypeRequestTimeout: StatusRequestTimeout,
	ErrorTypeConflict:       StatusConflict,
}

func HTTPStatusCode(err error) int {
	if status, ok := statusByType[GetErrorType(err)]; ok {
		return status
	}
	return StatusInternalServerError
}

func GetHumanReadableMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return GenericMessage
}
