package errors

import (
	"errors"
	"fmt"
	"strings"
)

const (
	StatusOK                  = 200
	StatusNoContent           = 204
	StatusBadRequest          = 400
	StatusNotFound            = 404
	StatusMethodNotAllowed    = 405
	StatusRequestTimeout      = 408
	StatusConflict            = 409
	StatusInternalServerError = 500
)

const (
	ErrorTypeDatabaseError  = "DATABASE_ERROR"
	ErrorTypeConnectivity   = "CONNECTIVITY_ERROR"
	ErrorTypeUnavailable    = "UNAVAILABLE"
	ErrorTypeNotification   = "NOTIFICATION_ERROR"
	ErrorTypeNotFound       = "NOT_FOUND"
	ErrorTypeInvalidRequest = "INVALID_REQUEST"
	ErrorTypeConflict       = "CONFLICT"
	ErrorTypeRequestTimeout = "REQUEST_TIMEOUT"
	ErrorTypeUnknown        = "UNKNOWN_ERROR"
)

type AppError struct {
	Type    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(errType, message string, err error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

func NewNotFoundError(message string, err error) *AppError {
	return NewAppError(ErrorTypeNotFound, message, err)
}

func NewInvalidRequestError(message string, err error) *AppError {
	return NewAppError(ErrorTypeInvalidRequest, message, err)
}

// NewDatabaseError marks a store operation that was reached but could not complete.
func NewDatabaseError(message string, err error) *AppError {
	return NewAppError(ErrorTypeDatabaseError, message, err)
}

// NewConnectivityError marks a store that could not be reached or configured.
func NewConnectivityError(message string, err error) *AppError {
	return NewAppError(ErrorTypeConnectivity, message, err)
}

// NewUnavailableError is what callers see when a dependency failed; the cause stays in Err.
func NewUnavailableError(message string, err error) *AppError {
	return NewAppError(ErrorTypeUnavailable, message, err)
}

func NewNotificationError(message string, err error) *AppError {
	return NewAppError(ErrorTypeNotification, message, err)
}

func NewConflictError(message string, err error) *AppError {
	return NewAppError(ErrorTypeConflict, message, err)
}

func GetErrorType(err error) string {
	if err == nil {
		return ""
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}

	return ErrorTypeUnknown
}

// IsStoreFailure reports whether err came from the store rather than from the caller's input.
func IsStoreFailure(err error) bool {
	switch GetErrorType(err) {
	case ErrorTypeDatabaseError, ErrorTypeConnectivity:
		return true
	}
	return false
}

func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}

	if GetErrorType(err) == ErrorTypeConflict {
		return true
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate") ||
		strings.Contains(errMsg, "unique constraint") ||
		strings.Contains(errMsg, "sqlstate 23505")
}
