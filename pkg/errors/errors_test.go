package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatusCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, StatusInternalServerError},
		{"invalid request", NewInvalidRequestError("bad", nil), StatusBadRequest},
		{"conflict", NewConflictError("dup", nil), StatusConflict},
		{"not found", NewNotFoundError("missing", nil), StatusNotFound},
		{"database", NewDatabaseError("db", errors.New("boom")), StatusInternalServerError},
		{"connectivity", NewConnectivityError("down", nil), StatusInternalServerError},
		{"unavailable", NewUnavailableError("try later", nil), StatusInternalServerError},
		{"plain error", errors.New("plain"), StatusInternalServerError},
		{"wrapped conflict", fmt.Errorf("outer: %w", NewConflictError("dup", nil)), StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatusCode(tc.err))
		})
	}
}

func TestGetHumanReadableMessage_HidesCause(t *testing.T) {
	err := NewUnavailableError("Something went wrong.", errors.New("dial tcp 10.0.0.1:5432: connection refused"))

	assert.Equal(t, "Something went wrong.", GetHumanReadableMessage(err))
	assert.Equal(t, "An unexpected error occurred", GetHumanReadableMessage(errors.New("pq: password authentication failed")))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestIsStoreFailure(t *testing.T) {
	assert.True(t, IsStoreFailure(NewDatabaseError("x", nil)))
	assert.True(t, IsStoreFailure(NewConnectivityError("x", nil)))
	assert.False(t, IsStoreFailure(NewConflictError("x", nil)))
	assert.False(t, IsStoreFailure(nil))
}

func TestIsDuplicateKeyError(t *testing.T) {
	assert.True(t, IsDuplicateKeyError(errors.New("UNIQUE constraint failed: waitlist_entries.email")))
	assert.True(t, IsDuplicateKeyError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_waitlist_entries_email" (SQLSTATE 23505)`)))
	assert.True(t, IsDuplicateKeyError(NewConflictError("dup", nil)))
	assert.False(t, IsDuplicateKeyError(errors.New("connection reset by peer")))
	assert.False(t, IsDuplicateKeyError(nil))
}

type sampleRequest struct {
	Name  string `json:"name" validate:"max=3"`
	Email string `json:"email" validate:"required"`
}

func TestFormatValidationErrors_UsesJSONNames(t *testing.T) {
	req := &sampleRequest{Name: "toolong"}
	err := validator.New().Struct(req)
	require.Error(t, err)

	got := FormatValidationErrors(err, req)

	require.Len(t, got, 2)
	assert.Equal(t, ValidationErrorResponse{Field: "name", Message: "Must not exceed 3 characters"}, got[0])
	assert.Equal(t, ValidationErrorResponse{Field: "email", Message: "This field is required"}, got[1])
}

func TestFormatValidationErrors_TypeMismatch(t *testing.T) {
	var req sampleRequest
	err := json.Unmarshal([]byte(`{"name": 42}`), &req)
	require.Error(t, err)

	got := FormatValidationErrors(err, &req)
	require.Len(t, got, 1)
	assert.Equal(t, "name", got[0].Field)
}

func TestFormatValidationErrors_OtherErrors(t *testing.T) {
	assert.Nil(t, FormatValidationErrors(nil, nil))
	assert.Nil(t, FormatValidationErrors(errors.New("unexpected EOF"), nil))
}
