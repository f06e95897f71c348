package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsCarryTypeAndStatus(t *testing.T) {
	cases := []struct {
		err    *AppError
		check  func(error) bool
		status int
	}{
		{NewNotFoundError("node"), IsNotFound, http.StatusNotFound},
		{NewAlreadyExistsError("edge"), IsAlreadyExists, http.StatusConflict},
		{NewInvalidArgumentError("bad input"), IsInvalidArgument, http.StatusBadRequest},
		{NewTransactionStateError("already active"), IsTransactionState, http.StatusConflict},
		{NewStorageError("saveGraph", fmt.Errorf("disk full")), IsStorage, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.True(t, tc.check(tc.err))
		assert.Equal(t, tc.status, tc.err.HTTPStatus)
	}
}

func TestWithDetailAndCause(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := NewNotFoundError("node").WithDetail("name", "Alice").WithCause(cause)

	assert.Equal(t, "Alice", err.Details["name"])
	assert.ErrorIs(t, err, cause)
}

func TestGetAppError_Unwraps(t *testing.T) {
	inner := NewAlreadyExistsError("node")
	wrapped := fmt.Errorf("while adding: %w", inner)

	appErr := GetAppError(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, ErrorTypeAlreadyExists, appErr.Type)
	assert.True(t, IsAlreadyExists(wrapped))

	assert.Nil(t, GetAppError(fmt.Errorf("plain")))
	assert.False(t, IsNotFound(fmt.Errorf("plain")))
}

func TestWrap_PreservesType(t *testing.T) {
	err := Wrap(NewStorageError("loadGraph", fmt.Errorf("io error")), "failed to begin transaction")
	require.Error(t, err)
	assert.True(t, IsStorage(err), "wrapping keeps the classified type")
	assert.Contains(t, err.Error(), "failed to begin transaction")
}
