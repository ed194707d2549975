package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError_Creation(t *testing.T) {
	message := "order not found"
	err := NewNotFoundError(message)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
}

func TestNotFoundError_IsNotFoundError(t *testing.T) {
	err := NewNotFoundError("order with id 7 not found")

	notFoundErr, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.NotNil(t, notFoundErr)
	assert.Equal(t, "order with id 7 not found", notFoundErr.Message)
}

func TestNotFoundError_IsNotFoundError_Wrapped(t *testing.T) {
	err := fmt.Errorf("loading order: %w", NewNotFoundError("order with id 7 not found"))

	notFoundErr, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.Equal(t, "order with id 7 not found", notFoundErr.Message)
}

func TestNotFoundError_IsNotFoundError_WithOtherError(t *testing.T) {
	err := errors.New("some other error")

	notFoundErr, ok := IsNotFoundError(err)
	assert.False(t, ok)
	assert.Nil(t, notFoundErr)
}

func TestValidationError_Creation(t *testing.T) {
	message := "validation failed"
	details := []ValidationDetail{
		{Field: "customerName", Message: "customerName is required"},
		{Field: "items[0].width", Message: "width is required"},
	}

	err := NewValidationError(message, details...)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
	assert.Len(t, err.Details, 2)

	ve, ok := IsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, "items[0].width", ve.Details[1].Field)
}

func TestConflictError_IsConflictError(t *testing.T) {
	var err error = NewConflictError("user 3 still owns 2 orders")

	ce, ok := IsConflictError(err)
	assert.True(t, ok)
	assert.Equal(t, "user 3 still owns 2 orders", ce.Error())

	_, ok = IsNotFoundError(err)
	assert.False(t, ok)
}

func TestImportFormatError_WithCause(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := NewImportFormatError("invalid backup file", cause)

	assert.Equal(t, "invalid backup file: unexpected end of JSON input", err.Error())
	assert.True(t, errors.Is(err, cause))

	ife, ok := IsImportFormatError(fmt.Errorf("import: %w", err))
	assert.True(t, ok)
	assert.Equal(t, "invalid backup file", ife.Message)
}

func TestImportFormatError_NilCause(t *testing.T) {
	err := NewImportFormatError("backup must contain users and orders arrays", nil)

	assert.Equal(t, "backup must contain users and orders arrays", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestInternalError_Creation(t *testing.T) {
	cause := errors.New("database is locked")
	err := NewInternalError("failed to create user", cause)

	assert.NotNil(t, err)
	assert.Equal(t, "failed to create user", err.Message)
	assert.Equal(t, cause, err.Cause)
	assert.Contains(t, err.Error(), "failed to create user")
	assert.Contains(t, err.Error(), "database is locked")
}

func TestInternalError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := NewInternalError("wrapper", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
}

func TestInternalError_NilCause(t *testing.T) {
	err := NewInternalError("no cause", nil)

	assert.Equal(t, "no cause", err.Error())
	assert.Nil(t, err.Unwrap())
}
