package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Creation(t *testing.T) {
	details := []ValidationDetail{
		{Field: "quantity", Message: "must be at least 1"},
		{Field: "name", Message: "required field"},
	}

	err := NewValidationError("validation failed", details...)

	assert.NotNil(t, err)
	assert.Equal(t, "validation failed", err.Message)
	assert.Equal(t, "validation failed", err.Error())
	assert.Len(t, err.Details, 2)
	assert.Equal(t, "quantity", err.Details[0].Field)
}

func TestValidationError_IsValidationError(t *testing.T) {
	err := NewValidationError("bad input")

	ve, ok := IsValidationError(err)
	assert.True(t, ok)
	assert.NotNil(t, ve)

	ve, ok = IsValidationError(errors.New("some other error"))
	assert.False(t, ok)
	assert.Nil(t, ve)
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("order not found")

	assert.Equal(t, "order not found", err.Error())

	nf, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.NotNil(t, nf)

	_, ok = IsNotFoundError(errors.New("other"))
	assert.False(t, ok)
}

func TestConflictError(t *testing.T) {
	err := NewConflictError("illegal transition from done to preparing")

	assert.Equal(t, "illegal transition from done to preparing", err.Error())

	ce, ok := IsConflictError(err)
	assert.True(t, ok)
	assert.NotNil(t, ce)

	_, ok = IsConflictError(NewNotFoundError("nope"))
	assert.False(t, ok)
}

func TestUnauthorizedError(t *testing.T) {
	err := NewUnauthorizedError("invalid credentials")

	ue, ok := IsUnauthorizedError(err)
	assert.True(t, ok)
	assert.Equal(t, "invalid credentials", ue.Message)
}

func TestUpstreamError_IncludesStatusCode(t *testing.T) {
	err := NewUpstreamError(500, "internal gateway failure")

	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "internal gateway failure")

	ue, ok := IsUpstreamError(err)
	assert.True(t, ok)
	assert.Equal(t, 500, ue.StatusCode)
}

func TestUpstreamTimeoutError(t *testing.T) {
	err := NewUpstreamTimeoutError("payment gateway timed out")

	te, ok := IsUpstreamTimeoutError(err)
	assert.True(t, ok)
	assert.Equal(t, "payment gateway timed out", te.Error())

	_, ok = IsUpstreamTimeoutError(NewUpstreamError(502, "bad gateway"))
	assert.False(t, ok)
}

func TestUpstreamUnavailableError_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewUpstreamUnavailableError("gateway unreachable", cause)

	assert.Contains(t, err.Error(), "gateway unreachable")
	assert.Contains(t, err.Error(), "connection refused")
	assert.True(t, errors.Is(err, cause))

	ue, ok := IsUpstreamUnavailableError(err)
	assert.True(t, ok)
	assert.Equal(t, cause, ue.Cause)
}

func TestUpstreamMalformedError(t *testing.T) {
	err := NewUpstreamMalformedError("missing token in response")

	me, ok := IsUpstreamMalformedError(err)
	assert.True(t, ok)
	assert.Equal(t, "missing token in response", me.Error())
}

func TestPersistenceError_UnwrapsCause(t *testing.T) {
	cause := errors.New("write concern failed")
	err := NewPersistenceError("failed to save order", cause)

	assert.Contains(t, err.Error(), "failed to save order")
	assert.True(t, errors.Is(err, cause))

	pe, ok := IsPersistenceError(err)
	assert.True(t, ok)
	assert.NotNil(t, pe)
}

func TestPersistenceError_NoCause(t *testing.T) {
	err := NewPersistenceError("failed to save order", nil)

	assert.Equal(t, "failed to save order", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestInternalError(t *testing.T) {
	cause := errors.New("boom")
	err := NewInternalError("unexpected failure", cause)

	assert.Contains(t, err.Error(), "unexpected failure")
	assert.Contains(t, err.Error(), "boom")
	assert.True(t, errors.Is(err, cause))
}
