package errors

import "fmt"

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	if ve, ok := err.(*ValidationError); ok {
		return ve, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	if nf, ok := err.(*NotFoundError); ok {
		return nf, true
	}
	return nil, false
}

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func IsConflictError(err error) (*ConflictError, bool) {
	if ce, ok := err.(*ConflictError); ok {
		return ce, true
	}
	return nil, false
}

type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	return e.Message
}

func NewUnauthorizedError(message string) *UnauthorizedError {
	return &UnauthorizedError{Message: message}
}

func IsUnauthorizedError(err error) (*UnauthorizedError, bool) {
	if ue, ok := err.(*UnauthorizedError); ok {
		return ue, true
	}
	return nil, false
}

// UpstreamError is a non-success response from the payment gateway. It is
// never retried automatically; the user must re-initiate checkout.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("payment gateway error (HTTP %d): %s", e.StatusCode, e.Message)
}

func NewUpstreamError(statusCode int, message string) *UpstreamError {
	return &UpstreamError{StatusCode: statusCode, Message: message}
}

func IsUpstreamError(err error) (*UpstreamError, bool) {
	if ue, ok := err.(*UpstreamError); ok {
		return ue, true
	}
	return nil, false
}

// UpstreamTimeoutError is a gateway call that ran out of time. Retryable by
// the user, never retried automatically.
type UpstreamTimeoutError struct {
	Message string
}

func (e *UpstreamTimeoutError) Error() string {
	return e.Message
}

func NewUpstreamTimeoutError(message string) *UpstreamTimeoutError {
	return &UpstreamTimeoutError{Message: message}
}

func IsUpstreamTimeoutError(err error) (*UpstreamTimeoutError, bool) {
	if te, ok := err.(*UpstreamTimeoutError); ok {
		return te, true
	}
	return nil, false
}

// UpstreamUnavailableError is a connection-level failure to the gateway.
type UpstreamUnavailableError struct {
	Message string
	Cause   error
}

func (e *UpstreamUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *UpstreamUnavailableError) Unwrap() error {
	return e.Cause
}

func NewUpstreamUnavailableError(message string, cause error) *UpstreamUnavailableError {
	return &UpstreamUnavailableError{Message: message, Cause: cause}
}

func IsUpstreamUnavailableError(err error) (*UpstreamUnavailableError, bool) {
	if ue, ok := err.(*UpstreamUnavailableError); ok {
		return ue, true
	}
	return nil, false
}

// UpstreamMalformedError is a success status whose body could not be parsed.
type UpstreamMalformedError struct {
	Message string
}

func (e *UpstreamMalformedError) Error() string {
	return e.Message
}

func NewUpstreamMalformedError(message string) *UpstreamMalformedError {
	return &UpstreamMalformedError{Message: message}
}

func IsUpstreamMalformedError(err error) (*UpstreamMalformedError, bool) {
	if me, ok := err.(*UpstreamMalformedError); ok {
		return me, true
	}
	return nil, false
}

// PersistenceError is a transient store failure. Callers retry a bounded
// number of times before surfacing it to the client as a retry signal.
type PersistenceError struct {
	Message string
	Cause   error
}

func (e *PersistenceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

func NewPersistenceError(message string, cause error) *PersistenceError {
	return &PersistenceError{Message: message, Cause: cause}
}

func IsPersistenceError(err error) (*PersistenceError, bool) {
	if pe, ok := err.(*PersistenceError); ok {
		return pe, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}
