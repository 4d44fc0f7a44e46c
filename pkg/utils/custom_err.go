package utils

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPage           = errors.New("invalid page parameter")
	ErrDatabaseError         = errors.New("database error")
	ErrAccountNotFound       = errors.New("account not found")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrTooManyRequests       = errors.New("too many requests")
	ErrScreenNotFound        = errors.New("screen not found")
	ErrRequestInFlight       = errors.New("a plan request is already in progress")
	ErrTimeout               = errors.New("request timed out")
	ErrNetwork               = errors.New("network error")
	ErrAuthUnavailable       = errors.New("no authenticated identity")
	ErrCapabilityUnavailable = errors.New("speech capture is not supported")
	ErrCaptureActive         = errors.New("speech capture already active")
	ErrInvalidTransition     = errors.New("invalid state transition")
)

// ValidationError reports malformed user input caught before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// UpstreamError is a non-success HTTP status from an external service.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("HTTP Error: %d - %s", e.Status, e.Body)
}

// DecodeError means a response body did not have the expected shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "decode response: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }
