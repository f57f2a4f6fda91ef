package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the service. Callers classify failures with errors.Is
// and translate them into the right presentation per channel (HTTP status
// code vs. chat text).
var (
	// ErrInvalidRequest indicates bad or missing user input (400-class).
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNotImplemented indicates a feature that is not built yet. Routes
	// surface it as a friendly message, never as a server failure.
	ErrNotImplemented = errors.New("not implemented")
)

// SourceErrorKind classifies upstream offer-source failures.
type SourceErrorKind string

// Offer source failure kinds.
const (
	SourceAuth        SourceErrorKind = "auth"
	SourceRateLimited SourceErrorKind = "rate_limited"
	SourceBadRequest  SourceErrorKind = "bad_request"
	SourceUnavailable SourceErrorKind = "unavailable"
)

// SourceError is an upstream offer-source failure (500-class for the API,
// apologetic text for chat). The adapter performs no retries; one failure is
// reported immediately.
type SourceError struct {
	Kind    SourceErrorKind
	Message string
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	return fmt.Sprintf("offer source %s: %s", e.Kind, e.Message)
}

// NewSourceError creates a SourceError with the given kind and message.
func NewSourceError(kind SourceErrorKind, format string, args ...any) *SourceError {
	return &SourceError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsInvalidRequest reports whether err is a validation error.
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

// IsNotImplemented reports whether err signals an unimplemented feature.
func IsNotImplemented(err error) bool {
	return errors.Is(err, ErrNotImplemented)
}

// AsSourceError extracts a SourceError from err's chain, if present.
func AsSourceError(err error) (*SourceError, bool) {
	var se *SourceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
