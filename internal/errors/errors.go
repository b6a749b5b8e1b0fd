package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents an API error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST"   // 400
	ErrForbidden      ErrorCode = "FORBIDDEN"         // 403
	ErrNotFound       ErrorCode = "NOT_FOUND"         // 404
	ErrSuperseded     ErrorCode = "UPLOAD_SUPERSEDED" // 409
	ErrUploadTooLarge ErrorCode = "UPLOAD_TOO_LARGE"  // 413
	ErrDecodeFailed   ErrorCode = "DECODE_FAILED"     // 422
	ErrRateLimited    ErrorCode = "RATE_LIMITED"      // 429
	ErrInternal       ErrorCode = "INTERNAL"          // 500
)

// LinkError represents a structured error with code, status, and details.
type LinkError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *LinkError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *LinkError {
	return &LinkError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewForbidden creates a 403 error for callers outside the allow-lists.
func NewForbidden(msg string) *LinkError {
	return &LinkError{
		Code:    ErrForbidden,
		Status:  403,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when a link cannot be found.
func NewNotFound(id string) *LinkError {
	return &LinkError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("link not found: %s", id),
		Details: map[string]any{"id": id},
	}
}

// NewUploadSuperseded creates a 409 error for an upload replaced by a newer
// one for the same link before it finished decoding.
func NewUploadSuperseded(id string) *LinkError {
	return &LinkError{
		Code:    ErrSuperseded,
		Status:  409,
		Message: "upload superseded by a newer upload",
		Details: map[string]any{"id": id},
	}
}

// NewUploadTooLarge creates a 413 error when an upload exceeds the size limit.
func NewUploadTooLarge(limit string) *LinkError {
	return &LinkError{
		Code:    ErrUploadTooLarge,
		Status:  413,
		Message: fmt.Sprintf("upload exceeds maximum size of %s", limit),
		Details: map[string]any{"max_size": limit},
	}
}

// NewDecodeFailed creates a 422 error when an uploaded file cannot be ingested.
func NewDecodeFailed(kind string, err error) *LinkError {
	msg := "failed to decode upload"
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	return &LinkError{
		Code:    ErrDecodeFailed,
		Status:  422,
		Message: msg,
		Details: map[string]any{"kind": kind},
	}
}

// NewRateLimited creates a 429 error. retryAfter is in seconds.
func NewRateLimited(retryAfter int) *LinkError {
	return &LinkError{
		Code:    ErrRateLimited,
		Status:  429,
		Message: fmt.Sprintf("too many requests, retry in %ds", retryAfter),
		Details: map[string]any{"retry_after": retryAfter},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *LinkError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &LinkError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if err (or anything it wraps) is a LinkError with the given code.
func Is(err error, code ErrorCode) bool {
	var lErr *LinkError
	if stderrors.As(err, &lErr) {
		return lErr.Code == code
	}
	return false
}

// As returns the LinkError wrapped by err, or an internal error wrapping err.
func As(err error) *LinkError {
	var lErr *LinkError
	if stderrors.As(err, &lErr) {
		return lErr
	}
	return NewInternal(err)
}
