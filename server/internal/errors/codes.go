package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode represents a specific error type for assistant API operations.
type ErrorCode string

const (
	// ErrCodeInvalidArgument indicates invalid input parameters.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeCommandNotRecognized indicates the message matched no smart-home command.
	ErrCodeCommandNotRecognized ErrorCode = "COMMAND_NOT_RECOGNIZED"
	// ErrCodeMemberNotFound indicates the requested family member does not exist.
	ErrCodeMemberNotFound ErrorCode = "MEMBER_NOT_FOUND"
	// ErrCodeTurnInFlight indicates a turn is already being processed for the session.
	ErrCodeTurnInFlight ErrorCode = "TURN_IN_FLIGHT"
	// ErrCodeRateLimitExceeded indicates rate limit has been exceeded.
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	// ErrCodeInternal indicates an unexpected server failure.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// APIError is the stable error shape returned by every handler.
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *APIError) Unwrap() error {
	return e.Cause
}

// HTTPStatus maps the error code to an HTTP status.
func (e *APIError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeInvalidArgument, ErrCodeCommandNotRecognized:
		return http.StatusBadRequest
	case ErrCodeMemberNotFound:
		return http.StatusNotFound
	case ErrCodeTurnInFlight:
		return http.StatusConflict
	case ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *APIError {
	return &APIError{Code: ErrCodeInvalidArgument, Message: msg}
}

// CommandNotRecognized creates a command not recognized error.
func CommandNotRecognized(msg string) *APIError {
	return &APIError{Code: ErrCodeCommandNotRecognized, Message: msg}
}

// MemberNotFound creates a member not found error.
func MemberNotFound(memberID string) *APIError {
	return &APIError{
		Code:    ErrCodeMemberNotFound,
		Message: fmt.Sprintf("unknown family member: %s", memberID),
	}
}

// TurnInFlight creates a turn in flight error.
func TurnInFlight() *APIError {
	return &APIError{Code: ErrCodeTurnInFlight, Message: "a turn is already in progress for this session"}
}

// RateLimitExceeded creates a rate limit exceeded error.
func RateLimitExceeded(msg string) *APIError {
	return &APIError{Code: ErrCodeRateLimitExceeded, Message: msg}
}

// Internal wraps an unexpected failure.
func Internal(msg string, cause error) *APIError {
	return &APIError{Code: ErrCodeInternal, Message: msg, Cause: cause}
}
