package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType classifies the failures a crawl can hit. None of them are
// recovered locally; every one aborts the run.
type ErrorType string

const (
	ErrorTypeTransport  ErrorType = "transport"
	ErrorTypeHTTPStatus ErrorType = "http_status"
	ErrorTypeDecode     ErrorType = "decode"
	ErrorTypeFilesystem ErrorType = "filesystem"
)

// Error is a typed crawl error. Code holds the HTTP status for
// http_status errors and is zero otherwise.
type Error struct {
	Type    ErrorType
	Message string
	Code    int
	Err     error
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s error (code %d): %s", e.Type, e.Code, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Transport wraps a connectivity failure.
func Transport(err error) *Error {
	return &Error{
		Type:    ErrorTypeTransport,
		Message: fmt.Sprintf("network error: %v", err),
		Err:     err,
	}
}

// HTTPStatus reports a non-success response status.
func HTTPStatus(code int) *Error {
	return &Error{
		Type:    ErrorTypeHTTPStatus,
		Message: fmt.Sprintf("unexpected status code: %d", code),
		Code:    code,
	}
}

// Decode wraps a malformed response body.
func Decode(err error) *Error {
	return &Error{
		Type:    ErrorTypeDecode,
		Message: fmt.Sprintf("failed to parse response: %v", err),
		Err:     err,
	}
}

// Filesystem wraps a write/rename/compress/delete failure. op names the
// operation that failed.
func Filesystem(op string, err error) *Error {
	return &Error{
		Type:    ErrorTypeFilesystem,
		Message: fmt.Sprintf("%s: %v", op, err),
		Err:     err,
	}
}

// IsType reports whether err is (or wraps) an Error of the given type.
func IsType(err error, t ErrorType) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type == t
	}
	return false
}
