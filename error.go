package webmd

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"
	EFETCH    = "fetch_failed"
	EPARSE    = "parse_failed"
	EEXTRACT  = "extraction_failed"
)

// Error represents an application-specific error. Application errors can be
// unwrapped by the caller to extract out the code & message.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("webmd error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// FetchError reports a failed retrieval of a remote resource. StatusCode is
// zero when the request never produced a response.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying transport error, if any.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is a fetch failure worth retrying: a
// transport error, HTTP 429 or a 5xx response. Every other error,
// extraction failures included, is permanent.
func IsTransient(err error) bool {
	var fe *FetchError
	if !errors.As(err, &fe) {
		return false
	}
	return fe.StatusCode == 0 || fe.StatusCode == 429 || fe.StatusCode >= 500
}

// ErrorCode unwraps an application error and returns its code.
// Fetch errors report EFETCH. Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	var fe *FetchError
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	} else if errors.As(err, &fe) {
		return EFETCH
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	var fe *FetchError
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	} else if errors.As(err, &fe) {
		return fe.Error()
	}
	return "Internal error."
}
