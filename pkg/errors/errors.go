package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the stage of a run an error came from
type ErrorType string

const (
	ErrorTypeToken       ErrorType = "token"
	ErrorTypeSearch      ErrorType = "search"
	ErrorTypeParsing     ErrorType = "parsing"
	ErrorTypeNetwork     ErrorType = "network"
	ErrorTypeFilesystem  ErrorType = "filesystem"
	ErrorTypeContentType ErrorType = "content_type"
	ErrorTypeUnknown     ErrorType = "unknown"
)

// ErrNoResults is returned when a search page could not be fetched
var ErrNoResults = stderrors.New("search page returned no results")

// Error represents a scraper error with type information
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

// New creates a typed error without a cause
func New(errorType ErrorType, message string) *Error {
	return &Error{Type: errorType, Message: message}
}

// Wrap creates a typed error around a cause
func Wrap(errorType ErrorType, err error, message string) *Error {
	return &Error{Type: errorType, Message: fmt.Sprintf("%s: %v", message, err), Err: err}
}

// TypeOf returns the ErrorType of the first *Error in the chain
func TypeOf(err error) ErrorType {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return ErrorTypeUnknown
}

// IsFatal checks if an error must abort the whole run.
// Download-level failures (network, content type) only skip one file.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	switch TypeOf(err) {
	case ErrorTypeNetwork, ErrorTypeContentType:
		return false
	default:
		return true
	}
}
