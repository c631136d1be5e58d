package router

import (
	"fmt"
)

// Error codes
const (
	ErrInternalCode           = "INTERNAL_ERROR"
	ErrServiceUnavailableCode = "SERVICE_UNAVAILABLE"
)

// Problem codes specific to the product routes.
const (
	ProductErrNotFoundCode    = "product_not_found"
	ProductErrInvalidBodyCode = "invalid_body"
	ProductErrSourceDownCode  = "catalog_source_unavailable"
)

// Error represents errors that can occur during server operations
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewServerError creates a new server Error
func NewServerError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapServerError wraps an existing error with a server error
func WrapServerError(code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}
