package internal

import (
	"errors"
	"net/http"
)

// HTTPError is an error carrying what the error handler needs to answer the
// visitor: a status code, a message and, optionally, a translation key.
type HTTPError struct {
	// Err is the underlying error. Logged, never shown.
	Err error

	// Message is the user-facing fallback text.
	Message string

	// MessageKey is a translation key that takes precedence over Message when
	// the request carries a translator.
	MessageKey string

	RequestID string

	Code int
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

func (e *HTTPError) StatusText() string {
	return http.StatusText(e.Code)
}

// Localize returns the message in the request language.
func (e *HTTPError) Localize(c Context) string {
	if e.MessageKey != "" {
		if s := c.T(e.MessageKey); s != e.MessageKey {
			return s
		}
	}
	if e.Message != "" {
		return e.Message
	}
	return e.StatusText()
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// NewHTTPError creates an HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	e := &HTTPError{Code: code, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func WithMessageKey(key string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.MessageKey = key
	}
}

func WithRequestID(id string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.RequestID = id
	}
}

func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message, opts...)
}

func ErrUnprocessable(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusUnprocessableEntity, message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message, opts...)
}

// ErrBadGateway reports a failed call to an upstream service such as the email relay.
func ErrBadGateway(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusBadGateway, message, opts...)
}

func IsHTTPError(err error) bool {
	var he *HTTPError
	return errors.As(err, &he)
}

// AsHTTPError extracts the HTTPError from err's chain, or returns nil.
func AsHTTPError(err error) *HTTPError {
	var he *HTTPError
	if errors.As(err, &he) {
		return he
	}
	return nil
}
