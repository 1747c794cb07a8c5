package model

import "errors"

var (
	ErrValidation        = errors.New("validation error") // 400
	ErrUnauthorized      = errors.New("unauthorized")     // 401
	ErrForbidden         = errors.New("forbidden")        // 403
	ErrNotFound          = errors.New("not found")        // 404
	ErrBadGateway        = errors.New("bad gateway")      // 5xx
	ErrTransport         = errors.New("transport error")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrConversionAborted = errors.New("stock conversion aborted")
	ErrLoginFailed       = errors.New("login failed")
)

// FieldError is one entry of a backend validation map, in the order the backend sent it.
type FieldError struct {
	Field    string
	Messages []string
}

// APIError is a non-2xx backend response. Message is the backend text as is.
type APIError struct {
	Status  int
	Message string
	Fields  []FieldError
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Unwrap() error {
	switch {
	case e.Status == 401:
		return ErrUnauthorized
	case e.Status == 403:
		return ErrForbidden
	case e.Status == 404:
		return ErrNotFound
	case e.Status == 400 || e.Status == 422:
		return ErrValidation
	case e.Status >= 500:
		return ErrBadGateway
	default:
		return nil
	}
}
