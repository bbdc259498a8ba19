package util

import (
	"errors"
	"net/http"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrUpstream     = errors.New("upstream service failed")
)

// appError carries a client-facing message while still matching one of the
// sentinel kinds above through errors.Is.
type appError struct {
	kind error
	msg  string
}

func (e *appError) Error() string { return e.msg }

func (e *appError) Unwrap() error { return e.kind }

func Validation(msg string) error   { return &appError{kind: ErrValidation, msg: msg} }
func NotFound(msg string) error     { return &appError{kind: ErrNotFound, msg: msg} }
func Conflict(msg string) error     { return &appError{kind: ErrConflict, msg: msg} }
func Unauthorized(msg string) error { return &appError{kind: ErrUnauthorized, msg: msg} }
func Forbidden(msg string) error    { return &appError{kind: ErrForbidden, msg: msg} }
func Upstream(msg string) error     { return &appError{kind: ErrUpstream, msg: msg} }

func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
