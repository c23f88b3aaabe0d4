// Package apperr defines the error kinds shared across the application.
// Stores and services wrap underlying failures in an *Error so handlers can
// map them to HTTP status codes without inspecting error strings.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindValidation
	KindRender
	KindExternal
	KindInvalidInput
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindRender:
		return "render"
	case KindExternal:
		return "external_service"
	case KindInvalidInput:
		return "invalid_input"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func NotFound(msg string) *Error {
	return New(KindNotFound, msg)
}

func Validation(msg string) *Error {
	return New(KindValidation, msg)
}

func InvalidInput(msg string) *Error {
	return New(KindInvalidInput, msg)
}

// KindOf reports the Kind carried by err, or KindUnknown when err is not an
// *Error anywhere in its chain.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// IsNotFound is the check stores use to swallow missing-object reads.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
