package core

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Kind tags an error so that callers can branch on it without matching messages.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindNotFound
	KindValidation
	KindRemote
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindValidation:
		return "ValidationFailure"
	case KindRemote:
		return "RemoteFailure"
	default:
		return "Unknown"
	}
}

// KindOf returns the Kind of the root cause of `err`.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case IsNotFound(err):
		return KindNotFound
	case IsValidation(err):
		return KindValidation
	case IsRemoteFailure(err):
		return KindRemote
	default:
		return KindUnknown
	}
}

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Field + ": " + err.Fields[0].Error
		}
		return ""
	}
	return err.Err.Error()
}

func IsValidation(err error) bool {
	switch errors.Cause(err).(type) {
	case *ValidationError, validator.ValidationErrors:
		return true
	}
	return false
}

type notFound struct {
	entity string
}

// NewNotFoundError is meant for package-level sentinels, e.g. `ErrNotFound = core.NewNotFoundError("course")`.
func NewNotFoundError(entity string) error {
	return &notFound{entity: entity}
}

func (nf notFound) Error() string {
	return nf.entity + " not found"
}

func IsNotFound(err error) bool {
	_, ok := errors.Cause(err).(*notFound)
	return ok
}

// RemoteError is an opaque failure of the record store (transport error, unexpected status, `success: false`...).
type RemoteError struct {
	Op  string
	Err error
}

func NewRemoteError(op string, err error) error {
	return &RemoteError{Op: op, Err: err}
}

func (re RemoteError) Error() string {
	if re.Err == nil {
		return re.Op + ": remote failure"
	}
	return re.Op + ": " + re.Err.Error()
}

// Unwrap exposes the underlying error to errors.Is/As, errors.Cause stops here.
func (re RemoteError) Unwrap() error { return re.Err }

func IsRemoteFailure(err error) bool {
	_, ok := errors.Cause(err).(*RemoteError)
	return ok
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
