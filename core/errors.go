package core

import (
	"fmt"

	"github.com/pkg/errors"
)

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
		return ""
	}
	return err.Err.Error()
}

// NotFoundError is returned when a referenced record does not exist.
type NotFoundError struct {
	Message string
}

func NewNotFoundError(msg string) *NotFoundError {
	return &NotFoundError{Message: msg}
}

func (err NotFoundError) Error() string {
	return err.Message
}

func IsNotFound(err error) bool {
	_, ok := errors.Cause(err).(*NotFoundError)
	return ok
}

// PersistenceError wraps any failure reported by the database driver.
type PersistenceError struct {
	Op  string
	Err error
}

func NewPersistenceError(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

func (err PersistenceError) Error() string {
	return err.Err.Error()
}

func (err PersistenceError) Unwrap() error {
	return err.Err
}

// UploadRejectedError is returned before anything is written to disk.
type UploadRejectedError struct {
	Reason   string
	TooLarge bool
}

func NewUploadRejectedError(tooLarge bool, format string, args ...interface{}) error {
	return &UploadRejectedError{Reason: fmt.Sprintf(format, args...), TooLarge: tooLarge}
}

func (err UploadRejectedError) Error() string {
	return err.Reason
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
