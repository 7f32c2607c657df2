package core

import "github.com/pkg/errors"

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

// ConfirmationRequiredError aborts a destructive operation that was not
// explicitly confirmed by the caller. No state is touched.
type ConfirmationRequiredError struct {
	Action string
}

func NewConfirmationRequiredError(action string) error {
	return &ConfirmationRequiredError{Action: action}
}

func (err ConfirmationRequiredError) Error() string {
	return "confirmation required to " + err.Action
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
