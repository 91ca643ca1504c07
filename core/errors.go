package core

import "github.com/pkg/errors"

// FieldError pins a message to a single payload field. The API error
// handler turns these into the field-to-message maps the dashboard renders
// inline next to inputs.
type FieldError struct {
	Field string
	Error string
}

// ValidationError carries what a request got wrong: an overall cause and
// zero or more per-field messages. Signup duplicate emails and unknown role
// values surface this way rather than as bare 4xx strings.
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

// shutdown marks an integrity failure the server cannot recover from in
// place; the API error handler checks for it and stops the process.
type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

// IsShutdown reports whether err, at its cause, requests a server stop.
func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
