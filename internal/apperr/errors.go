package apperr

import "fmt"

type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// LookupError reports a key that has no entry in the loaded data:
// an unknown run, a query without artifacts or judgments, a missing document.
type LookupError struct {
	Kind string
	Key  string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

func NewLookup(kind, key string) *LookupError {
	return &LookupError{Kind: kind, Key: key}
}

// ConfigurationError is fatal at load time. Run is -1 when the error is
// not tied to a single run.
type ConfigurationError struct {
	Run     int
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Run < 0 {
		return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("configuration error: run %d: %s: %s", e.Run, e.Field, e.Message)
}

func NewConfiguration(run int, field, msg string) *ConfigurationError {
	return &ConfigurationError{Run: run, Field: field, Message: msg}
}

// MalformedInputError identifies a record of static input data that
// cannot be interpreted.
type MalformedInputError struct {
	Source string
	Line   int
	Record string
	Err    error
}

func (e *MalformedInputError) Error() string {
	msg := fmt.Sprintf("malformed record in %s", e.Source)
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
	}
	if e.Record != "" {
		msg += fmt.Sprintf(": %q", e.Record)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

func NewMalformedInput(source string, line int, record string, err error) *MalformedInputError {
	return &MalformedInputError{Source: source, Line: line, Record: record, Err: err}
}
