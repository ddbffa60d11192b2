package errors

import (
	"errors"
	"fmt"
)

// Code is a stable identifier for a failure category.
type Code string

const (
	// ParseError indicates malformed mapping input.
	ParseError Code = "PARSE_ERROR"
	// ConfigError indicates an invalid format, variant, option or path selection.
	ConfigError Code = "CONFIG_ERROR"
	// ConsistencyError indicates contradictory facts or a violated precondition.
	ConsistencyError Code = "CONSISTENCY_ERROR"
	// IOError indicates a filesystem or archive failure.
	IOError Code = "IO_ERROR"
)

// Location points at the offending input of a parse failure.
type Location struct {
	File string
	Line int
}

// String renders the location as file:line, omitting unknown parts.
func (l Location) String() string {
	switch {
	case l.File == "" && l.Line == 0:
		return ""
	case l.Line == 0:
		return l.File
	case l.File == "":
		return fmt.Sprintf("line %d", l.Line)
	default:
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	}
}

// Error is a categorized failure with an optional location and cause.
type Error struct {
	Code     Code
	Message  string
	Location Location
	cause    error
}

// New creates an Error with the given code.
func New(code Code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Parse creates a PARSE_ERROR pointing at file and line.
func Parse(file string, line int, message string, cause error) *Error {
	return New(ParseError, message, cause).WithLocation(file, line)
}

// Config creates a CONFIG_ERROR.
func Config(message string, cause error) *Error {
	return New(ConfigError, message, cause)
}

// Consistency creates a CONSISTENCY_ERROR.
func Consistency(message string, cause error) *Error {
	return New(ConsistencyError, message, cause)
}

// IO creates an IO_ERROR.
func IO(message string, cause error) *Error {
	return New(IOError, message, cause)
}

// Configf formats a CONFIG_ERROR message.
func Configf(format string, args ...any) *Error {
	return Config(fmt.Sprintf(format, args...), nil)
}

// Consistencyf formats a CONSISTENCY_ERROR message.
func Consistencyf(format string, args ...any) *Error {
	return Consistency(fmt.Sprintf(format, args...), nil)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if loc := e.Location.String(); loc != "" {
		msg = loc + ": " + msg
	}

	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, msg, e.cause)
	}

	return fmt.Sprintf("[%s] %s", e.Code, msg)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// WithLocation attaches a file and line to the error.
func (e *Error) WithLocation(file string, line int) *Error {
	e.Location = Location{File: file, Line: line}
	return e
}

// CodeOf returns the code of the first categorized error in err's chain.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}

	return "", false
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	c, ok := CodeOf(err)
	return ok && c == code
}

// IsParse reports whether err is a PARSE_ERROR.
func IsParse(err error) bool { return Is(err, ParseError) }

// IsConfig reports whether err is a CONFIG_ERROR.
func IsConfig(err error) bool { return Is(err, ConfigError) }

// IsConsistency reports whether err is a CONSISTENCY_ERROR.
func IsConsistency(err error) bool { return Is(err, ConsistencyError) }

// IsIO reports whether err is an IO_ERROR.
func IsIO(err error) bool { return Is(err, IOError) }
