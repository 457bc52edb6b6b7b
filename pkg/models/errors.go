package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so callers can branch without matching on messages
type ErrorKind string

const (
	// KindConfigInvalid indicates the configuration failed validation
	KindConfigInvalid ErrorKind = "config_invalid"
	// KindDirectoryNotFound indicates a required input directory is missing
	KindDirectoryNotFound ErrorKind = "directory_not_found"
	// KindCopyFailure indicates a single file could not be copied
	KindCopyFailure ErrorKind = "copy_failure"
	// KindUnhandled covers anything else that stops a run
	KindUnhandled ErrorKind = "unhandled"
)

// Error is a typed error carrying a kind, the path involved and the cause
type Error struct {
	Kind    ErrorKind
	Path    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a typed error
func NewError(kind ErrorKind, path, message string, err error) *Error {
	return &Error{Kind: kind, Path: path, Message: message, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnhandled
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnhandled
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
