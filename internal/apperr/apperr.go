// Package apperr carries the error taxonomy shared across the service.
// Every failure that crosses a package boundary has a machine-readable kind
// and a human-readable message.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation    Kind = "validation"
	KindExtraction    Kind = "extraction"
	KindStoreIO       Kind = "store_io"
	KindNotFound      Kind = "not_found"
	KindToolExecution Kind = "tool_execution"
	KindRunFailed     Kind = "run_failed"
	KindRunExpired    Kind = "run_expired"
	KindTimeout       Kind = "timeout"
	KindInternal      Kind = "internal"
)

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

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf classifies err, returning KindInternal for anything unclassified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
