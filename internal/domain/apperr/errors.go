// Package apperr carries the error taxonomy of the CLI: every failure that
// reaches main is classified by a Kind, and main maps kinds to exit codes.
package apperr

import "errors"

// Kind classifies a failure for exit-code and messaging purposes.
type Kind int

const (
	// KindUnknown is the zero Kind, reported for untyped errors.
	KindUnknown Kind = iota
	// KindArgument covers missing, invalid, or incompatible flags
	// (e.g. start_date without start_time).
	KindArgument
	// KindNotFound covers a missing input file or a download date absent
	// from the TAIFEX page.
	KindNotFound
	// KindParse covers malformed CSV structure and unparseable
	// date/time/price fields.
	KindParse
	// KindDownload covers HTTP and archive failures while fetching data.
	KindDownload
	// KindIO covers output-side filesystem failures.
	KindIO
)

// Error is a kind-carrying error with a human-readable message and an
// optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a classified error wrapping an optional cause.
func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the Kind from err, unwrapping as needed.
// Untyped errors report KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
