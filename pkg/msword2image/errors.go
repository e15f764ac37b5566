// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package msword2image

import "errors"

// Kind classifies a conversion failure.
type Kind string

const (
	// KindUsage covers calls made in the wrong order or with bad arguments.
	KindUsage Kind = "usage"
	// KindFilesystem covers unreadable inputs and unwritable destinations.
	KindFilesystem Kind = "filesystem"
	// KindTransport covers everything reported by the HTTP exchange.
	KindTransport Kind = "transport"
)

var (
	ErrInputNotSet        = errors.New("input was not set: call FromFile or FromURL first")
	ErrOutputNotSet       = errors.New("output was not set")
	ErrInvalidCombination = errors.New("invalid input/output combination")
	ErrNoHTTPClient       = errors.New("an HTTP client is required")
	ErrInvalidFormat      = errors.New("invalid image format")
)

// Error is the only error type returned by Converter operations. Callers
// can switch on Kind or match the sentinel errors with errors.Is.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "msword2image: " + e.Msg
	}
	if e.Msg == "" {
		return "msword2image: " + e.Err.Error()
	}
	return "msword2image: " + e.Msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func usageError(err error, msg string) *Error {
	return &Error{Kind: KindUsage, Msg: msg, Err: err}
}

func filesystemError(err error, msg string) *Error {
	return &Error{Kind: KindFilesystem, Msg: msg, Err: err}
}

func transportError(err error) *Error {
	return &Error{Kind: KindTransport, Err: err}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
