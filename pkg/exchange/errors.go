package exchange

import (
	"errors"
	"fmt"
)

// ErrClosed is returned for requests issued after a fetcher was closed.
var ErrClosed = errors.New("exchange: client closed")

// ValidationError reports caller input outside the accepted enumeration
// for an operation, or a parameter combination the vendor forbids. It is
// raised before any network call.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotSupportedError reports an operation the contract defines but this
// adapter does not implement.
type NotSupportedError struct {
	Exchange string
	Feature  string
	Hint     string
}

func (e *NotSupportedError) Error() string {
	msg := fmt.Sprintf("exchange %q does not support %s", e.Exchange, e.Feature)
	if e.Hint != "" {
		msg += ". " + e.Hint
	}
	return msg
}

// TransportError carries the last network failure after the fetcher's
// retry budget is spent.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// VendorError is a failure the vendor reports inside a successful HTTP
// response envelope. Distinct from TransportError: the wire was fine, the
// request was not.
type VendorError struct {
	Exchange string
	Code     int
	Msg      string
}

func (e *VendorError) Error() string {
	return fmt.Sprintf("%s api error (code %d): %s", e.Exchange, e.Code, e.Msg)
}
