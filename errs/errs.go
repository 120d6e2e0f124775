// Package errs provides structured error types and helpers for the Alpaca client.
package errs

import (
	"errors"
	"strconv"
	"strings"
)

// Code identifies the failure category of an error envelope.
type Code string

const (
	// CodeTransport indicates a socket or HTTP connection failure.
	CodeTransport Code = "transport"
	// CodeProtocol indicates a malformed or undecodable frame, or an unknown discriminant.
	CodeProtocol Code = "protocol"
	// CodeVendor indicates an error reported by Alpaca, either as an HTTP status
	// or as a realtime error message.
	CodeVendor Code = "vendor"
	// CodeSerialization indicates a JSON encode/decode failure unrelated to protocol shape.
	CodeSerialization Code = "serialization"
)

// Family identifies the REST resource family an error belongs to. The vendor
// documents status-code semantics per family, so the mapping is keyed on it.
type Family string

const (
	FamilyAssets     Family = "assets"
	FamilyOrders     Family = "orders"
	FamilyPositions  Family = "positions"
	FamilyWatchlists Family = "watchlists"
	FamilyHistory    Family = "history"
	FamilyStream     Family = "stream"
)

// ErrConnClosed reports use of a connection handle after it was split or closed.
var ErrConnClosed = errors.New("connection handle closed")

// E captures structured error information produced across the client.
type E struct {
	Family  Family
	Code    Code
	HTTP    int
	RawCode string
	RawMsg  string
	Message string

	cause error
}

// Option configures an error envelope.
type Option func(*E)

// New constructs an error envelope for the resource family and error code.
func New(family Family, code Code, opts ...Option) *E {
	e := &E{Family: family, Code: code}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// WithMessage attaches a human-readable message to the error.
func WithMessage(message string) Option {
	trimmed := strings.TrimSpace(message)
	return func(e *E) {
		e.Message = trimmed
	}
}

// WithHTTP records the associated HTTP status code.
func WithHTTP(status int) Option {
	return func(e *E) {
		e.HTTP = status
	}
}

// WithRawCode captures the raw vendor error code.
func WithRawCode(code string) Option {
	trimmed := strings.TrimSpace(code)
	return func(e *E) {
		e.RawCode = trimmed
	}
}

// WithRawMessage captures the raw vendor error message.
func WithRawMessage(msg string) Option {
	return func(e *E) {
		e.RawMsg = msg
	}
}

// WithCause sets the underlying cause error.
func WithCause(err error) Option {
	return func(e *E) {
		e.cause = err
	}
}

func (e *E) Error() string {
	if e == nil {
		return "<nil>"
	}
	var parts []string

	family := strings.TrimSpace(string(e.Family))
	if family == "" {
		family = "unknown"
	}
	parts = append(parts, "family="+family)

	code := strings.TrimSpace(string(e.Code))
	if code == "" {
		code = "unknown"
	}
	parts = append(parts, "code="+code)

	if e.HTTP > 0 {
		parts = append(parts, "http="+strconv.Itoa(e.HTTP))
	}
	if e.Message != "" {
		parts = append(parts, "message="+strconv.Quote(e.Message))
	}
	if e.RawCode != "" {
		parts = append(parts, "raw_code="+strconv.Quote(e.RawCode))
	}
	if e.RawMsg != "" {
		parts = append(parts, "raw_msg="+strconv.Quote(e.RawMsg))
	}
	if e.cause != nil {
		parts = append(parts, "cause="+strconv.Quote(e.cause.Error()))
	}

	return strings.Join(parts, " ")
}

func (e *E) Unwrap() error { return e.cause }

// Transport wraps a connection-level failure.
func Transport(family Family, cause error) *E {
	return New(family, CodeTransport, WithCause(cause))
}

// Serialization wraps a JSON encode/decode failure.
func Serialization(family Family, cause error) *E {
	return New(family, CodeSerialization, WithCause(cause))
}

// Protocol reports a malformed or undecodable frame.
func Protocol(family Family, msg string, cause error) *E {
	return New(family, CodeProtocol, WithMessage(msg), WithCause(cause))
}

// UnknownVariant reports a frame whose discriminant matches no known variant.
func UnknownVariant(family Family, field, tag string) *E {
	return New(family, CodeProtocol,
		WithMessage("unknown "+field+" discriminant"),
		WithRawCode(tag))
}

// HasCode reports whether err carries an envelope with the given code.
func HasCode(err error, code Code) bool {
	var e *E
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == code
}
