package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a conversion failure so callers can react without parsing
// messages.
type Kind string

const (
	KindMalformedDataURI  Kind = "malformed_data_uri"
	KindUnsupportedFormat Kind = "unsupported_format"
	KindInvalidEncoding   Kind = "invalid_encoding"
	KindDecode            Kind = "decode"
	KindEncode            Kind = "encode"
	KindInput             Kind = "input"
	KindPipeline          Kind = "pipeline"
	KindConfig            Kind = "config"
)

// ConversionError is the structured error type used throughout the module.
type ConversionError struct {
	Kind Kind
	Op   string // operation name
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Op, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// New creates a ConversionError.
func New(kind Kind, op string, err error) *ConversionError {
	return &ConversionError{Kind: kind, Op: op, Err: err}
}

// Wrap wraps an existing error with context.  A nil err yields nil.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return New(kind, op, err)
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// KindOf returns the kind of the outermost ConversionError in err's chain, or
// the empty Kind when there is none.
func KindOf(err error) Kind {
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

// Sentinel errors for common failure modes.
var (
	ErrMissingComma      = errors.New("data uri has no ',' separator")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrFormatMismatch    = errors.New("payload container does not match declared format")
	ErrEmptyInput        = errors.New("empty input")
	ErrInputTooLarge     = errors.New("input exceeds size limit")
	ErrWorkerPoolFull    = errors.New("worker pool queue full")
	ErrStopped           = errors.New("processor stopped")
)
