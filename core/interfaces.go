package core

import (
	"context"
	"time"
)

// Decoder turns container bytes of one format into a pixel grid.
// Implementations live in adapters/decoder/ and adapters/vips/.
type Decoder interface {
	// Decode parses data, which must be a valid instance of the decoder's
	// format, and returns ImageData with Image and Meta populated.
	Decode(ctx context.Context, data []byte) (*ImageData, error)
	// CanDecode reports whether this decoder handles the given format.
	CanDecode(format Format) bool
}

// Encoder serialises ImageData.Image to bytes in a target format.
// Implementations live in adapters/encoder/.
type Encoder interface {
	Encode(ctx context.Context, img *ImageData, opts EncodeOptions) ([]byte, error)
	CanEncode(format Format) bool
}

// EncodeOptions carries format-specific encoding parameters.
type EncodeOptions struct {
	Quality     int    // JPEG 1-100; 0 = use encoder default
	Compression string // PNG: "default", "none", "speed" or "best"
}

// PipelineRunner runs the conversion steps for a single input.  It is
// satisfied by pipeline.Pipeline; core does not import the pipeline package
// to avoid a circular dependency.
type PipelineRunner interface {
	Run(ctx context.Context, img *ImageData) (*ImageData, map[string]time.Duration, error)
}

// MetricsCollector receives observations about conversions.  Kind is the
// errors.Kind of a failed step, as a string to keep core free of that
// dependency.
type MetricsCollector interface {
	RecordProcessingTime(stepName string, d time.Duration)
	RecordThroughput(inputBytes int64)
	RecordError(stepName string, kind string)
}

// Logger is a minimal structured logging interface.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
}

// Registry maps Format values to Decoder/Encoder implementations.
type Registry interface {
	DecoderFor(format Format) (Decoder, bool)
	EncoderFor(format Format) (Encoder, bool)
	RegisterDecoder(format Format, d Decoder)
	RegisterEncoder(format Format, e Encoder)
}
