package core

import (
	"context"
	"image"
	"time"
)

// Format identifies an image container.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

// MimeType is the media type paired 1:1 with a Format.
type MimeType string

const (
	MimePNG  MimeType = "image/png"
	MimeJPEG MimeType = "image/jpeg"
)

// ColorSpace represents the image colour model.
type ColorSpace string

const (
	ColorSpaceRGB  ColorSpace = "rgb"
	ColorSpaceRGBA ColorSpace = "rgba"
	ColorSpaceCMYK ColorSpace = "cmyk"
	ColorSpaceGray ColorSpace = "gray"
)

// Metadata describes the decoded image.
type Metadata struct {
	Width      int
	Height     int
	Format     Format
	ColorSpace ColorSpace
	HasAlpha   bool
	SizeBytes  int64 // size of the encoded output, set by the encode step
}

// ImageData is the value passed through a pipeline.  Each step reads the
// products of the previous ones and fills in its own.
type ImageData struct {
	// Input is the string handed to Convert.
	Input string

	// Set by the parse step.
	DeclaredMime    string
	HasDeclaredMime bool
	Params          []string
	Payload         string

	// Format is the input container format resolved from the declaration.
	Format Format

	// Data holds the decoded payload bytes, and after encoding, the output
	// container bytes.
	Data []byte

	// Image is the pixel grid, an *image.NRGBA for all built-in decoders.
	Image image.Image

	// Meta is populated by the decode step.  Width and Height are never
	// changed afterwards.
	Meta Metadata

	// Set by the encode steps.
	OutputFormat Format
	Encoded      string
	DataURI      string
}

// ConversionResult is returned to the caller after a successful conversion.
type ConversionResult struct {
	Mime    MimeType `json:"mime"`
	Width   uint32   `json:"width"`
	Height  uint32   `json:"height"`
	DataURI string   `json:"data_uri"`

	// Observability.
	ProcessingTime time.Duration            `json:"-"`
	StepTimings    map[string]time.Duration `json:"-"`
}

// Job encapsulates a single conversion for the worker pool.
type Job struct {
	ID    string          // assigned by Submit when empty
	Ctx   context.Context //nolint:containedctx // intentional for async jobs
	Input string
	// Result channel; nil for fire-and-forget.
	ResultCh chan<- JobResult
}

// JobResult wraps the outcome of an async job.
type JobResult struct {
	JobID  string
	Result *ConversionResult
	Err    error
}

// Step is the fundamental pipeline building block.  Each Step transforms an
// *ImageData value and must be safe for concurrent use across goroutines.
type Step interface {
	Name() string
	Execute(ctx context.Context, img *ImageData) (*ImageData, error)
}

// Hook is an optional observer invoked around pipeline steps.
type Hook interface {
	BeforeStep(ctx context.Context, stepName string, img *ImageData)
	AfterStep(ctx context.Context, stepName string, img *ImageData, d time.Duration, err error)
}
