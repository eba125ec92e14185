// Package grayscaler converts base64 image payloads, bare or wrapped in a data
// URI, into grayscale PNG data URIs.
//
//	res, err := grayscaler.Convert("data:image/jpeg;base64,/9j/4AAQ...")
//	// res.Mime == "image/png", res.Width/res.Height from the decoded input,
//	// res.DataURI == "data:image/png;base64,iVBORw0KGgo..."
package grayscaler

import (
	"context"

	"github.com/Skryldev/grayscaler/adapters/decoder"
	"github.com/Skryldev/grayscaler/adapters/encoder"
	"github.com/Skryldev/grayscaler/config"
	"github.com/Skryldev/grayscaler/core"
	"github.com/Skryldev/grayscaler/pipeline"
)

// Re-export Format constants for convenience.
const (
	PNG  = core.FormatPNG
	JPEG = core.FormatJPEG
)

// Result is the outcome of a successful conversion.
type Result = core.ConversionResult

// DefaultConfig returns a sensible production configuration.
func DefaultConfig() config.Config { return config.Default() }

// Converter is the primary entry point.  It is safe for concurrent use once
// hooks are registered.
type Converter struct {
	proc *core.Processor
	reg  *core.DefaultRegistry
	pl   *pipeline.Pipeline
}

// New creates a fully wired Converter with the PNG and JPEG codecs
// registered.
func New(cfg config.Config) *Converter {
	reg := core.NewRegistry()
	reg.RegisterDecoder(core.FormatPNG, decoder.NewPNG())
	reg.RegisterDecoder(core.FormatJPEG, decoder.NewJPEG())
	reg.RegisterEncoder(core.FormatPNG, encoder.NewPNG(cfg.PNGCompression))
	reg.RegisterEncoder(core.FormatJPEG, encoder.NewJPEG(cfg.JPEGQuality))

	pl := pipeline.New().Use(pipeline.Standard(reg, cfg)...)
	return &Converter{proc: core.New(cfg, pl), reg: reg, pl: pl}
}

// Convert runs the conversion with a one-off Converter built from
// DefaultConfig.
func Convert(input string) (*Result, error) {
	return New(DefaultConfig()).Convert(context.Background(), input)
}

// Convert decodes input, converts it to grayscale and returns the re-encoded
// data URI along with the decoded image's dimensions.
func (c *Converter) Convert(ctx context.Context, input string) (*Result, error) {
	return c.proc.Process(ctx, input)
}

// Batch converts several inputs concurrently.  Results and errors are
// index-aligned with inputs.
func (c *Converter) Batch(ctx context.Context, inputs []string) ([]*Result, []error) {
	return c.proc.Batch(ctx, inputs)
}

// SetLogger attaches a structured logger.
func (c *Converter) SetLogger(l core.Logger) { c.proc.SetLogger(l) }

// SetMetrics attaches a metrics collector.
func (c *Converter) SetMetrics(m core.MetricsCollector) { c.proc.SetMetrics(m) }

// AddHook registers an observer for pipeline step events.  Register hooks
// before the first conversion.
func (c *Converter) AddHook(h core.Hook) { c.pl.AddHook(h) }

// RegisterDecoder registers a custom decoder for the given format.
func (c *Converter) RegisterDecoder(f core.Format, d core.Decoder) { c.reg.RegisterDecoder(f, d) }

// RegisterEncoder registers a custom encoder for the given format.
func (c *Converter) RegisterEncoder(f core.Format, e core.Encoder) { c.reg.RegisterEncoder(f, e) }

// Steps returns the pipeline's step names in execution order.
func (c *Converter) Steps() []string { return c.pl.Steps() }

// Start starts the background worker pool.
func (c *Converter) Start() { c.proc.Start() }

// Stop shuts down the worker pool.
func (c *Converter) Stop() { c.proc.Stop() }

// Submit enqueues an async job for the worker pool and returns its ID.
func (c *Converter) Submit(job core.Job) (string, error) { return c.proc.Submit(job) }

// Stats returns lightweight processing statistics.
func (c *Converter) Stats() (processed, errors int64) {
	return c.proc.ProcessedCount(), c.proc.ErrorCount()
}
