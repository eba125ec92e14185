//go:build vips

// Package vips provides a libvips-backed decoder for PNG and JPEG payloads.
// It produces the same normalised pixel grid as the stdlib decoders, so the
// rest of the pipeline is unchanged.
package vips

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"runtime"

	govips "github.com/davidbyttow/govips/v2/vips"

	"github.com/Skryldev/grayscaler/adapters/decoder"
	"github.com/Skryldev/grayscaler/core"
	apperrors "github.com/Skryldev/grayscaler/errors"
)

// BackendConfig configures the libvips backend.
type BackendConfig struct {
	MaxCacheSize int
	MaxWorkers   int
	ReportLeaks  bool
}

// Backend owns the libvips runtime.  Safe for concurrent use across
// goroutines.
type Backend struct {
	cfg BackendConfig
}

// NewBackend initialises libvips and returns a ready Backend.
// Call Shutdown() when the process exits.
func NewBackend(cfg BackendConfig) *Backend {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = runtime.NumCPU()
	}
	govips.Startup(&govips.Config{
		ConcurrencyLevel: cfg.MaxWorkers,
		MaxCacheSize:     cfg.MaxCacheSize,
		ReportLeaks:      cfg.ReportLeaks,
	})
	return &Backend{cfg: cfg}
}

// Shutdown releases all libvips resources. Call once at process exit.
func (b *Backend) Shutdown() {
	govips.Shutdown()
}

// Decoder returns a decoder bound to one container format.
func (b *Backend) Decoder(f core.Format) *Decoder {
	return &Decoder{format: f}
}

// RegisterVipsBackend replaces the stdlib decoders with libvips for PNG and
// JPEG.  Encoders are left untouched.
func RegisterVipsBackend(reg core.Registry, b *Backend) {
	for _, f := range []core.Format{core.FormatPNG, core.FormatJPEG} {
		reg.RegisterDecoder(f, b.Decoder(f))
	}
}

// ─── Decoder ──────────────────────────────────────────────────────────────────

// Decoder decodes one container format through libvips.
type Decoder struct {
	format core.Format
}

func (d *Decoder) CanDecode(f core.Format) bool { return f == d.format }

func (d *Decoder) Decode(ctx context.Context, data []byte) (*core.ImageData, error) {
	op := "vips.decode." + string(d.format)
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.KindPipeline, op, err)
	}
	if len(data) == 0 {
		return nil, apperrors.New(apperrors.KindDecode, op, apperrors.ErrEmptyInput)
	}

	ref, err := govips.NewImageFromBuffer(data)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindDecode, op, err)
	}
	defer ref.Close()

	if got := vipsFormatToCore(ref.Format()); got != d.format {
		return nil, apperrors.New(apperrors.KindDecode, op,
			fmt.Errorf("%w: declared %s, payload is %s", apperrors.ErrFormatMismatch, d.format.Mime(), describe(got)))
	}

	// Export losslessly and hand the pixels to the shared normaliser.
	ep := govips.NewPngExportParams()
	ep.Compression = 0
	buf, _, err := ref.ExportPng(ep)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindDecode, op, err)
	}
	img, err := png.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindDecode, op, err)
	}

	out := decoder.NewImageData(img, d.format)
	out.Meta.ColorSpace = vipsInterpretationToColorSpace(ref.Interpretation())
	out.Meta.HasAlpha = ref.HasAlpha()
	return out, nil
}

// ─── helpers ──────────────────────────────────────────────────────────────────

func vipsFormatToCore(f govips.ImageType) core.Format {
	switch f {
	case govips.ImageTypeJPEG:
		return core.FormatJPEG
	case govips.ImageTypePNG:
		return core.FormatPNG
	}
	return ""
}

func describe(f core.Format) string {
	if f == "" {
		return "another format"
	}
	return string(f.Mime())
}

func vipsInterpretationToColorSpace(i govips.Interpretation) core.ColorSpace {
	switch i {
	case govips.InterpretationBW, govips.InterpretationGrey16:
		return core.ColorSpaceGray
	case govips.InterpretationCMYK:
		return core.ColorSpaceCMYK
	}
	return core.ColorSpaceRGB
}

// compile-time interface checks
var _ core.Decoder = (*Decoder)(nil)
