// Package encoder provides format-specific image encoders.
package encoder

import (
	"context"
	"image/png"
	"io"

	"github.com/disintegration/imaging"

	"github.com/Skryldev/grayscaler/config"
	"github.com/Skryldev/grayscaler/core"
	apperrors "github.com/Skryldev/grayscaler/errors"
	"github.com/Skryldev/grayscaler/utils"
)

// PNG encodes images to PNG format.
type PNG struct {
	DefaultCompression string // used when EncodeOptions.Compression is empty
}

func NewPNG(defaultCompression string) *PNG {
	if defaultCompression == "" {
		defaultCompression = config.PNGCompressionDefault
	}
	return &PNG{DefaultCompression: defaultCompression}
}

func (p *PNG) CanEncode(format core.Format) bool { return format == core.FormatPNG }

func (p *PNG) Encode(ctx context.Context, img *core.ImageData, opts core.EncodeOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.KindPipeline, "png.encode", err)
	}
	if img == nil || img.Image == nil {
		return nil, apperrors.New(apperrors.KindEncode, "png.encode", apperrors.ErrEmptyInput)
	}

	name := opts.Compression
	if name == "" {
		name = p.DefaultCompression
	}

	data, err := utils.EncodePooled(func(w io.Writer) error {
		return imaging.Encode(w, img.Image, imaging.PNG, imaging.PNGCompressionLevel(compressionLevel(name)))
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindEncode, "png.encode", err)
	}
	return data, nil
}

func compressionLevel(name string) png.CompressionLevel {
	switch name {
	case config.PNGCompressionNone:
		return png.NoCompression
	case config.PNGCompressionSpeed:
		return png.BestSpeed
	case config.PNGCompressionBest:
		return png.BestCompression
	}
	return png.DefaultCompression
}
