package decoder

import (
	"bytes"
	"context"
	"image/png"

	"github.com/Skryldev/grayscaler/core"
	apperrors "github.com/Skryldev/grayscaler/errors"
)

// PNG decodes PNG images using the standard library.
type PNG struct{}

func NewPNG() *PNG { return &PNG{} }

func (p *PNG) CanDecode(format core.Format) bool {
	return format == core.FormatPNG
}

func (p *PNG) Decode(ctx context.Context, data []byte) (*core.ImageData, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.KindPipeline, "png.decode", err)
	}
	if len(data) == 0 {
		return nil, apperrors.New(apperrors.KindDecode, "png.decode", apperrors.ErrEmptyInput)
	}
	if err := CheckContainer("png.decode", core.FormatPNG, data); err != nil {
		return nil, err
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindDecode, "png.decode", err)
	}
	return NewImageData(img, core.FormatPNG), nil
}
