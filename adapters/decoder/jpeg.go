package decoder

import (
	"bytes"
	"context"
	"image/jpeg"

	"github.com/Skryldev/grayscaler/core"
	apperrors "github.com/Skryldev/grayscaler/errors"
)

// JPEG decodes baseline and progressive JPEG images using the standard
// library.
type JPEG struct{}

// NewJPEG returns an initialised JPEG decoder.
func NewJPEG() *JPEG { return &JPEG{} }

func (j *JPEG) CanDecode(format core.Format) bool {
	return format == core.FormatJPEG
}

func (j *JPEG) Decode(ctx context.Context, data []byte) (*core.ImageData, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.KindPipeline, "jpeg.decode", err)
	}
	if len(data) == 0 {
		return nil, apperrors.New(apperrors.KindDecode, "jpeg.decode", apperrors.ErrEmptyInput)
	}
	if err := CheckContainer("jpeg.decode", core.FormatJPEG, data); err != nil {
		return nil, err
	}

	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindDecode, "jpeg.decode", err)
	}
	return NewImageData(img, core.FormatJPEG), nil
}
