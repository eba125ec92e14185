package encoder

import (
	"context"
	"io"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/Skryldev/grayscaler/core"
	apperrors "github.com/Skryldev/grayscaler/errors"
	"github.com/Skryldev/grayscaler/utils"
)

// JPEG encodes images to JPEG format.  Only used when the input mime is
// preserved; alpha is dropped.
type JPEG struct {
	DefaultQuality int // used when EncodeOptions.Quality == 0
}

func NewJPEG(defaultQuality int) *JPEG {
	if defaultQuality <= 0 {
		defaultQuality = 85
	}
	return &JPEG{DefaultQuality: defaultQuality}
}

func (j *JPEG) CanEncode(format core.Format) bool {
	return format == core.FormatJPEG
}

func (j *JPEG) Encode(ctx context.Context, img *core.ImageData, opts core.EncodeOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.KindPipeline, "jpeg.encode", err)
	}
	if img == nil || img.Image == nil {
		return nil, apperrors.New(apperrors.KindEncode, "jpeg.encode", apperrors.ErrEmptyInput)
	}

	quality := opts.Quality
	if quality <= 0 {
		quality = j.DefaultQuality
	}

	data, err := utils.EncodePooled(func(w io.Writer) error {
		return imgio.JPEGEncoder(quality)(w, img.Image)
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindEncode, "jpeg.encode", err)
	}
	return data, nil
}
