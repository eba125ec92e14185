// Package decoder provides format-specific image decoders.
package decoder

import (
	"fmt"
	"image"

	"github.com/gabriel-vasile/mimetype"
	xdraw "golang.org/x/image/draw"

	"github.com/Skryldev/grayscaler/core"
	apperrors "github.com/Skryldev/grayscaler/errors"
)

// CheckContainer sniffs data and fails when it is recognisably an image
// container other than want, e.g. JPEG bytes declared as image/png.
// Unrecognised data passes; the format decoder rejects it instead.
func CheckContainer(op string, want core.Format, data []byte) error {
	detected := mimetype.Detect(data)
	got, known := core.FormatForMime(core.MimeType(detected.String()))
	if !known || got == want {
		return nil
	}
	return apperrors.New(apperrors.KindDecode, op,
		fmt.Errorf("%w: declared %s, payload is %s", apperrors.ErrFormatMismatch, want.Mime(), detected))
}

// Normalize copies src into a fresh 8-bit non-premultiplied RGBA grid whose
// bounds start at the origin.
// NRGBA sources are copied row by row so partially transparent pixels keep
// their exact channel values.
func Normalize(src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if n, ok := src.(*image.NRGBA); ok {
		rowLen := b.Dx() * 4
		for y := 0; y < b.Dy(); y++ {
			off := n.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+rowLen], n.Pix[off:off+rowLen])
		}
		return dst
	}
	xdraw.Copy(dst, image.Point{}, src, b, xdraw.Src, nil)
	return dst
}

// NewImageData builds the decode result for a normalised source image.
func NewImageData(src image.Image, format core.Format) *core.ImageData {
	pix := Normalize(src)
	return &core.ImageData{
		Format: format,
		Image:  pix,
		Meta: core.Metadata{
			Width:      pix.Bounds().Dx(),
			Height:     pix.Bounds().Dy(),
			Format:     format,
			ColorSpace: colorSpace(src),
			HasAlpha:   hasAlpha(src),
		},
	}
}

// colorSpace returns the colour space of the source image before
// normalisation.
func colorSpace(img image.Image) core.ColorSpace {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return core.ColorSpaceGray
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		return core.ColorSpaceRGBA
	case *image.CMYK:
		return core.ColorSpaceCMYK
	}
	return core.ColorSpaceRGB
}

func hasAlpha(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	return false
}
