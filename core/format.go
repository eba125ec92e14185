package core

import (
	"fmt"

	apperrors "github.com/Skryldev/grayscaler/errors"
)

// Mime returns the media type for f, or "" for an unknown format.
func (f Format) Mime() MimeType {
	switch f {
	case FormatPNG:
		return MimePNG
	case FormatJPEG:
		return MimeJPEG
	}
	return ""
}

// FormatForMime maps a media type to its Format.  Only exact matches on the
// supported types succeed.
func FormatForMime(m MimeType) (Format, bool) {
	switch m {
	case MimePNG:
		return FormatPNG, true
	case MimeJPEG:
		return FormatJPEG, true
	}
	return "", false
}

// ResolveFormat picks the input container format from a data URI declaration.
// An absent declaration means PNG.  A present one must name a supported type
// exactly; anything else is an unsupported_format error, never a fallback.
func ResolveFormat(mime string, declared bool) (Format, error) {
	if !declared {
		return FormatPNG, nil
	}
	f, ok := FormatForMime(MimeType(mime))
	if !ok {
		return "", apperrors.New(apperrors.KindUnsupportedFormat, "format.resolve",
			fmt.Errorf("%w: %q", apperrors.ErrUnsupportedFormat, mime))
	}
	return f, nil
}
