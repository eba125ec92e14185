// Package b64 converts between byte buffers and standard base64 text.
//
// Decoding accepts both padded and unpadded input but is strict about
// everything else, and failures name the offending symbol and its offset.
package b64

import (
	"encoding/base64"
	"fmt"

	apperrors "github.com/Skryldev/grayscaler/errors"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

const (
	padChar = '='
	invalid = 0xFF
)

var decodeMap [256]byte

func init() {
	for i := range decodeMap {
		decodeMap[i] = invalid
	}
	for i := 0; i < len(alphabet); i++ {
		decodeMap[alphabet[i]] = byte(i)
	}
}

// Reason describes why a symbol was rejected.
type Reason string

const (
	ReasonInvalidByte       Reason = "invalid byte"
	ReasonInvalidLastSymbol Reason = "invalid last symbol"
	ReasonInvalidLength     Reason = "invalid length"
	ReasonInvalidPadding    Reason = "invalid padding"
)

// SymbolError locates a decoding failure.  Byte is the rejected input byte and
// Offset its zero-based position in the text passed to Decode.
type SymbolError struct {
	Reason Reason
	Byte   byte
	Offset int
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("%s %d, offset %d", e.Reason, e.Byte, e.Offset)
}

// Decode decodes standard base64 text.  Padding is optional; when present it
// must complete the final quantum.  The unused low bits of the last symbol
// must be zero.  Failures are invalid_encoding errors wrapping *SymbolError.
func Decode(text string) ([]byte, error) {
	body := text
	for len(body) > 0 && body[len(body)-1] == padChar {
		body = body[:len(body)-1]
	}
	pad := len(text) - len(body)

	for i := 0; i < len(body); i++ {
		if decodeMap[body[i]] == invalid {
			return nil, fail(ReasonInvalidByte, body[i], i)
		}
	}

	rem := len(body) % 4
	if pad > 0 && (pad > 2 || rem == 0 || len(text)%4 != 0) {
		return nil, fail(ReasonInvalidPadding, padChar, len(body))
	}

	last := len(body) - 1
	switch rem {
	case 1:
		return nil, fail(ReasonInvalidLength, body[last], last)
	case 2:
		if decodeMap[body[last]]&0x0F != 0 {
			return nil, fail(ReasonInvalidLastSymbol, body[last], last)
		}
	case 3:
		if decodeMap[body[last]]&0x03 != 0 {
			return nil, fail(ReasonInvalidLastSymbol, body[last], last)
		}
	}

	out, err := base64.RawStdEncoding.DecodeString(body)
	if err != nil {
		off := 0
		if ce, ok := err.(base64.CorruptInputError); ok && int(ce) < len(body) {
			off = int(ce)
		}
		var b byte
		if off < len(body) {
			b = body[off]
		}
		return nil, fail(ReasonInvalidByte, b, off)
	}
	return out, nil
}

// Encode returns the padded standard base64 encoding of data.
func Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

func fail(reason Reason, b byte, offset int) error {
	return apperrors.New(apperrors.KindInvalidEncoding, "base64.decode",
		&SymbolError{Reason: reason, Byte: b, Offset: offset})
}
