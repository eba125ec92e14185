// Package datauri splits data URIs into their declared media type and payload
// and composes them back.
//
// Format: data:<mediatype>[;<param>]*,<data>
// Examples:
//   - data:image/png;base64,iVBORw0KGgo...
//   - iVBORw0KGgo... (bare payload, no declaration)
package datauri

import (
	"strings"

	apperrors "github.com/Skryldev/grayscaler/errors"
)

// Prefix marks a string as a data URI.
const Prefix = "data:"

// Parsed is the result of splitting an input string.
type Parsed struct {
	// DeclaredMime is the text between "data:" and the first ';', or all of
	// it when there is no ';'.  Only meaningful when HasMime is true.
	DeclaredMime string
	HasMime      bool
	// Params holds the ';'-separated parameters between the media type and
	// the first ',' (typically just "base64").  They are not validated.
	Params []string
	// Payload is the text after the first ',' or the whole input when there is
	// no "data:" prefix.
	Payload string
}

// IsDataURI reports whether s carries the data URI prefix.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, Prefix)
}

// Parse splits input into its declared media type and payload.  Input is
// never modified; Payload is a substring of it.  A "data:" string without a
// ',' separator fails with a malformed_data_uri error.
func Parse(input string) (Parsed, error) {
	if !IsDataURI(input) {
		return Parsed{Payload: input}, nil
	}

	comma := strings.IndexByte(input, ',')
	if comma < 0 {
		return Parsed{}, apperrors.New(apperrors.KindMalformedDataURI, "datauri.parse", apperrors.ErrMissingComma)
	}

	p := Parsed{HasMime: true, Payload: input[comma+1:]}
	rest := input[len(Prefix):]
	semi := strings.IndexByte(rest, ';')
	if semi < 0 {
		// No ';' at all: the whole remainder is the declared mime, so
		// "data:image/png,AAAA" declares "image/png,AAAA".
		p.DeclaredMime = rest
		return p, nil
	}
	p.DeclaredMime = rest[:semi]
	if end := comma - len(Prefix); semi < end {
		p.Params = strings.Split(rest[semi+1:end], ";")
	}
	return p, nil
}

// Build returns "data:<mime>;base64,<encoded>".  Inputs are used verbatim.
func Build(mime, encoded string) string {
	var sb strings.Builder
	sb.Grow(len(Prefix) + len(mime) + len(";base64,") + len(encoded))
	sb.WriteString(Prefix)
	sb.WriteString(mime)
	sb.WriteString(";base64,")
	sb.WriteString(encoded)
	return sb.String()
}
