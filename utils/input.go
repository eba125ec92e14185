package utils

import (
	"context"
	"errors"
	"io"
	"strings"
)

// ErrLimitExceeded is returned by ReadAllString when the source holds more
// than the allowed number of bytes.
var ErrLimitExceeded = errors.New("read limit exceeded")

const defaultChunkSize = 32 * 1024

// ReadAllString reads r to EOF in chunkSize pieces, checking ctx between
// reads.  limit > 0 caps the total size.
func ReadAllString(ctx context.Context, r io.Reader, chunkSize int, limit int64) (string, error) {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	var sb strings.Builder
	chunk := make([]byte, chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		n, err := r.Read(chunk)
		sb.Write(chunk[:n])
		if limit > 0 && int64(sb.Len()) > limit {
			return "", ErrLimitExceeded
		}
		switch {
		case errors.Is(err, io.EOF):
			return sb.String(), nil
		case err != nil:
			return "", err
		}
	}
}
