// Package utils holds the pooled encode buffers and bounded input reading.
package utils

import (
	"bytes"
	"io"
	"sync"
)

// Buffers above this capacity are dropped instead of pooled.
const maxPooledCap = 8 << 20

var encodeBufs = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

// EncodePooled runs encode against a pooled buffer and returns a private copy
// of what it wrote.
func EncodePooled(encode func(w io.Writer) error) ([]byte, error) {
	buf := encodeBufs.Get().(*bytes.Buffer)
	buf.Reset()
	defer func() {
		if buf.Cap() <= maxPooledCap {
			encodeBufs.Put(buf)
		}
	}()

	if err := encode(buf); err != nil {
		return nil, err
	}
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}
