package core

import "sync"

type codecs struct {
	dec Decoder
	enc Encoder
}

// DefaultRegistry is a thread-safe implementation of Registry.  Lookups only
// return codecs that report support for the requested format.
type DefaultRegistry struct {
	mu    sync.RWMutex
	byFmt map[Format]codecs
}

// NewRegistry returns an empty DefaultRegistry.
func NewRegistry() *DefaultRegistry {
	return &DefaultRegistry{byFmt: make(map[Format]codecs)}
}

func (r *DefaultRegistry) RegisterDecoder(f Format, d Decoder) {
	r.mu.Lock()
	c := r.byFmt[f]
	c.dec = d
	r.byFmt[f] = c
	r.mu.Unlock()
}

func (r *DefaultRegistry) RegisterEncoder(f Format, e Encoder) {
	r.mu.Lock()
	c := r.byFmt[f]
	c.enc = e
	r.byFmt[f] = c
	r.mu.Unlock()
}

func (r *DefaultRegistry) DecoderFor(f Format) (Decoder, bool) {
	r.mu.RLock()
	d := r.byFmt[f].dec
	r.mu.RUnlock()
	if d == nil || !d.CanDecode(f) {
		return nil, false
	}
	return d, true
}

func (r *DefaultRegistry) EncoderFor(f Format) (Encoder, bool) {
	r.mu.RLock()
	e := r.byFmt[f].enc
	r.mu.RUnlock()
	if e == nil || !e.CanEncode(f) {
		return nil, false
	}
	return e, true
}
