package grayscaler

import "github.com/Skryldev/grayscaler/core"

// Inner exposes the underlying core.Processor and codec registry for advanced
// use (e.g., swapping in the libvips decoder).  Prefer the high-level API for
// normal usage.
func (c *Converter) Inner() *Inner { return &Inner{c: c} }

// Inner groups the low-level handles of a Converter.
type Inner struct{ c *Converter }

// Processor returns the orchestrator.
func (i *Inner) Processor() *core.Processor { return i.c.proc }

// Registry returns the codec registry consulted by the decode and encode
// steps on every conversion.
func (i *Inner) Registry() core.Registry { return i.c.reg }
