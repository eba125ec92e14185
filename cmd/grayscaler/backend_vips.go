//go:build vips

package main

import (
	"go.uber.org/zap"

	"github.com/Skryldev/grayscaler"
	"github.com/Skryldev/grayscaler/adapters/vips"
	"github.com/Skryldev/grayscaler/config"
)

// attachBackend swaps the PNG and JPEG decoders for libvips.
func attachBackend(c *grayscaler.Converter, cfg config.Config, log *zap.Logger) func() {
	b := vips.NewBackend(vips.BackendConfig{MaxWorkers: cfg.WorkerCount})
	vips.RegisterVipsBackend(c.Inner().Registry(), b)
	log.Debug("decoder backend", zap.String("name", "libvips"))
	return b.Shutdown
}
