//go:build !vips

package main

import (
	"go.uber.org/zap"

	"github.com/Skryldev/grayscaler"
	"github.com/Skryldev/grayscaler/config"
)

// attachBackend keeps the built-in decoders.  Build with -tags vips to decode
// through libvips instead.
func attachBackend(*grayscaler.Converter, config.Config, *zap.Logger) func() {
	return func() {}
}
