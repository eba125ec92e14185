// Package hooks provides Hook, Logger and MetricsCollector implementations.
package hooks

import (
	"context"
	"log/slog"
	"time"

	"go.uber.org/zap"

	"github.com/Skryldev/grayscaler/core"
	apperrors "github.com/Skryldev/grayscaler/errors"
)

// ── Logger adapters ───────────────────────────────────────────────────────────

// SlogLogger adapts log/slog to core.Logger.
type SlogLogger struct{ l *slog.Logger }

func NewSlogLogger(l *slog.Logger) *SlogLogger { return &SlogLogger{l: l} }

func (s *SlogLogger) Debug(msg string, kv ...interface{}) { s.l.Debug(msg, kv...) }
func (s *SlogLogger) Info(msg string, kv ...interface{})  { s.l.Info(msg, kv...) }
func (s *SlogLogger) Warn(msg string, kv ...interface{})  { s.l.Warn(msg, kv...) }
func (s *SlogLogger) Error(msg string, kv ...interface{}) { s.l.Error(msg, kv...) }

// ZapLogger adapts zap to core.Logger.  Fields are alternating key/value
// pairs, as with zap's sugared API.
type ZapLogger struct{ s *zap.SugaredLogger }

func NewZapLogger(l *zap.Logger) *ZapLogger { return &ZapLogger{s: l.Sugar()} }

func (z *ZapLogger) Debug(msg string, kv ...interface{}) { z.s.Debugw(msg, kv...) }
func (z *ZapLogger) Info(msg string, kv ...interface{})  { z.s.Infow(msg, kv...) }
func (z *ZapLogger) Warn(msg string, kv ...interface{})  { z.s.Warnw(msg, kv...) }
func (z *ZapLogger) Error(msg string, kv ...interface{}) { z.s.Errorw(msg, kv...) }

// ── Logging hook ──────────────────────────────────────────────────────────────

// LoggingHook writes one debug line when a step starts and one when it ends.
// Failed steps are logged at error level with the error kind.
type LoggingHook struct {
	log core.Logger
}

func NewLoggingHook(l core.Logger) *LoggingHook { return &LoggingHook{log: l} }

func (h *LoggingHook) BeforeStep(_ context.Context, step string, img *core.ImageData) {
	h.log.Debug("pipeline.step.start", "step", step, "input_len", len(img.Input))
}

func (h *LoggingHook) AfterStep(_ context.Context, step string, img *core.ImageData, d time.Duration, err error) {
	if err != nil {
		h.log.Error("pipeline.step.error",
			"step", step,
			"kind", string(apperrors.KindOf(err)),
			"duration_ms", d.Milliseconds(),
			"error", err.Error(),
		)
		return
	}

	kv := []interface{}{"step", step, "duration_ms", d.Milliseconds()}
	switch step {
	case "resolve_format":
		kv = append(kv, "format", string(img.Format))
	case "decode_image":
		kv = append(kv, "width", img.Meta.Width, "height", img.Meta.Height, "color_space", string(img.Meta.ColorSpace))
	case "encode_image":
		kv = append(kv, "output_format", string(img.OutputFormat), "output_bytes", img.Meta.SizeBytes)
	}
	h.log.Debug("pipeline.step.done", kv...)
}

var (
	_ core.Logger = (*SlogLogger)(nil)
	_ core.Logger = (*ZapLogger)(nil)
	_ core.Hook   = (*LoggingHook)(nil)
)
