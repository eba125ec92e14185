package config

import (
	"errors"
	"time"
)

// PNG compression presets accepted by Config.PNGCompression.
const (
	PNGCompressionDefault = "default"
	PNGCompressionNone    = "none"
	PNGCompressionSpeed   = "speed"
	PNGCompressionBest    = "best"
)

// Config is the top-level configuration struct.  Start from Default() and
// override only what you need.
type Config struct {
	// PreserveInputMime echoes the input container in the output instead of
	// always producing PNG.
	PreserveInputMime bool `mapstructure:"preserve_input_mime"`

	// Worker pool controls.
	WorkerCount int           `mapstructure:"worker_count"` // default: runtime.NumCPU()
	QueueSize   int           `mapstructure:"queue_size"`   // max queued jobs before Submit fails; default: 256
	JobTimeout  time.Duration `mapstructure:"job_timeout"`

	// Input limits.
	MaxInputBytes int64 `mapstructure:"max_input_bytes"` // 0 = no limit
	ChunkSize     int   `mapstructure:"chunk_size"`      // read chunk when draining input readers; default 32 KiB

	// Encoder defaults.
	JPEGQuality    int    `mapstructure:"jpeg_quality"` // 1-100; default 85
	PNGCompression string `mapstructure:"png_compression"`

	// AltText is the accessible text handed to display surfaces.
	AltText string `mapstructure:"alt_text"`

	LogLevel string `mapstructure:"log_level"` // "debug", "info", "warn", "error"
}

// Default returns a Config populated with sensible production defaults.
func Default() Config {
	return Config{
		WorkerCount:    0, // resolved at runtime to NumCPU
		QueueSize:      256,
		JobTimeout:     30 * time.Second,
		ChunkSize:      32 * 1024,
		JPEGQuality:    85,
		PNGCompression: PNGCompressionDefault,
		AltText:        "grayscale image",
		LogLevel:       "info",
	}
}

// Validate returns an error if the configuration is inconsistent.
func Validate(c Config) error {
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return errors.New("config: JPEGQuality must be between 1 and 100")
	}
	if c.ChunkSize <= 0 {
		return errors.New("config: ChunkSize must be positive")
	}
	if c.MaxInputBytes < 0 {
		return errors.New("config: MaxInputBytes must not be negative")
	}
	if c.WorkerCount < 0 || c.QueueSize < 0 {
		return errors.New("config: WorkerCount and QueueSize must not be negative")
	}
	switch c.PNGCompression {
	case PNGCompressionDefault, PNGCompressionNone, PNGCompressionSpeed, PNGCompressionBest:
	default:
		return errors.New("config: PNGCompression must be one of default, none, speed, best")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("config: LogLevel must be one of debug, info, warn, error")
	}
	return nil
}
