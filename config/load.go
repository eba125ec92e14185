package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	apperrors "github.com/Skryldev/grayscaler/errors"
)

// EnvPrefix prefixes every environment override, e.g.
// GRAYSCALER_PRESERVE_INPUT_MIME=true.
const EnvPrefix = "GRAYSCALER"

// Load builds a Config from defaults, an optional config file at path (any
// format viper understands; "" skips it), a .env file in the working directory
// if one exists, and GRAYSCALER_* environment variables, in increasing order
// of precedence.  The result is validated.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, apperrors.Wrap(apperrors.KindConfig, "config.dotenv", err)
	}

	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, apperrors.Wrap(apperrors.KindConfig, "config.read",
				fmt.Errorf("read %s: %w", path, err))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, apperrors.Wrap(apperrors.KindConfig, "config.unmarshal", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, apperrors.Wrap(apperrors.KindConfig, "config.validate", err)
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it during
// Unmarshal.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("preserve_input_mime", d.PreserveInputMime)
	v.SetDefault("worker_count", d.WorkerCount)
	v.SetDefault("queue_size", d.QueueSize)
	v.SetDefault("job_timeout", d.JobTimeout)
	v.SetDefault("max_input_bytes", d.MaxInputBytes)
	v.SetDefault("chunk_size", d.ChunkSize)
	v.SetDefault("jpeg_quality", d.JPEGQuality)
	v.SetDefault("png_compression", d.PNGCompression)
	v.SetDefault("alt_text", d.AltText)
	v.SetDefault("log_level", d.LogLevel)
}
