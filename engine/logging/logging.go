// Package logging builds the zerolog loggers shared by the engine components.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Output formats accepted by Config.Format.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config holds logger configuration.
type Config struct {
	Level  string `mapstructure:"level" yaml:"level"`   // trace, debug, info, warn, error
	Format string `mapstructure:"format" yaml:"format"` // console or json
	App    string `mapstructure:"app" yaml:"app"`
}

// DefaultConfig returns the logger defaults: info level, console output.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: FormatConsole,
		App:    "freecam",
	}
}

// New creates a logger writing to stdout.
//
// Parameters:
//   - cfg: logger configuration
//
// Returns:
//   - zerolog.Logger: the configured logger
func New(cfg Config) zerolog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter creates a logger writing to out. Console format wraps out in a
// zerolog.ConsoleWriter; json writes raw events.
//
// Parameters:
//   - cfg: logger configuration
//   - out: destination writer
//
// Returns:
//   - zerolog.Logger: the configured logger
func NewWithWriter(cfg Config, out io.Writer) zerolog.Logger {
	w := out
	if !strings.EqualFold(cfg.Format, FormatJSON) {
		w = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "15:04:05",
		}
	}

	ctx := zerolog.New(w).Level(ParseLevel(cfg.Level)).With().Timestamp()
	if cfg.App != "" {
		ctx = ctx.Str("app", cfg.App)
	}
	return ctx.Logger()
}

// ParseLevel maps a level name to a zerolog level. Unknown names fall back to info.
//
// Parameters:
//   - level: the level name (case-insensitive)
//
// Returns:
//   - zerolog.Level: the parsed level
func ParseLevel(level string) zerolog.Level {
	l, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return l
}

// Component returns a child logger tagged with a component name.
func Component(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
