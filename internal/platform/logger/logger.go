package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel acepta trace|debug|info|warn|error; cualquier otra cosa => info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "console", "pretty":
		return FormatText
	default:
		return FormatJSON
	}
}

type Options struct {
	Level  string
	Format Format
	App    string

	// Output por defecto os.Stdout.
	Output io.Writer
}

// New construye el logger del proceso. No hay singleton: main lo crea y lo
// inyecta a router/servicios.
func New(opts Options) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Format == FormatText {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(out).
		Level(ParseLevel(opts.Level)).
		With().
		Timestamp()

	if app := strings.TrimSpace(opts.App); app != "" {
		ctx = ctx.Str("app", app)
	}
	return ctx.Logger()
}

// NewFromEnv crea logger desde env:
// - LOG_LEVEL=trace|debug|info|warn|error (default info)
// - LOG_FORMAT=text|json (default json)
// - APP_NAME (opcional)
func NewFromEnv() zerolog.Logger {
	return New(Options{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: ParseFormat(os.Getenv("LOG_FORMAT")),
		App:    os.Getenv("APP_NAME"),
	})
}
