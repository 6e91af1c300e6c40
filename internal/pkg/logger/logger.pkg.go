package logger

import (
	"io"
	"log"
	"log/slog"
	"os"
	"portrait-backend/internal/common/enum"
)

var (
	Debug   *log.Logger
	Info    *log.Logger
	Warning *log.Logger
	Error   *log.Logger
	HTTP    *log.Logger

	base *slog.Logger
)

func init() {
	configure(os.Stdout, enum.DEVELOPMENT)
}

// Setup switches every level logger to the handler for env: text in
// development and local, JSON everywhere else.
func Setup(env ...enum.EnvEnum) {
	mode := enum.DEVELOPMENT
	if len(env) > 0 {
		mode = env[0]
	}
	configure(os.Stdout, mode)
}

// SetOutput redirects all loggers, used by tests to capture output.
func SetOutput(w io.Writer) {
	configure(w, enum.DEVELOPMENT)
}

func configure(w io.Writer, env enum.EnvEnum) {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}

	var handler slog.Handler
	if env == enum.DEVELOPMENT || env == enum.LOCAL {
		handler = slog.NewTextHandler(w, opts)
	} else {
		opts.Level = slog.LevelInfo
		handler = slog.NewJSONHandler(w, opts)
	}

	base = slog.New(handler)
	Debug = slog.NewLogLogger(handler, slog.LevelDebug)
	Info = slog.NewLogLogger(handler, slog.LevelInfo)
	Warning = slog.NewLogLogger(handler, slog.LevelWarn)
	Error = slog.NewLogLogger(handler, slog.LevelError)
	HTTP = slog.NewLogLogger(handler.WithAttrs([]slog.Attr{slog.String("component", "http")}), slog.LevelInfo)
}

// With returns a structured logger carrying the given key/value context,
// e.g. logger.With("endpoint", "/api/payment/status", "action", "lookup").
func With(args ...any) *slog.Logger {
	return base.With(args...)
}
