package logger

import (
	"log/slog"
	"os"

	"github.com/lucsky/cuid"
)

// Logger is a thin wrapper around slog that stamps every record with the
// service name and hostname.
type Logger struct {
	*slog.Logger
}

func New(service string) *Logger {
	hostname, _ := os.Hostname()

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})

	return &Logger{
		Logger: slog.New(handler).With(
			slog.String("service", service),
			slog.String("hostname", hostname),
		),
	}
}

// GenerateRequestID returns a collision-resistant id for request tracing.
func GenerateRequestID() string {
	return cuid.New()
}
