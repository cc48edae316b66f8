package bootstrap

import (
	"log/slog"

	"garage-scheduler/internal/handler/middleware"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		middleware.NewLogger,
		func(l *middleware.Logger) *slog.Logger { return l.Slog() },
	),
)

// FxLogger routes fx's own lifecycle events through the application logger.
func FxLogger(logger *slog.Logger) fxevent.Logger {
	return &fxevent.SlogLogger{Logger: logger}
}
