package bootstrap

import (
	"context"
	"log/slog"

	"garage-scheduler/internal/pkg/config"
	"garage-scheduler/internal/relay"

	"go.uber.org/fx"
)

var RelayModule = fx.Module("relay",
	fx.Invoke(StartRelay),
)

// StartRelay runs the byte-forwarding relay next to the HTTP server when
// RELAY_ENABLED is set.
func StartRelay(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) {
	if !cfg.Relay.Enabled {
		return
	}

	proxy := relay.NewProxy(cfg.Relay.Destination, logger)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return proxy.Listen(ctx, cfg.Relay.ListenAddr)
		},
		OnStop: func(_ context.Context) error {
			return proxy.Halt()
		},
	})
}
