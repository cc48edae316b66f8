package components

import (
	"log/slog"

	"garage-scheduler/internal/domain/garage"
	"garage-scheduler/internal/pkg/clock"
	"garage-scheduler/internal/pkg/config"
	"garage-scheduler/internal/usecase"

	"go.uber.org/fx"
)

var GarageModule = fx.Module("garage",
	fx.Provide(
		clock.NewRealClock,
		NewGaragePool,
		func(p *garage.Pool) usecase.Allocator { return p },
	),
)

// NewGaragePool builds the process's single pool. Each pool is independent;
// the binary runs one.
func NewGaragePool(cfg config.Config, clk clock.Clock, logger *slog.Logger) (*garage.Pool, error) {
	pool, err := garage.New(cfg.Garage.Capacity,
		garage.WithClock(clk),
		garage.WithHistoryLimit(cfg.Garage.HistoryLimit),
	)
	if err != nil {
		return nil, err
	}
	logger.Info("garage pool ready",
		slog.Int("capacity", cfg.Garage.Capacity),
		slog.Int("history_limit", cfg.Garage.HistoryLimit),
	)
	return pool, nil
}
