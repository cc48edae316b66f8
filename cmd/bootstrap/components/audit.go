package components

import (
	"context"
	"log/slog"
	"strings"

	"garage-scheduler/internal/infra/audit"
	"garage-scheduler/internal/pkg/config"
	"garage-scheduler/internal/pkg/errs"
	"garage-scheduler/internal/usecase"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var AuditModule = fx.Module("audit",
	fx.Provide(
		NewAuditLog,
	),
)

// NewAuditLog picks the audit backend from AUDIT_BACKEND. The redis client is
// pinged on start and closed on stop.
func NewAuditLog(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (usecase.AuditLog, error) {
	ac := cfg.Audit
	switch strings.ToLower(ac.Backend) {
	case config.AuditBackendMemory:
		logger.Info("audit log in memory", slog.Int("history_limit", ac.HistoryLimit))
		return audit.NewMemoryLog(audit.WithMemoryHistoryLimit(ac.HistoryLimit)), nil

	case config.AuditBackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     ac.RedisAddr,
			Password: ac.RedisPassword,
			DB:       ac.RedisDB,
		})
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				if err := rdb.Ping(ctx).Err(); err != nil {
					return errs.Wrapf(err, "ping audit redis at %s", ac.RedisAddr)
				}
				logger.Info("audit log in redis",
					slog.String("addr", ac.RedisAddr),
					slog.String("prefix", ac.Prefix),
				)
				return nil
			},
			OnStop: func(_ context.Context) error {
				return rdb.Close()
			},
		})
		return audit.NewRedisLog(rdb,
			audit.WithRedisPrefix(ac.Prefix),
			audit.WithRedisTTL(ac.TTL),
			audit.WithRedisHistoryLimit(ac.HistoryLimit),
		), nil

	default:
		return nil, errs.Wrapf(errs.ErrInvalidArgument, "unknown audit backend %q", ac.Backend)
	}
}
