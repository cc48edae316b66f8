package components

import (
	"context"

	"garage-scheduler/internal/handler"
	"garage-scheduler/internal/handler/api"
	"garage-scheduler/internal/handler/middleware"
	"garage-scheduler/internal/infra/limiter"
	"garage-scheduler/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		NewAdmissionStore,
		func() *gin.Engine { return gin.New() },
	),
	fx.Invoke(RegisterRoutes),
)

// NewAdmissionStore returns nil when rate limiting is disabled. Otherwise the
// janitor runs for the lifetime of the app.
func NewAdmissionStore(lc fx.Lifecycle, cfg config.Config) *limiter.Store {
	rc := cfg.RateLimit
	if !rc.Enabled {
		return nil
	}

	store := limiter.NewStore(rc.RPS, rc.Burst,
		limiter.WithIdleTTL(rc.IdleTTL),
		limiter.WithCleanupEvery(rc.CleanupEvery),
	)
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			store.StartJanitor(ctx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return nil
		},
	})
	return store
}

type routeParams struct {
	fx.In

	Engine         *gin.Engine
	Config         config.Config
	Logger         *middleware.Logger
	BookingHandler *api.BookingHandler
	Store          *limiter.Store
}

func RegisterRoutes(p routeParams) {
	deps := handler.RouterDeps{
		Config:         p.Config,
		Logger:         p.Logger,
		BookingHandler: p.BookingHandler,
	}
	// a nil *limiter.Store must not become a non-nil Admitter
	if p.Store != nil {
		deps.Admitter = p.Store
	}
	handler.NewRouter(p.Engine, deps)
}
