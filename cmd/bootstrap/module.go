package bootstrap

import (
	"garage-scheduler/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	components.GarageModule,
	components.AuditModule,
	components.UseCaseModule,
	components.HandlerModule,
	RelayModule,
)
