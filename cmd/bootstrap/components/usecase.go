package components

import (
	"garage-scheduler/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		usecase.NewBookingUseCase,
	),
)
