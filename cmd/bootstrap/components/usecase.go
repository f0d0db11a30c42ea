package components

import (
	"reservehub/internal/pkg/clock"
	"reservehub/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		usecase.NewAuthUseCase,
		usecase.NewBookingUseCase,
		usecase.NewResourceUseCase,
		usecase.NewTokenValidator,
	),
)
