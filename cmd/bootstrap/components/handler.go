package components

import (
	"reservehub/internal/handler"
	"reservehub/internal/handler/api"
	"reservehub/internal/handler/middleware"
	"reservehub/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		func(cfg config.Config) config.CookieConfig { return cfg.Cookie },
		api.NewAuthHandler,
		api.NewBookingHandler,
		api.NewResourceHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
