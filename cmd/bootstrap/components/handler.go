package components

import (
	"dealspot/internal/handler"
	"dealspot/internal/handler/api"
	"dealspot/internal/handler/middleware"
	"dealspot/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		func(cfg config.Config) config.CookieConfig {
			return cfg.Cookie
		},
		api.NewAuthHandler,
		api.NewDealHandler,
		api.NewRedemptionHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
