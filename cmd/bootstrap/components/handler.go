package components

import (
	"slotmarket/internal/handler"
	"slotmarket/internal/handler/api"
	"slotmarket/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewBookingHandler,
		api.NewServiceHandler,
		api.NewSlotHandler,
		api.NewRateHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
