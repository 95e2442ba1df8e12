package components

import (
	"github.com/DanSBol/shareit/internal/handler"
	"github.com/DanSBol/shareit/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewItemHandler,
		api.NewUserHandler,
		api.NewRequestHandler,
		func(booking *api.BookingHandler, item *api.ItemHandler, user *api.UserHandler, request *api.RequestHandler) handler.Handlers {
			return handler.Handlers{
				Booking: booking,
				Item:    item,
				User:    user,
				Request: request,
			}
		},
	),
	fx.Invoke(handler.NewRouter),
)
