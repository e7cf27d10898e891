package server

import (
	"eshop/internal/config"

	"github.com/labstack/echo/v4"
)

func registerRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	h.Auth.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e, cfg)
	h.Order.RegisterRoutes(e, cfg)
	h.Product.RegisterRoutes(e, cfg)
	h.Store.RegisterRoutes(e, cfg)
	h.Customer.RegisterRoutes(e, cfg)
}
