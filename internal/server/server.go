package server

import (
	"net/http"

	"eshop/internal/config"
	"eshop/internal/handler"
	"eshop/internal/metrics"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
	Product  *handler.ProductHandler
	Store    *handler.StoreHandler
	Customer *handler.CustomerHandler
}

// New はechoを組み立てて全ルートを登録する。
func New(cfg config.Config, h Handlers, m *metrics.ServerMetrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	if cfg.FEURL != "" {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:     []string{cfg.FEURL},
			AllowCredentials: true,
		}))
	}
	if m != nil {
		e.Use(m.Middleware())
	}

	registerRoutes(e, cfg, h)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	return e
}

func Start(e *echo.Echo, port string) error {
	return e.Start(":" + port)
}
