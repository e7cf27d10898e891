package handler

import (
	"net/http"

	"eshop/internal/config"
	"eshop/internal/domain/model"
	"eshop/internal/middleware"
	"eshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/customersのHTTP
type CustomerHandler struct {
	uc *usecase.CustomerUsecase
}

// DI
func NewCustomerHandler(uc *usecase.CustomerUsecase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

func (h *CustomerHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/customers")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.RoleGuard(string(model.RoleCustomer)))

	g.GET("/stats", h.stats)
}

func (h *CustomerHandler) stats(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "UNAUTHORIZED", Error: "unauthorized"})
	}

	out, err := h.uc.GetCustomerStats(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
