package handler

import (
	"net/http"
	"strconv"

	"eshop/internal/config"
	"eshop/internal/domain/model"
	"eshop/internal/middleware"
	"eshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/storesのHTTP。一覧・詳細は公開、statsは自ストアのみ。
type StoreHandler struct {
	storeUC *usecase.StoreUsecase
	orderUC *usecase.OrderUsecase
}

// DI
func NewStoreHandler(storeUC *usecase.StoreUsecase, orderUC *usecase.OrderUsecase) *StoreHandler {
	return &StoreHandler{storeUC: storeUC, orderUC: orderUC}
}

func (h *StoreHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/stores")

	g.GET("", h.list)

	auth := middleware.AuthJWT(cfg)
	store := middleware.RoleGuard(string(model.RoleStore))

	g.GET("/stats", h.stats, auth, store)
	g.GET("/orders/recent", h.recentOrders, auth, store)

	g.GET("/:id", h.detail)
}

func (h *StoreHandler) list(c echo.Context) error {
	out, err := h.storeUC.ListStores(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *StoreHandler) detail(c echo.Context) error {
	storeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: "BAD_REQUEST", Error: "invalid store id"})
	}

	out, err := h.storeUC.GetStore(c.Request().Context(), storeID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *StoreHandler) stats(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "UNAUTHORIZED", Error: "unauthorized"})
	}

	out, err := h.storeUC.GetStoreStats(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *StoreHandler) recentOrders(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "UNAUTHORIZED", Error: "unauthorized"})
	}

	// limit（default 5）
	limit := 5
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Code: "BAD_REQUEST", Error: "invalid limit"})
		}
		limit = l
	}

	out, err := h.orderUC.GetStoreOrders(c.Request().Context(), userID, limit)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
