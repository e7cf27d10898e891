package handler

import (
	"net/http"
	"strconv"

	"eshop/internal/config"
	"eshop/internal/domain/model"
	"eshop/internal/middleware"
	repo "eshop/internal/repository"
	"eshop/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// /api/productsのHTTP。検索・詳細は公開、更新系はSTOREのみ。
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

type UpdateStockRequest struct {
	StockQuantity int64 `json:"stock_quantity"`
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/products")

	g.GET("", h.search)

	auth := middleware.AuthJWT(cfg)
	customer := middleware.RoleGuard(string(model.RoleCustomer))
	store := middleware.RoleGuard(string(model.RoleStore))

	g.GET("/recommendations", h.recommendations, auth, customer)
	g.GET("/store", h.storeProducts, auth, store)
	g.POST("", h.create, auth, store)
	g.PUT("/:id", h.update, auth, store)
	g.PATCH("/:id/stock", h.updateStock, auth, store)
	g.DELETE("/:id", h.delete, auth, store)

	//登録順の都合で最後（/recommendations等と衝突させない）
	g.GET("/:id", h.detail)
}

func (h *ProductHandler) search(c echo.Context) error {
	q := repo.ProductSearchQuery{
		Title: c.QueryParam("title"),
		Type:  c.QueryParam("type"),
		Brand: c.QueryParam("brand"),
	}

	if v := c.QueryParam("min_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Code: "BAD_REQUEST", Error: "invalid min_price"})
		}
		q.MinPrice = &d
	}
	if v := c.QueryParam("max_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Code: "BAD_REQUEST", Error: "invalid max_price"})
		}
		q.MaxPrice = &d
	}
	if v := c.QueryParam("store_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Code: "BAD_REQUEST", Error: "invalid store_id"})
		}
		q.StoreID = &id
	}

	out, err := h.uc.SearchProducts(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: "BAD_REQUEST", Error: "invalid product id"})
	}

	out, err := h.uc.GetProductByID(c.Request().Context(), productID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) recommendations(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "UNAUTHORIZED", Error: "unauthorized"})
	}

	// limit（default 10）
	limit := 10
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Code: "BAD_REQUEST", Error: "invalid limit"})
		}
		limit = l
	}

	out, err := h.uc.GetRecommendations(c.Request().Context(), userID, limit)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) storeProducts(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "UNAUTHORIZED", Error: "unauthorized"})
	}

	out, err := h.uc.GetStoreProducts(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "UNAUTHORIZED", Error: "unauthorized"})
	}

	var req usecase.ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: "BAD_REQUEST", Error: "invalid body"})
	}

	out, err := h.uc.AddProduct(c.Request().Context(), userID, req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *ProductHandler) update(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "UNAUTHORIZED", Error: "unauthorized"})
	}

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: "BAD_REQUEST", Error: "invalid product id"})
	}

	var req usecase.ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: "BAD_REQUEST", Error: "invalid body"})
	}

	out, err := h.uc.UpdateProduct(c.Request().Context(), userID, productID, req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) updateStock(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "UNAUTHORIZED", Error: "unauthorized"})
	}

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: "BAD_REQUEST", Error: "invalid product id"})
	}

	var req UpdateStockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: "BAD_REQUEST", Error: "invalid body"})
	}

	out, err := h.uc.UpdateProductStock(c.Request().Context(), userID, productID, req.StockQuantity)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) delete(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "UNAUTHORIZED", Error: "unauthorized"})
	}

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: "BAD_REQUEST", Error: "invalid product id"})
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), userID, productID); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
