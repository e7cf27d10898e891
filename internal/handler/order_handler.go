package handler

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"eshop/internal/config"
	"eshop/internal/domain/model"
	"eshop/internal/middleware"
	"eshop/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// /api/ordersのHTTP
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// 決済リクエスト。形式チェックだけで、決済自体はダミー。
type PaymentRequest struct {
	CardNumber     string `json:"card_number"`
	CardHolderName string `json:"card_holder_name"`
	ExpiryDate     string `json:"expiry_date"`
	CVV            string `json:"cvv"`
}

type CheckoutResponse struct {
	PaymentStatus string                `json:"payment_status"`
	TransactionID string                `json:"transaction_id"`
	Message       string                `json:"message"`
	Orders        []usecase.OrderOutput `json:"orders"`
}

var (
	cardNumberRe = regexp.MustCompile(`^\d{16}$`)
	expiryRe     = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvRe        = regexp.MustCompile(`^\d{3,4}$`)
)

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/orders")
	g.Use(middleware.AuthJWT(cfg))

	customer := middleware.RoleGuard(string(model.RoleCustomer))
	store := middleware.RoleGuard(string(model.RoleStore))

	g.POST("/checkout", h.checkout, customer)
	g.POST("", h.completeOrder, customer)
	g.GET("", h.getCustomerOrders, customer)
	g.GET("/recent", h.getRecentOrders, customer)
	g.GET("/store", h.getStoreOrders, store)
	g.GET("/:id", h.getOrderByID)
}

func (h *OrderHandler) checkout(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "UNAUTHORIZED", Error: "unauthorized"})
	}

	var req PaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: "BAD_REQUEST", Error: "invalid body"})
	}
	if msg := validatePayment(req); msg != "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: "BAD_REQUEST", Error: msg})
	}

	//ダミー決済。常に成功する。
	transactionID := "TXN-" + strings.ToUpper(uuid.NewString()[:8])

	orders, err := h.uc.Checkout(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, CheckoutResponse{
		PaymentStatus: "SUCCESS",
		TransactionID: transactionID,
		Message:       "Payment processed successfully. Orders have been placed.",
		Orders:        orders,
	})
}

func (h *OrderHandler) completeOrder(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "UNAUTHORIZED", Error: "unauthorized"})
	}

	orders, err := h.uc.Checkout(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, orders)
}

func (h *OrderHandler) getCustomerOrders(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "UNAUTHORIZED", Error: "unauthorized"})
	}

	orders, err := h.uc.GetCustomerOrders(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) getRecentOrders(c echo.Context) error {
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

	orders, err := h.uc.GetRecentCustomerOrders(c.Request().Context(), userID, limit)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) getStoreOrders(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "UNAUTHORIZED", Error: "unauthorized"})
	}

	orders, err := h.uc.GetStoreOrders(c.Request().Context(), userID, 0)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) getOrderByID(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "UNAUTHORIZED", Error: "unauthorized"})
	}
	role, ok := getUserRoleFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "UNAUTHORIZED", Error: "unauthorized"})
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: "BAD_REQUEST", Error: "invalid order id"})
	}

	out, err := h.uc.GetOrderByID(c.Request().Context(), orderID, userID, model.Role(role))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func validatePayment(req PaymentRequest) string {
	if !cardNumberRe.MatchString(req.CardNumber) {
		return "Card number must be 16 digits"
	}
	if strings.TrimSpace(req.CardHolderName) == "" || len(req.CardHolderName) > 100 {
		return "Card holder name is required"
	}
	if !expiryRe.MatchString(req.ExpiryDate) {
		return "Expiry date must be in format MM/YY"
	}
	if !cvvRe.MatchString(req.CVV) {
		return "CVV must be 3 or 4 digits"
	}
	return ""
}
