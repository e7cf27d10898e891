package handler

import (
	"net/http"

	"eshop/internal/middleware"
	"eshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// 種別→ステータスの変換表。HTTPを知るのはここだけ。
var kindToStatus = map[usecase.ErrorKind]int{
	usecase.KindNotFound:          http.StatusNotFound,
	usecase.KindBadRequest:        http.StatusBadRequest,
	usecase.KindUnauthorized:      http.StatusUnauthorized,
	usecase.KindConflict:          http.StatusConflict,
	usecase.KindForbidden:         http.StatusForbidden,
	usecase.KindInsufficientStock: http.StatusBadRequest,
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if ue, ok := usecase.AsError(err); ok {
		status, known := kindToStatus[ue.Kind]
		if known {
			return c.JSON(status, ErrorResponse{Code: string(ue.Kind), Error: ue.Message})
		}
	}

	//500。内部の詳細は返さない。
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:  string(usecase.KindInternal),
		Error: "internal error",
	})
}

//middleware.AuthJWT が c.Set("user_id", int64) した値を取り出す

func getUserIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	if v == nil {
		return 0, false
	}

	id, ok := v.(int64)
	if !ok {
		return 0, false
	}

	return id, true
}

func getUserRoleFromContext(c echo.Context) (string, bool) {
	v := c.Get(middleware.CtxUserRoleKey)
	if v == nil {
		return "", false
	}

	role, ok := v.(string)
	if !ok || role == "" {
		return "", false
	}

	return role, true
}
