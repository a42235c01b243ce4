package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	AllowOrigin  = "*"
	AllowHeaders = "authorization, x-client-info, apikey, content-type"
)

// CORS 每個回應都帶上寬鬆的跨來源標頭；OPTIONS 預檢直接回 200 "ok"
// 需以 e.Pre 註冊，才能在路由之前攔下任意路徑的預檢
func CORS(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Response().Header()
		h.Set(echo.HeaderAccessControlAllowOrigin, AllowOrigin)
		h.Set(echo.HeaderAccessControlAllowHeaders, AllowHeaders)

		if c.Request().Method == http.MethodOptions {
			return c.String(http.StatusOK, "ok")
		}
		return next(c)
	}
}
