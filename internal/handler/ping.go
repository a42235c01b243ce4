// File: internal/handler/ping.go
package handler

import (
	"net/http"

	"reset-password/internal/database"
	"reset-password/internal/dto"

	"github.com/labstack/echo/v4"
)

// PingHandler 健康檢查
// @Summary     Health Check
// @Description 回傳 pong；使用 postgres 後端時一併檢查資料庫連線
// @Tags        health
// @Produce     json
// @Success     200 {object} dto.PingResponse
// @Failure     500 {object} dto.HTTPError
// @Router      /healthz [get]
func PingHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		if db != nil {
			if err := db.Ping(c.Request().Context()); err != nil {
				return writeJSON(c, http.StatusInternalServerError, dto.HTTPError{Error: "database unhealthy"})
			}
		}
		return writeJSON(c, http.StatusOK, dto.PingResponse{Message: "pong"})
	}
}
