// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"

	"reset-password/internal/credential"
	"reset-password/internal/database"
	"reset-password/internal/handler"
	"reset-password/internal/middleware"
)

// Options 控制可選路由
type Options struct {
	// DB 非 nil 時 /healthz 會檢查資料庫
	DB      database.DB
	Swagger bool
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, store credential.Store, logger log.FieldLogger, opts Options) {
	// 預檢與 CORS 標頭必須在路由前處理，任意路徑都適用
	e.Pre(middleware.CORS)

	e.GET("/healthz", handler.PingHandler(opts.DB))
	if opts.Swagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	// 與原本的 edge function 一樣，任意路徑與方法都進入重設流程
	e.Any("/*", handler.ResetPasswordHandler(store, logger))
}
