// File: cmd/service/main.go
// @title        Reset Password API
// @version      1.0
// @description  以管理權限重設使用者密碼的服務
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reset-password/internal/config"
	"reset-password/internal/credential"
	"reset-password/internal/database"
	"reset-password/internal/logging"
	"reset-password/internal/router"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	_ "reset-password/docs" // 引入 swag 產出的 docs
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

const shutdownTimeout = 10 * time.Second

var logOutput io.Writer = os.Stdout

var (
	loadConfig      = config.Load
	newLogger       = logging.New
	newPgxPool      = database.NewPgxPool
	runMigrationsFn = database.RunMigrations
	startServer     = func(e *echo.Echo, addr string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() { errCh <- e.Start(addr) }()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		}
	}
	exitFunc = os.Exit
)

// buildStore 依 CREDENTIAL_BACKEND 建立憑證後端；postgres 時一併回傳 DB 供健康檢查
func buildStore(ctx context.Context, cfg *config.Config, logger log.FieldLogger) (credential.Store, database.DB, error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		if cfg.RunMigrations {
			if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
				return nil, nil, fmt.Errorf("Migration 執行失敗: %w", err)
			}
			logger.Info("migrations applied")
		}
		db, err := newPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("DB 連線失敗: %w", err)
		}
		return credential.NewPostgresStore(db, cfg.BcryptCost), db, nil
	default:
		return credential.NewGoTrueStore(cfg.SupabaseURL, cfg.ServiceRoleKey, cfg.ProviderTimeout), nil, nil
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定錯誤: %w", err)
	}

	logger, err := newLogger(logOutput, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	store, db, err := buildStore(context.Background(), cfg, logger)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(logging.RequestLogger(logger))

	router.Setup(e, store, logger, router.Options{DB: db, Swagger: cfg.SwaggerEnabled})

	logger.WithFields(log.Fields{"addr": cfg.Addr(), "backend": cfg.Backend}).Info("listening")
	return startServer(e, cfg.Addr())
}

func main() {
	if err := run(); err != nil {
		log.WithError(err).Error("service stopped")
		exitFunc(1)
	}
}
