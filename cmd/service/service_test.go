package main

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"reset-password/internal/config"
	"reset-password/internal/credential"
	"reset-password/internal/database"
	"reset-password/internal/logging"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

var defaultStartServer = startServer

func restoreGlobals() {
	loadConfig = config.Load
	newLogger = logging.New
	logOutput = os.Stdout
	newPgxPool = database.NewPgxPool
	runMigrationsFn = database.RunMigrations
	startServer = defaultStartServer
	exitFunc = func(code int) {}
}

func goTrueConfig() *config.Config {
	return &config.Config{
		Port:            "8080",
		Backend:         config.BackendGoTrue,
		SupabaseURL:     "https://x.supabase.co",
		ServiceRoleKey:  "k",
		ProviderTimeout: time.Second,
		LogLevel:        "info",
		LogFormat:       "json",
	}
}

func postgresConfig(migrations bool) *config.Config {
	return &config.Config{
		Port:            "8080",
		Backend:         config.BackendPostgres,
		DatabaseURL:     "postgres://db",
		RunMigrations:   migrations,
		BcryptCost:      4,
		ProviderTimeout: time.Second,
		LogLevel:        "info",
		LogFormat:       "json",
	}
}

func TestCustomValidator(t *testing.T) {
	cv := &CustomValidator{validator: validator.New()}
	type s struct {
		Name string `validate:"required"`
	}
	require.NoError(t, cv.Validate(&s{Name: "ok"}))
	require.Error(t, cv.Validate(&s{}))
}

func TestBuildStore(t *testing.T) {
	t.Cleanup(restoreGlobals)
	logger := log.New()
	logger.SetOutput(io.Discard)

	store, db, err := buildStore(context.Background(), goTrueConfig(), logger)
	require.NoError(t, err)
	require.Nil(t, db)
	require.IsType(t, &credential.GoTrueStore{}, store)

	fake := &database.FakeDB{}
	newPgxPool = func(_ context.Context, url string) (database.DB, error) {
		require.Equal(t, "postgres://db", url)
		return fake, nil
	}
	migrated := false
	runMigrationsFn = func(string) error { migrated = true; return nil }

	store, db, err = buildStore(context.Background(), postgresConfig(false), logger)
	require.NoError(t, err)
	require.Equal(t, fake, db)
	require.IsType(t, &credential.PostgresStore{}, store)
	require.False(t, migrated)

	_, _, err = buildStore(context.Background(), postgresConfig(true), logger)
	require.NoError(t, err)
	require.True(t, migrated)

	runMigrationsFn = func(string) error { return errors.New("migrate") }
	_, _, err = buildStore(context.Background(), postgresConfig(true), logger)
	require.Error(t, err)

	runMigrationsFn = func(string) error { return nil }
	newPgxPool = func(context.Context, string) (database.DB, error) { return nil, errors.New("db") }
	_, _, err = buildStore(context.Background(), postgresConfig(false), logger)
	require.Error(t, err)
}

func TestRunSuccess(t *testing.T) {
	t.Cleanup(restoreGlobals)
	logOutput = io.Discard
	called := make(map[string]bool)

	loadConfig = func() (*config.Config, error) { return postgresConfig(true), nil }
	runMigrationsFn = func(string) error { called["migrate"] = true; return nil }
	newPgxPool = func(context.Context, string) (database.DB, error) {
		called["pgx"] = true
		return &database.FakeDB{CloseFn: func() { called["dbClose"] = true }}, nil
	}
	startServer = func(e *echo.Echo, addr string) error {
		called["start"] = true
		require.Equal(t, ":8080", addr)
		require.NotNil(t, e.Validator)
		return nil
	}

	require.NoError(t, run())
	require.True(t, called["migrate"])
	require.True(t, called["pgx"])
	require.True(t, called["start"])
	require.True(t, called["dbClose"])
}

func TestRunErrors(t *testing.T) {
	t.Cleanup(restoreGlobals)
	logOutput = io.Discard

	loadConfig = func() (*config.Config, error) { return nil, errors.New("cfg") }
	require.Error(t, run())

	bad := goTrueConfig()
	bad.LogLevel = "loud"
	loadConfig = func() (*config.Config, error) { return bad, nil }
	require.Error(t, run())

	loadConfig = func() (*config.Config, error) { return postgresConfig(false), nil }
	newPgxPool = func(context.Context, string) (database.DB, error) { return nil, errors.New("db") }
	require.Error(t, run())

	loadConfig = func() (*config.Config, error) { return goTrueConfig(), nil }
	startServer = func(*echo.Echo, string) error { return errors.New("start") }
	require.Error(t, run())
}

func TestMainFunction(t *testing.T) {
	t.Cleanup(restoreGlobals)
	logOutput = io.Discard
	exitCode := 0
	exitFunc = func(code int) { exitCode = code }
	loadConfig = func() (*config.Config, error) { return goTrueConfig(), nil }
	startServer = func(*echo.Echo, string) error { return nil }
	main()
	require.Equal(t, 0, exitCode)
}

func TestMainExit(t *testing.T) {
	t.Cleanup(restoreGlobals)
	exitCode := 0
	exitFunc = func(code int) { exitCode = code }
	loadConfig = func() (*config.Config, error) { return nil, errors.New("fail") }
	main()
	require.Equal(t, 1, exitCode)
}
