package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// 支援的憑證後端
const (
	BackendGoTrue   = "gotrue"
	BackendPostgres = "postgres"
)

// Config 服務啟動時建立一次，之後唯讀
type Config struct {
	Port string

	// 憑證後端：gotrue (Supabase Auth admin API) 或 postgres (直接寫 auth.users)
	Backend string

	// GoTrue admin API
	SupabaseURL    string
	ServiceRoleKey string

	// Postgres 後端
	DatabaseURL   string
	RunMigrations bool
	BcryptCost    int

	ProviderTimeout time.Duration

	LogLevel  string
	LogFormat string

	SwaggerEnabled bool
}

// Load 讀取環境變數（可選 .env），並驗證必要欄位
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Backend:        strings.ToLower(getEnv("CREDENTIAL_BACKEND", BackendGoTrue)),
		SupabaseURL:    strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		ServiceRoleKey: getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      strings.ToLower(getEnv("LOG_FORMAT", "json")),
	}

	var err error
	if cfg.RunMigrations, err = getBool("RUN_MIGRATIONS", false); err != nil {
		return nil, err
	}
	if cfg.SwaggerEnabled, err = getBool("SWAGGER_ENABLED", false); err != nil {
		return nil, err
	}
	if cfg.BcryptCost, err = getInt("BCRYPT_COST", bcrypt.DefaultCost); err != nil {
		return nil, err
	}
	if cfg.ProviderTimeout, err = getDuration("PROVIDER_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 檢查欄位組合是否可用
func (c *Config) Validate() error {
	var errs []error

	if _, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Errorf("invalid PORT %q", c.Port))
	}

	switch c.Backend {
	case BackendGoTrue:
		if c.SupabaseURL == "" {
			errs = append(errs, errors.New("SUPABASE_URL is required"))
		} else if u, err := url.Parse(c.SupabaseURL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			errs = append(errs, fmt.Errorf("invalid SUPABASE_URL %q", c.SupabaseURL))
		}
		if c.ServiceRoleKey == "" {
			errs = append(errs, errors.New("SUPABASE_SERVICE_ROLE_KEY is required"))
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres backend"))
		}
		if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
			errs = append(errs, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown CREDENTIAL_BACKEND %q", c.Backend))
	}

	if c.ProviderTimeout <= 0 {
		errs = append(errs, errors.New("PROVIDER_TIMEOUT must be positive"))
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		errs = append(errs, fmt.Errorf("invalid LOG_FORMAT %q", c.LogFormat))
	}

	return errors.Join(errs...)
}

// Addr 回傳 echo 監聽位址
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, def bool) (bool, error) {
	v := getEnv(key, "")
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := getEnv(key, "")
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
