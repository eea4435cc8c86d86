package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(NewDefaultsHolder),
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	HTTPAddr           string
	HTTPRequestTimeout time.Duration
	CORSAllowedOrigins []string

	AuthJWTSecret string
	AuthTokenTTL  time.Duration

	LoginRateLimit float64
	LoginBurst     int
	RedisAddr      string
	RedisPassword  string

	OTLPEndpoint string

	DefaultsFile string

	BootstrapAdminEmail    string
	BootstrapAdminPassword string

	DBType               string
	DBHost               string
	DBPort               string
	DBName               string
	DBUser               string
	DBPassword           string
	DBSSLMode            string
	DBPath               string
	DBMaxIdleConn        int
	DBMaxOpenConn        int
	DBConnMaxLifetime    int
	DBConnMaxIdleTime    int
	DBAcquireTimeout     time.Duration
	DBAutoMigrate        bool
	DBSlowQueryThreshold time.Duration
	DBLogParams          bool
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		AppName:            getenv("APP_SERVICE", "maderas"),
		AppVersion:         getenv("APP_VERSION", "0.1.0"),
		Environment:        getenv("ENVIRONMENT", "development"),
		HTTPAddr:           getenv("HTTP_ADDR", ":"+getenv("PORT", "4000")),
		HTTPRequestTimeout: getenvDuration("HTTP_REQUEST_TIMEOUT", 15*time.Second),
		CORSAllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS", "*")),
		AuthJWTSecret:      strings.TrimSpace(getenv("AUTH_JWT_SECRET", getenv("JWT_SECRET", ""))),
		AuthTokenTTL:       getenvDuration("AUTH_TOKEN_TTL", time.Hour),
		LoginRateLimit:     getenvFloat("LOGIN_RATE_PER_SECOND", 0.2),
		LoginBurst:         getenvInt("LOGIN_BURST", 5),
		RedisAddr:          strings.TrimSpace(getenv("REDIS_ADDR", "")),
		RedisPassword:      getenv("REDIS_PASSWORD", ""),
		OTLPEndpoint:       getenv("OTLP_ENDPOINT", "localhost:4317"),
		DefaultsFile:       strings.TrimSpace(getenv("MADERAS_DEFAULTS_FILE", "")),

		BootstrapAdminEmail:    strings.TrimSpace(getenv("MADERAS_ADMIN_EMAIL", "")),
		BootstrapAdminPassword: getenv("MADERAS_ADMIN_PASSWORD", ""),

		DBType:               strings.ToLower(getenv("DATABASE_TYPE", "mysql")),
		DBHost:               getenv("DATABASE_HOST", getenv("DB_HOST", "localhost")),
		DBPort:               getenv("DATABASE_PORT", getenv("DB_PORT", "3306")),
		DBName:               getenv("DATABASE_NAME", getenv("DB_NAME", "maderas")),
		DBUser:               getenv("DATABASE_USER", getenv("DB_USER", "root")),
		DBPassword:           getenv("DATABASE_PASSWORD", getenv("DB_PASSWORD", getenv("DB_PASS", ""))),
		DBSSLMode:            getenv("DATABASE_SSLMODE", "disable"),
		DBPath:               getenv("DATABASE_PATH", "maderas.db"),
		DBMaxIdleConn:        getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:        getenvInt("DATABASE_MAX_OPEN_CONN", 10),
		DBConnMaxLifetime:    getenvInt("DATABASE_CONN_MAX_LIFETIME", 1800),
		DBConnMaxIdleTime:    getenvInt("DATABASE_CONN_MAX_IDLE_TIME", 300),
		DBAcquireTimeout:     getenvDuration("DATABASE_ACQUIRE_TIMEOUT", 5*time.Second),
		DBAutoMigrate:        getenvBool("DATABASE_AUTO_MIGRATE", true),
		DBSlowQueryThreshold: getenvDuration("DATABASE_SLOW_QUERY_THRESHOLD", 200*time.Millisecond),
		DBLogParams:          getenvBool("DATABASE_LOG_PARAMS", false),
	}

	return cfg
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}

// getenvDuration accepts Go durations ("15s") or a plain number of seconds.
func getenvDuration(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	if parsed, err := time.ParseDuration(value); err == nil {
		return parsed
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return def
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
