package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"church-app-go/pkg/logger"
)

const EnvProduction = "production"

type Config struct {
	HTTPPort  string
	Env       string
	ClientURL string
	DB        DBConfig
	Auth      AuthConfig
	Images    ImagesConfig
	Redis     RedisConfig
	Email     EmailConfig
	RateLimit RateLimitConfig
	Reconcile ReconcileConfig
	Bootstrap BootstrapConfig
}

type DBConfig struct {
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type AuthConfig struct {
	JWTSecret     string
	TokenTTL      time.Duration
	CookieName    string
	CookieSecure  bool
	ResetTokenTTL time.Duration
}

type ImagesConfig struct {
	CloudinaryURL string
	CloudName     string
	APIKey        string
	APISecret     string
	Folder        string
	MaxUploadSize int64
	MaxDimension  int
	UploadTimeout time.Duration
}

type RedisConfig struct {
	URL       string
	KeyPrefix string
	CacheTTL  time.Duration
	StatsTTL  time.Duration
}

type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type RateLimitConfig struct {
	Enabled      bool
	GlobalLimit  int
	GlobalWindow time.Duration
	AuthLimit    int
	AuthWindow   time.Duration
	UploadLimit  int
	UploadWindow time.Duration
}

type ReconcileConfig struct {
	Enabled         bool
	Schedule        string
	MinAge          time.Duration
	DryRun          bool
	TokenPurgeEvery string
}

type BootstrapConfig struct {
	AdminUserName string
	AdminEmail    string
	AdminPassword string
}

func Load(log logger.Logger) (Config, error) {
	if err := loadDotEnv(log); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	env := getEnv("ENV", "development")
	cfg := Config{
		HTTPPort:  getEnv("HTTP_PORT", getEnv("PORT", "4000")),
		Env:       env,
		ClientURL: strings.TrimRight(getEnv("CLIENT_URL", "http://localhost:5173"), "/"),
		DB: DBConfig{
			DSN:             getEnv("DB_DSN", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "church"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			AutoMigrate:     getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET_KEY", ""),
			TokenTTL:      getEnvDuration("JWT_TTL", 24*time.Hour),
			CookieName:    getEnv("AUTH_COOKIE_NAME", "token"),
			CookieSecure:  getEnvBool("AUTH_COOKIE_SECURE", env == EnvProduction),
			ResetTokenTTL: getEnvDuration("RESET_TOKEN_TTL", time.Hour),
		},
		Images: ImagesConfig{
			CloudinaryURL: getEnv("CLOUDINARY_URL", ""),
			CloudName:     getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:        getEnv("CLOUDINARY_API_KEY", ""),
			APISecret:     getEnv("CLOUDINARY_API_SECRET", ""),
			Folder:        getEnv("IMAGE_FOLDER", "church"),
			MaxUploadSize: int64(getEnvInt("IMAGE_MAX_UPLOAD_BYTES", 10<<20)),
			MaxDimension:  getEnvInt("IMAGE_MAX_DIMENSION", 1600),
			UploadTimeout: getEnvDuration("IMAGE_UPLOAD_TIMEOUT", 20*time.Second),
		},
		Redis: RedisConfig{
			URL:       getEnv("REDIS_URL", ""),
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "church:"),
			CacheTTL:  getEnvDuration("CACHE_TTL", 5*time.Minute),
			StatsTTL:  getEnvDuration("STATS_CACHE_TTL", time.Minute),
		},
		Email: EmailConfig{
			Host:     getEnv("EMAIL_HOST", "smtp.gmail.com"),
			Port:     getEnvInt("EMAIL_PORT", 587),
			Username: getEnv("EMAIL_USER", ""),
			Password: getEnv("EMAIL_PASS", ""),
			From:     getEnv("EMAIL_FROM", ""),
		},
		RateLimit: RateLimitConfig{
			Enabled:      getEnvBool("RATE_LIMIT_ENABLED", true),
			GlobalLimit:  getEnvInt("RATE_LIMIT_GLOBAL", 100),
			GlobalWindow: getEnvDuration("RATE_LIMIT_GLOBAL_WINDOW", 15*time.Minute),
			AuthLimit:    getEnvInt("RATE_LIMIT_AUTH", 5),
			AuthWindow:   getEnvDuration("RATE_LIMIT_AUTH_WINDOW", time.Hour),
			UploadLimit:  getEnvInt("RATE_LIMIT_UPLOAD", 10),
			UploadWindow: getEnvDuration("RATE_LIMIT_UPLOAD_WINDOW", time.Hour),
		},
		Reconcile: ReconcileConfig{
			Enabled:         getEnvBool("RECONCILE_ENABLED", false),
			Schedule:        getEnv("RECONCILE_SCHEDULE", "15 2 * * *"),
			MinAge:          getEnvDuration("RECONCILE_MIN_AGE", 24*time.Hour),
			DryRun:          getEnvBool("RECONCILE_DRY_RUN", false),
			TokenPurgeEvery: getEnv("RESET_TOKEN_PURGE_SCHEDULE", "@hourly"),
		},
		Bootstrap: BootstrapConfig{
			AdminUserName: getEnv("BOOTSTRAP_ADMIN_USERNAME", "admin"),
			AdminEmail:    getEnv("BOOTSTRAP_ADMIN_EMAIL", ""),
			AdminPassword: getEnv("BOOTSTRAP_ADMIN_PASSWORD", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every missing required variable at once.
func (c Config) Validate() error {
	var missing []string
	if c.Auth.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET_KEY")
	}
	if c.ClientURL == "" {
		missing = append(missing, "CLIENT_URL")
	}
	if c.IsProduction() {
		if c.Email.Username == "" {
			missing = append(missing, "EMAIL_USER")
		}
		if c.Email.Password == "" {
			missing = append(missing, "EMAIL_PASS")
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func (c ImagesConfig) CloudinaryConfigured() bool {
	return c.CloudinaryURL != "" || (c.CloudName != "" && c.APIKey != "" && c.APISecret != "")
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode, c.TimeZone)
}
