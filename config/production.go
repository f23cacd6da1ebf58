// Package config provides configuration management and environment variable handling for the application
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirphl/Sahel-Estates/utils"
)

// ProductionConfig holds all configuration for the CMS backend
type ProductionConfig struct {
	Database   DatabaseConfig   `json:"database"`
	Server     ServerConfig     `json:"server"`
	Security   SecurityConfig   `json:"security"`
	Session    SessionConfig    `json:"session"`
	Logging    LoggingConfig    `json:"logging"`
	Metrics    MetricsConfig    `json:"metrics"`
	Cache      CacheConfig      `json:"cache"`
	Storage    StorageConfig    `json:"storage"`
	Captcha    CaptchaConfig    `json:"captcha"`
	Deployment DeploymentConfig `json:"deployment"`
	Admin      AdminConfig      `json:"admin"`
}

type DatabaseConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	Name            string        `json:"name"`
	User            string        `json:"user"`
	Password        string        `json:"password"`
	SSLMode         string        `json:"ssl_mode"`
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `json:"conn_max_idle_time"`
	SlowQueryTime   time.Duration `json:"slow_query_time"`
	AutoMigrate     bool          `json:"auto_migrate"`
}

// DSN returns the libpq connection string for the database
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type ServerConfig struct {
	Host              string        `json:"host"`
	Port              int           `json:"port"`
	ReadTimeout       time.Duration `json:"read_timeout"`
	WriteTimeout      time.Duration `json:"write_timeout"`
	IdleTimeout       time.Duration `json:"idle_timeout"`
	ShutdownTimeout   time.Duration `json:"shutdown_timeout"`
	BodyLimit         int           `json:"body_limit"`
	TrustedProxies    []string      `json:"trusted_proxies"`
	ProxyHeader       string        `json:"proxy_header"`
	EnableCompression bool          `json:"enable_compression"`
	AdminUIDir        string        `json:"admin_ui_dir"`
}

type SecurityConfig struct {
	AllowedOrigins   []string `json:"allowed_origins"`
	AllowedMethods   []string `json:"allowed_methods"`
	AllowedHeaders   []string `json:"allowed_headers"`
	AllowCredentials bool     `json:"allow_credentials"`
	CORSMaxAge       int      `json:"cors_max_age"`

	AuthRateLimit    int           `json:"auth_rate_limit"`    // requests per window
	GlobalRateLimit  int           `json:"global_rate_limit"`  // requests per window
	ContactRateLimit int           `json:"contact_rate_limit"` // submissions per window
	RateLimitWindow  time.Duration `json:"rate_limit_window"`

	CSPPolicy      string `json:"csp_policy"`
	XFrameOptions  string `json:"x_frame_options"`
	ReferrerPolicy string `json:"referrer_policy"`
	HSTSMaxAge     int    `json:"hsts_max_age"`

	PasswordMinLength int `json:"password_min_length"`
	BcryptCost        int `json:"bcrypt_cost"`
}

// SessionConfig configures admin session tokens, the session cookie and the page gate
type SessionConfig struct {
	SecretKey     string        `json:"-"`
	TTL           time.Duration `json:"ttl"`
	Issuer        string        `json:"issuer"`
	CookieName    string        `json:"cookie_name"`
	ProtectedPath string        `json:"protected_path"`
	LoginPath     string        `json:"login_path"`
	DashboardPath string        `json:"dashboard_path"`
}

type LoggingConfig struct {
	Level      string `json:"level"`  // debug, info, warn, error
	Format     string `json:"format"` // json, text
	Output     string `json:"output"` // stdout, file, both
	FilePath   string `json:"file_path"`
	MaxSize    int    `json:"max_size"` // MB
	MaxBackups int    `json:"max_backups"`
	MaxAge     int    `json:"max_age"` // days
	Compress   bool   `json:"compress"`
	AddSource  bool   `json:"add_source"`

	EnableAccessLog bool   `json:"enable_access_log"`
	AccessLogPath   string `json:"access_log_path"`
}

type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

type CacheConfig struct {
	Enabled     bool          `json:"enabled"`
	RedisURL    string        `json:"redis_url"`
	RedisDB     int           `json:"redis_db"`
	RedisPrefix string        `json:"redis_prefix"`
	DefaultTTL  time.Duration `json:"default_ttl"`
}

// StorageConfig configures the S3-compatible bucket holding uploaded media
type StorageConfig struct {
	Enabled         bool   `json:"enabled"`
	Endpoint        string `json:"endpoint"`
	Region          string `json:"region"`
	Bucket          string `json:"bucket"`
	AccessKeyID     string `json:"-"`
	SecretAccessKey string `json:"-"`
	UsePathStyle    bool   `json:"use_path_style"`
	PublicBaseURL   string `json:"public_base_url"`
}

type CaptchaConfig struct {
	Enabled bool          `json:"enabled"`
	TTL     time.Duration `json:"ttl"`
	// Tolerance is the accepted angle difference in degrees
	Tolerance int `json:"tolerance"`
}

type DeploymentConfig struct {
	Domain      string `json:"domain"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
	CommitHash  string `json:"commit_hash"`
	BuildTime   string `json:"build_time"`
}

// IsProduction reports whether the service runs in the production environment
func (d DeploymentConfig) IsProduction() bool {
	return strings.EqualFold(d.Environment, "production")
}

// AdminConfig describes the bootstrap super admin created on first start
type AdminConfig struct {
	BootstrapEmail    string `json:"bootstrap_email"`
	BootstrapPassword string `json:"-"`
	BootstrapName     string `json:"bootstrap_name"`
}

// LoadProductionConfig loads and validates configuration from environment variables
func LoadProductionConfig() (*ProductionConfig, error) {
	if err := loadEnvFile(".env"); err != nil {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &ProductionConfig{
		Database: DatabaseConfig{
			Host:            getEnvString("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			Name:            getEnvString("DB_NAME", "sahel"),
			User:            getEnvString("DB_USER", "postgres"),
			Password:        getEnvString("DB_PASSWORD", ""),
			SSLMode:         getEnvString("DB_SSL_MODE", "require"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 50),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: getEnvDuration("DB_CONN_MAX_IDLE_TIME", 15*time.Minute),
			SlowQueryTime:   getEnvDuration("DB_SLOW_QUERY_TIME", 1*time.Second),
			AutoMigrate:     getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Server: ServerConfig{
			Host:              getEnvString("SERVER_HOST", "0.0.0.0"),
			Port:              getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:       getEnvDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:      getEnvDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
			IdleTimeout:       getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout:   getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			BodyLimit:         getEnvInt("SERVER_BODY_LIMIT", utils.MaxVideoUploadBytes+1<<20),
			TrustedProxies:    getEnvStringSlice("SERVER_TRUSTED_PROXIES", []string{"127.0.0.1"}),
			ProxyHeader:       getEnvString("SERVER_PROXY_HEADER", "X-Real-IP"),
			EnableCompression: getEnvBool("SERVER_ENABLE_COMPRESSION", true),
			AdminUIDir:        getEnvString("ADMIN_UI_DIR", "./web/admin"),
		},
		Security: SecurityConfig{
			AllowedOrigins:    getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{"https://sahel-estates.com", "https://www.sahel-estates.com"}),
			AllowedMethods:    getEnvStringSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
			AllowedHeaders:    getEnvStringSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "X-Requested-With", "Accept-Language"}),
			AllowCredentials:  getEnvBool("CORS_ALLOW_CREDENTIALS", true),
			CORSMaxAge:        getEnvInt("CORS_MAX_AGE", utils.CORSMaxAge),
			AuthRateLimit:     getEnvInt("AUTH_RATE_LIMIT", 10),
			GlobalRateLimit:   getEnvInt("GLOBAL_RATE_LIMIT", 1000),
			ContactRateLimit:  getEnvInt("CONTACT_RATE_LIMIT", 5),
			RateLimitWindow:   getEnvDuration("RATE_LIMIT_WINDOW", 1*time.Minute),
			CSPPolicy:         getEnvString("CSP_POLICY", "default-src 'self'; img-src 'self' data: https:; media-src 'self' https:; style-src 'self' 'unsafe-inline'"),
			XFrameOptions:     getEnvString("X_FRAME_OPTIONS", "DENY"),
			ReferrerPolicy:    getEnvString("REFERRER_POLICY", "strict-origin-when-cross-origin"),
			HSTSMaxAge:        getEnvInt("HSTS_MAX_AGE", 31536000),
			PasswordMinLength: getEnvInt("PASSWORD_MIN_LENGTH", 8),
			BcryptCost:        getEnvInt("BCRYPT_COST", 12),
		},
		Session: SessionConfig{
			SecretKey:     getEnvString("SESSION_SECRET", ""),
			TTL:           getEnvDuration("SESSION_TTL", utils.AdminSessionTTL),
			Issuer:        getEnvString("SESSION_ISSUER", "sahel-estates"),
			CookieName:    getEnvString("SESSION_COOKIE_NAME", utils.AdminSessionCookieName),
			ProtectedPath: getEnvString("ADMIN_PROTECTED_PATH", "/admin"),
			LoginPath:     getEnvString("ADMIN_LOGIN_PATH", "/admin/login"),
			DashboardPath: getEnvString("ADMIN_DASHBOARD_PATH", "/admin"),
		},
		Logging: LoggingConfig{
			Level:           getEnvString("LOG_LEVEL", "info"),
			Format:          getEnvString("LOG_FORMAT", "json"),
			Output:          getEnvString("LOG_OUTPUT", "stdout"),
			FilePath:        getEnvString("LOG_FILE_PATH", "/var/log/sahel/app.log"),
			MaxSize:         getEnvInt("LOG_MAX_SIZE", 100),
			MaxBackups:      getEnvInt("LOG_MAX_BACKUPS", 10),
			MaxAge:          getEnvInt("LOG_MAX_AGE", 30),
			Compress:        getEnvBool("LOG_COMPRESS", true),
			AddSource:       getEnvBool("LOG_ADD_SOURCE", false),
			EnableAccessLog: getEnvBool("LOG_ENABLE_ACCESS", true),
			AccessLogPath:   getEnvString("LOG_ACCESS_PATH", ""),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
			Path:    getEnvString("METRICS_PATH", "/metrics"),
		},
		Cache: CacheConfig{
			Enabled:     getEnvBool("CACHE_ENABLED", true),
			RedisURL:    getEnvString("CACHE_REDIS_URL", "redis://localhost:6379"),
			RedisDB:     getEnvInt("CACHE_REDIS_DB", 0),
			RedisPrefix: getEnvString("CACHE_REDIS_PREFIX", "sahel:"),
			DefaultTTL:  getEnvDuration("CACHE_DEFAULT_TTL", utils.PublicContentCacheTTL),
		},
		Storage: StorageConfig{
			Enabled:         getEnvBool("STORAGE_ENABLED", true),
			Endpoint:        getEnvString("STORAGE_ENDPOINT", ""),
			Region:          getEnvString("STORAGE_REGION", "us-east-1"),
			Bucket:          getEnvString("STORAGE_BUCKET", "sahel-media"),
			AccessKeyID:     getEnvString("STORAGE_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnvString("STORAGE_SECRET_ACCESS_KEY", ""),
			UsePathStyle:    getEnvBool("STORAGE_USE_PATH_STYLE", true),
			PublicBaseURL:   getEnvString("STORAGE_PUBLIC_BASE_URL", ""),
		},
		Captcha: CaptchaConfig{
			Enabled:   getEnvBool("CAPTCHA_ENABLED", true),
			TTL:       getEnvDuration("CAPTCHA_TTL", 2*time.Minute),
			Tolerance: getEnvInt("CAPTCHA_TOLERANCE", 8),
		},
		Deployment: DeploymentConfig{
			Domain:      getEnvString("DOMAIN", "sahel-estates.com"),
			Environment: getEnvString("APP_ENV", "development"),
			Version:     getEnvString("VERSION", "1.0.0"),
			CommitHash:  getEnvString("COMMIT_HASH", "unknown"),
			BuildTime:   getEnvString("BUILD_TIME", "unknown"),
		},
		Admin: AdminConfig{
			BootstrapEmail:    getEnvString("ADMIN_BOOTSTRAP_EMAIL", ""),
			BootstrapPassword: getEnvString("ADMIN_BOOTSTRAP_PASSWORD", ""),
			BootstrapName:     getEnvString("ADMIN_BOOTSTRAP_NAME", "Super Admin"),
		},
	}

	// outside production an unset secret falls back to the development value
	if cfg.Session.SecretKey == "" && !cfg.Deployment.IsProduction() {
		cfg.Session.SecretKey = utils.DevelopmentSessionSecret
	}

	if err := ValidateProductionConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ValidateProductionConfig validates the configuration and reports every problem at once
func ValidateProductionConfig(cfg *ProductionConfig) error {
	var errors []string

	if cfg.Database.Host == "" {
		errors = append(errors, "DB_HOST is required")
	}
	if cfg.Database.Port <= 0 || cfg.Database.Port > 65535 {
		errors = append(errors, "DB_PORT must be between 1 and 65535")
	}
	if cfg.Database.Name == "" {
		errors = append(errors, "DB_NAME is required")
	}
	if cfg.Database.User == "" {
		errors = append(errors, "DB_USER is required")
	}

	if cfg.Session.SecretKey == "" {
		errors = append(errors, "SESSION_SECRET is required")
	}
	if cfg.Deployment.IsProduction() {
		if cfg.Session.SecretKey == utils.DevelopmentSessionSecret {
			errors = append(errors, "SESSION_SECRET must not use the development default in production")
		}
		if len(cfg.Session.SecretKey) < 32 {
			errors = append(errors, "SESSION_SECRET must be at least 32 characters long in production")
		}
		if cfg.Database.Password == "" {
			errors = append(errors, "DB_PASSWORD is required in production")
		}
	}
	if cfg.Session.TTL <= 0 {
		errors = append(errors, "SESSION_TTL must be positive")
	}
	if cfg.Session.CookieName == "" {
		errors = append(errors, "SESSION_COOKIE_NAME is required")
	}
	if !strings.HasPrefix(cfg.Session.ProtectedPath, "/") {
		errors = append(errors, "ADMIN_PROTECTED_PATH must start with /")
	}
	if !strings.HasPrefix(cfg.Session.LoginPath, cfg.Session.ProtectedPath) {
		errors = append(errors, "ADMIN_LOGIN_PATH must live under ADMIN_PROTECTED_PATH")
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		errors = append(errors, "SERVER_PORT must be between 1 and 65535")
	}
	if cfg.Server.ReadTimeout <= 0 {
		errors = append(errors, "SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		errors = append(errors, "SERVER_WRITE_TIMEOUT must be positive")
	}

	if cfg.Security.PasswordMinLength < 8 {
		errors = append(errors, "PASSWORD_MIN_LENGTH must be at least 8")
	}
	if cfg.Security.BcryptCost < 10 || cfg.Security.BcryptCost > 14 {
		errors = append(errors, "BCRYPT_COST must be between 10 and 14")
	}

	switch cfg.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		errors = append(errors, "LOG_LEVEL must be one of: debug, info, warn, error")
	}
	switch cfg.Logging.Output {
	case "", "stdout", "file", "both":
	default:
		errors = append(errors, "LOG_OUTPUT must be one of: stdout, file, both")
	}

	if cfg.Cache.Enabled && cfg.Cache.RedisURL == "" {
		errors = append(errors, "CACHE_REDIS_URL is required when cache is enabled")
	}

	if cfg.Storage.Enabled {
		if cfg.Storage.Bucket == "" {
			errors = append(errors, "STORAGE_BUCKET is required when storage is enabled")
		}
		if cfg.Storage.AccessKeyID == "" || cfg.Storage.SecretAccessKey == "" {
			errors = append(errors, "STORAGE_ACCESS_KEY_ID and STORAGE_SECRET_ACCESS_KEY are required when storage is enabled")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}
