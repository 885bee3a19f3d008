package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultSessionSecret = "your-session-secret-change-in-production"

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App     AppConfig
	Redis   RedisConfig
	Session SessionConfig
	Email   EmailConfig
	MinIO   MinIOConfig
	Image   ImageConfig
	Job     JobConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	ClientURL   string // CORS origin + link trong email reset password
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// SessionConfig cho cookie session
type SessionConfig struct {
	Secret        string
	CookieName    string
	TTL           time.Duration // session mặc định (cookie không có Max-Age)
	RememberTTL   time.Duration // "remember me"
	ResetTokenTTL time.Duration // token quên mật khẩu
	Secure        bool
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	From         string
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string // base URL public, rỗng thì dùng endpoint
}

type ImageConfig struct {
	MaxUploadMB int
	Width       int
	Height      int
	Quality     int
}

type JobConfig struct {
	OrphanSweepCron   string
	OrphanMinAgeHours int
	DeleteImageRetry  int
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Bloggerum API"),
			Environment: env,
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			ClientURL:   getEnv("CORS_ORIGIN", "http://localhost:3000"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Session: SessionConfig{
			Secret:        getEnv("SESSION_SECRET", defaultSessionSecret),
			CookieName:    getEnv("SESSION_COOKIE_NAME", "uid"),
			TTL:           getEnvDuration("SESSION_TTL", 24*time.Hour),
			RememberTTL:   getEnvDuration("SESSION_REMEMBER_TTL", 365*24*time.Hour),
			ResetTokenTTL: getEnvDuration("RESET_TOKEN_TTL", 72*time.Hour),
			Secure:        env == "production",
		},
		Email: EmailConfig{
			SMTPHost:     getEnv("SMTP_HOST", "localhost"),
			SMTPPort:     getEnv("SMTP_PORT", "1025"),
			SMTPUsername: getEnv("SMTP_USERNAME", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			From:         getEnv("EMAIL_FROM", "noreply@bloggerum.dev"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "bloggerum"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			PublicURL: getEnv("MINIO_PUBLIC_URL", ""),
		},
		Image: ImageConfig{
			MaxUploadMB: getEnvInt("IMAGE_MAX_UPLOAD_MB", 10),
			Width:       getEnvInt("IMAGE_WIDTH", 1200),
			Height:      getEnvInt("IMAGE_HEIGHT", 800),
			Quality:     getEnvInt("IMAGE_WEBP_QUALITY", 80),
		},
		Job: JobConfig{
			OrphanSweepCron:   getEnv("JOB_ORPHAN_SWEEP_CRON", "30 3 * * *"),
			OrphanMinAgeHours: getEnvInt("JOB_ORPHAN_MIN_AGE_HOURS", 24),
			DeleteImageRetry:  getEnvInt("JOB_DELETE_IMAGE_RETRY", 10),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// IsProduction true khi APP_ENV=production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	if c.Session.TTL <= 0 || c.Session.RememberTTL < c.Session.TTL {
		return fmt.Errorf("SESSION_REMEMBER_TTL must be >= SESSION_TTL > 0")
	}
	if c.Image.Width <= 0 || c.Image.Height <= 0 {
		return fmt.Errorf("IMAGE_WIDTH and IMAGE_HEIGHT must be positive")
	}

	// Production không chạy với giá trị mặc định
	if c.IsProduction() {
		if c.Session.Secret == defaultSessionSecret || len(c.Session.Secret) < 32 {
			return fmt.Errorf("SESSION_SECRET must be set (>= 32 chars) in production")
		}
		if c.MinIO.AccessKey == "minioadmin" || c.MinIO.SecretKey == "minioadmin" {
			return fmt.Errorf("MINIO_ACCESS_KEY and MINIO_SECRET_KEY must be set in production")
		}
		if c.Email.SMTPUsername == "" || c.Email.SMTPPassword == "" {
			return fmt.Errorf("SMTP_USERNAME and SMTP_PASSWORD must be set in production")
		}
		if strings.Contains(c.App.ClientURL, "localhost") {
			fmt.Println("WARNING: CORS_ORIGIN points to localhost in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
