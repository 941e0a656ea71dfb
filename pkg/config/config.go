package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// database provider constants
const (
	DatabaseProviderPostgres = "postgres"
	DatabaseProviderMemory   = "memory"
)

type Config struct {
	Port       string          `json:"port"`
	JWTSecret  string          `json:"jwt_secret"`
	LinkSecret string          `json:"link_secret"`
	App        AppConfig       `json:"app"`
	Admin      AdminConfig     `json:"admin"`
	Database   DatabaseConfig  `json:"database"`
	Redis      RedisConfig     `json:"redis"`
	Storage    StorageConfig   `json:"storage"`
	Email      EmailConfig     `json:"email"`
	RateLimit  RateLimitConfig `json:"rate_limit"`
	CORS       CORSConfig      `json:"cors"`
	Log        LogConfig       `json:"log"`
}

// AppConfig describes where customer and admin links point to
type AppConfig struct {
	Name    string `json:"name"`
	BaseURL string `json:"base_url"` // frontend origin the emailed links open
}

// AdminConfig holds the single business admin account and its notification targets
type AdminConfig struct {
	Email        string   `json:"email"`
	PasswordHash string   `json:"password_hash"` // bcrypt
	NotifyEmails []string `json:"notify_emails"`
	SMSAddresses []string `json:"sms_addresses"` // email-to-SMS gateway addresses, e.g. 5551234567@vtext.com
}

// Recipients returns the addresses admin notifications go to, the admin
// login email when none are configured
func (a AdminConfig) Recipients() []string {
	if len(a.NotifyEmails) > 0 {
		return a.NotifyEmails
	}
	if a.Email == "" {
		return nil
	}
	return []string{a.Email}
}

type DatabaseConfig struct {
	Provider        string        `json:"provider"`
	Name            string        `json:"name"`
	Host            string        `json:"host"`
	Port            string        `json:"port"`
	Username        string        `json:"username"`
	Password        string        `json:"password"`
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`
	SSLMode         string        `json:"ssl_mode"` // e.g., "disable", "require", "verify-ca", "verify-full"
}

type RedisConfig struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

type StorageConfig struct {
	Provider     string      `json:"provider"`
	LocalPath    string      `json:"local_path"`
	LocalBaseURL string      `json:"local_base_url"`
	GCSBucket    string      `json:"gcs_bucket"`
	MinIO        MinIOConfig `json:"minio"`
}

type MinIOConfig struct {
	Endpoint       string `json:"endpoint"`
	AccessKey      string `json:"access_key"`
	SecretKey      string `json:"secret_key"`
	Bucket         string `json:"bucket"`
	UseSSL         bool   `json:"use_ssl"`
	PublicEndpoint string `json:"public_endpoint"`
}

type EmailConfig struct {
	Provider  string              `json:"provider"`
	SMTP      SMTPConfig          `json:"smtp"`
	SendGrid  SendGridConfig      `json:"sendgrid"`
	Templates EmailTemplateConfig `json:"templates"`
}

type SMTPConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	From     string `json:"from"`
	UseTLS   bool   `json:"use_tls"`
}

type SendGridConfig struct {
	APIKey    string `json:"api_key"`
	FromEmail string `json:"from_email"`
	FromName  string `json:"from_name"`
}

type EmailTemplateConfig struct {
	BaseURL string `json:"base_url"`
	AppName string `json:"app_name"`
}

// RateLimitConfig bounds anonymous submissions of the public request form
type RateLimitConfig struct {
	Requests int           `json:"requests"`
	Window   time.Duration `json:"window"`
}

type CORSConfig struct {
	AllowedOrigins []string `json:"allowed_origins"`
	AllowedMethods []string `json:"allowed_methods"`
	AllowedHeaders []string `json:"allowed_headers"`
}

type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

func init() {
	if !isGCP {
		err := godotenv.Load()
		if err != nil {
			log.Println("Warning: Could not find or load .env file.")
		}
	}
}

func NewConfig() *Config {
	cfg := &Config{
		Port:       getOptionalSecret("PORT", "8080"),
		JWTSecret:  getRequiredSecret("JWT_SECRET"),
		LinkSecret: getRequiredSecret("LINK_SECRET"),
		App: AppConfig{
			Name:    getOptionalSecret("APP_NAME", "Car Rental"),
			BaseURL: getRequiredSecret("APP_BASE_URL"),
		},
		Admin: AdminConfig{
			Email:        getRequiredSecret("ADMIN_EMAIL"),
			PasswordHash: getRequiredSecret("ADMIN_PASSWORD_HASH"),
			NotifyEmails: splitList(getOptionalSecret("ADMIN_NOTIFY_EMAILS", "")),
			SMSAddresses: splitList(getOptionalSecret("ADMIN_SMS_ADDRESSES", "")),
		},
		Database: DatabaseConfig{
			Provider: getOptionalSecret("DB_PROVIDER", DatabaseProviderPostgres),
		},
		Redis: RedisConfig{
			Host:     getOptionalSecret("REDIS_HOST", "localhost"),
			Port:     getOptionalSecret("REDIS_PORT", "6379"),
			Password: getOptionalSecret("REDIS_PASSWORD", ""),
			DB:       parseOptionalInt("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Provider:     getOptionalSecret("STORAGE_PROVIDER", "local"),
			LocalPath:    getOptionalSecret("STORAGE_LOCAL_PATH", "./data/rentals"),
			LocalBaseURL: getOptionalSecret("STORAGE_LOCAL_BASE_URL", "http://localhost:8080/api/v1/admin/files"),
			GCSBucket:    getOptionalSecret("GCS_BUCKET", ""),
			MinIO: MinIOConfig{
				Endpoint:       getOptionalSecret("MINIO_ENDPOINT", ""),
				AccessKey:      getOptionalSecret("MINIO_ACCESS_KEY", ""),
				SecretKey:      getOptionalSecret("MINIO_SECRET_KEY", ""),
				Bucket:         getOptionalSecret("MINIO_BUCKET", "rentals"),
				UseSSL:         parseOptionalBool("MINIO_USE_SSL", false),
				PublicEndpoint: getOptionalSecret("MINIO_PUBLIC_ENDPOINT", ""),
			},
		},
		Email: EmailConfig{
			Provider: getOptionalSecret("EMAIL_PROVIDER", "noop"),
			SMTP: SMTPConfig{
				Host:     getOptionalSecret("SMTP_HOST", ""),
				Port:     parseOptionalInt("SMTP_PORT", 587),
				Username: getOptionalSecret("SMTP_USERNAME", ""),
				Password: getOptionalSecret("SMTP_PASSWORD", ""),
				From:     getOptionalSecret("SMTP_FROM", ""),
				UseTLS:   parseOptionalBool("SMTP_USE_TLS", true),
			},
			SendGrid: SendGridConfig{
				APIKey:    getOptionalSecret("SENDGRID_API_KEY", ""),
				FromEmail: getOptionalSecret("SENDGRID_FROM_EMAIL", ""),
				FromName:  getOptionalSecret("SENDGRID_FROM_NAME", ""),
			},
			Templates: EmailTemplateConfig{
				BaseURL: getOptionalSecret("APP_BASE_URL", ""),
				AppName: getOptionalSecret("APP_NAME", "Car Rental"),
			},
		},
		RateLimit: RateLimitConfig{
			Requests: parseOptionalInt("RATE_LIMIT_REQUESTS", 5),
			Window:   parseOptionalDuration("RATE_LIMIT_WINDOW", time.Hour),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getOptionalSecret("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
			AllowedMethods: splitList(getOptionalSecret("CORS_ALLOWED_METHODS", "GET,POST,OPTIONS")),
			AllowedHeaders: splitList(getOptionalSecret("CORS_ALLOWED_HEADERS", "Content-Type,Authorization")),
		},
		Log: LogConfig{
			Level:  getOptionalSecret("LOG_LEVEL", "info"),
			Format: getOptionalSecret("LOG_FORMAT", "json"),
		},
	}

	if cfg.Database.Provider == DatabaseProviderPostgres {
		cfg.Database.Name = getRequiredSecret("DB_NAME")
		cfg.Database.Host = getRequiredSecret("DB_HOST")
		cfg.Database.Port = getRequiredSecret("DB_PORT")
		cfg.Database.Username = getRequiredSecret("DB_USERNAME")
		cfg.Database.Password = getRequiredSecret("DB_PASSWORD")
		cfg.Database.MaxOpenConns = parseOptionalInt("DB_MAX_OPEN_CONNS", 10)
		cfg.Database.MaxIdleConns = parseOptionalInt("DB_MAX_IDLE_CONNS", 5)
		cfg.Database.ConnMaxLifetime = parseOptionalDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute)
		cfg.Database.SSLMode = getOptionalSecret("DB_SSL_MODE", "disable")
	}

	return cfg
}

// splitList parses a comma-separated value, dropping empty entries
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
