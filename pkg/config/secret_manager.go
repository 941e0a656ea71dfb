package config

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// SecretManagerConfig represents the JSON structure stored in Secret Manager
type SecretManagerConfig struct {
	Application SecretApplicationConfig `json:"application"`
	Admin       SecretAdminConfig       `json:"admin"`
	Database    SecretDatabaseConfig    `json:"database"`
	Redis       SecretRedisConfig       `json:"redis"`
	Storage     SecretStorageConfig     `json:"storage"`
	Email       SecretEmailConfig       `json:"email"`
}

// SecretApplicationConfig holds application-specific settings from Secret Manager
type SecretApplicationConfig struct {
	Port               string `json:"port"`
	Name               string `json:"name"`
	BaseURL            string `json:"base_url"`
	JWTSecret          string `json:"jwt_secret"`
	LinkSecret         string `json:"link_secret"`
	LogLevel           string `json:"log_level"`
	LogFormat          string `json:"log_format"`
	CORSAllowedOrigins string `json:"cors_allowed_origins"`
	RateLimitRequests  string `json:"rate_limit_requests"`
	RateLimitWindow    string `json:"rate_limit_window"`
}

// SecretAdminConfig holds the admin account from Secret Manager
type SecretAdminConfig struct {
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	NotifyEmails string `json:"notify_emails"`
	SMSAddresses string `json:"sms_addresses"`
}

// SecretDatabaseConfig holds database connection settings from Secret Manager
type SecretDatabaseConfig struct {
	Name            string `json:"name"`
	Host            string `json:"host"`
	Port            string `json:"port"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	MaxOpenConns    string `json:"max_open_conns"`
	MaxIdleConns    string `json:"max_idle_conns"`
	ConnMaxLifetime string `json:"conn_max_lifetime"`
	SSLMode         string `json:"ssl_mode"`
}

// SecretRedisConfig holds Redis connection settings from Secret Manager
type SecretRedisConfig struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Password string `json:"password"`
	DB       string `json:"db"`
}

// SecretStorageConfig holds storage provider settings from Secret Manager
type SecretStorageConfig struct {
	Provider  string `json:"provider"`
	GCSBucket string `json:"gcs_bucket"`
}

// SecretEmailConfig holds email service settings from Secret Manager
type SecretEmailConfig struct {
	Provider       string `json:"provider"`
	SMTPHost       string `json:"smtp_host"`
	SMTPPort       string `json:"smtp_port"`
	SMTPUsername   string `json:"smtp_username"`
	SMTPPassword   string `json:"smtp_password"`
	SMTPFrom       string `json:"smtp_from"`
	SMTPUseTLS     string `json:"smtp_use_tls"`
	SendGridAPIKey string `json:"sendgrid_api_key"`
	FromEmail      string `json:"from_email"`
	FromName       string `json:"from_name"`
}

// LoadFromSecretManager loads the whole configuration from a single JSON secret
func LoadFromSecretManager(ctx context.Context, projectID, secretName string) (*Config, error) {
	secretData, err := accessSecretVersion(fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, secretName))
	if err != nil {
		return nil, fmt.Errorf("failed to access secret: %w", err)
	}

	var secretConfig SecretManagerConfig
	if err := json.Unmarshal([]byte(secretData), &secretConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config JSON: %w", err)
	}

	return convertSecretToConfig(&secretConfig)
}

// convertSecretToConfig converts SecretManagerConfig to the Config structure
func convertSecretToConfig(secret *SecretManagerConfig) (*Config, error) {
	maxOpenConns, err := atoiOrDefault(secret.Database.MaxOpenConns, 10)
	if err != nil {
		return nil, fmt.Errorf("invalid max_open_conns: %w", err)
	}

	maxIdleConns, err := atoiOrDefault(secret.Database.MaxIdleConns, 5)
	if err != nil {
		return nil, fmt.Errorf("invalid max_idle_conns: %w", err)
	}

	connMaxLifetime, err := durationOrDefault(secret.Database.ConnMaxLifetime, 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid conn_max_lifetime: %w", err)
	}

	redisDB, err := atoiOrDefault(secret.Redis.DB, 0)
	if err != nil {
		return nil, fmt.Errorf("invalid redis db: %w", err)
	}

	smtpPort, err := atoiOrDefault(secret.Email.SMTPPort, 587)
	if err != nil {
		return nil, fmt.Errorf("invalid smtp_port: %w", err)
	}

	smtpUseTLS := true
	if secret.Email.SMTPUseTLS != "" {
		smtpUseTLS, err = strconv.ParseBool(secret.Email.SMTPUseTLS)
		if err != nil {
			return nil, fmt.Errorf("invalid smtp_use_tls: %w", err)
		}
	}

	rateLimitRequests, err := atoiOrDefault(secret.Application.RateLimitRequests, 5)
	if err != nil {
		return nil, fmt.Errorf("invalid rate_limit_requests: %w", err)
	}

	rateLimitWindow, err := durationOrDefault(secret.Application.RateLimitWindow, time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid rate_limit_window: %w", err)
	}

	return &Config{
		Port:       secret.Application.Port,
		JWTSecret:  secret.Application.JWTSecret,
		LinkSecret: secret.Application.LinkSecret,
		App: AppConfig{
			Name:    secret.Application.Name,
			BaseURL: secret.Application.BaseURL,
		},
		Admin: AdminConfig{
			Email:        secret.Admin.Email,
			PasswordHash: secret.Admin.PasswordHash,
			NotifyEmails: splitList(secret.Admin.NotifyEmails),
			SMSAddresses: splitList(secret.Admin.SMSAddresses),
		},
		Database: DatabaseConfig{
			Provider:        DatabaseProviderPostgres,
			Name:            secret.Database.Name,
			Host:            secret.Database.Host,
			Port:            secret.Database.Port,
			Username:        secret.Database.Username,
			Password:        secret.Database.Password,
			MaxOpenConns:    maxOpenConns,
			MaxIdleConns:    maxIdleConns,
			ConnMaxLifetime: connMaxLifetime,
			SSLMode:         secret.Database.SSLMode,
		},
		Redis: RedisConfig{
			Host:     secret.Redis.Host,
			Port:     secret.Redis.Port,
			Password: secret.Redis.Password,
			DB:       redisDB,
		},
		Storage: StorageConfig{
			Provider:  secret.Storage.Provider,
			GCSBucket: secret.Storage.GCSBucket,
		},
		Email: EmailConfig{
			Provider: secret.Email.Provider,
			SMTP: SMTPConfig{
				Host:     secret.Email.SMTPHost,
				Port:     smtpPort,
				Username: secret.Email.SMTPUsername,
				Password: secret.Email.SMTPPassword,
				From:     secret.Email.SMTPFrom,
				UseTLS:   smtpUseTLS,
			},
			SendGrid: SendGridConfig{
				APIKey:    secret.Email.SendGridAPIKey,
				FromEmail: secret.Email.FromEmail,
				FromName:  secret.Email.FromName,
			},
			Templates: EmailTemplateConfig{
				BaseURL: secret.Application.BaseURL,
				AppName: secret.Application.Name,
			},
		},
		RateLimit: RateLimitConfig{
			Requests: rateLimitRequests,
			Window:   rateLimitWindow,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(secret.Application.CORSAllowedOrigins),
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
		},
		Log: LogConfig{
			Level:  secret.Application.LogLevel,
			Format: secret.Application.LogFormat,
		},
	}, nil
}

func atoiOrDefault(value string, defaultValue int) (int, error) {
	if value == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(value)
}

func durationOrDefault(value string, defaultValue time.Duration) (time.Duration, error) {
	if value == "" {
		return defaultValue, nil
	}
	return time.ParseDuration(value)
}
