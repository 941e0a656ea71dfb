package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertSecretToConfig(t *testing.T) {
	secret := &SecretManagerConfig{
		Application: SecretApplicationConfig{
			Port:               "9090",
			Name:               "Rent A Ride",
			BaseURL:            "https://rent.example.com",
			JWTSecret:          "jwt",
			LinkSecret:         "link",
			CORSAllowedOrigins: "https://rent.example.com, https://admin.example.com",
			RateLimitWindow:    "30m",
		},
		Admin: SecretAdminConfig{
			Email:        "owner@example.com",
			SMSAddresses: "5551234567@vtext.com,",
		},
		Database: SecretDatabaseConfig{Name: "rentals", MaxOpenConns: "20"},
		Redis:    SecretRedisConfig{Host: "redis", Port: "6379", DB: "2"},
		Email:    SecretEmailConfig{Provider: "smtp", SMTPPort: "465", SMTPUseTLS: "false"},
	}

	cfg, err := convertSecretToConfig(secret)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "link", cfg.LinkSecret)
	assert.Equal(t, "https://rent.example.com", cfg.Email.Templates.BaseURL)
	assert.Equal(t, []string{"https://rent.example.com", "https://admin.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, []string{"5551234567@vtext.com"}, cfg.Admin.SMSAddresses)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5, cfg.Database.MaxIdleConns)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 465, cfg.Email.SMTP.Port)
	assert.False(t, cfg.Email.SMTP.UseTLS)
	assert.Equal(t, 5, cfg.RateLimit.Requests)
	assert.Equal(t, 30*time.Minute, cfg.RateLimit.Window)
}

func TestConvertSecretToConfig_InvalidNumber(t *testing.T) {
	secret := &SecretManagerConfig{
		Redis: SecretRedisConfig{DB: "zero"},
	}

	_, err := convertSecretToConfig(secret)
	assert.ErrorContains(t, err, "invalid redis db")
}

func TestAdminRecipients(t *testing.T) {
	tests := []struct {
		name  string
		admin AdminConfig
		want  []string
	}{
		{name: "notify list wins", admin: AdminConfig{Email: "a@x.com", NotifyEmails: []string{"b@x.com"}}, want: []string{"b@x.com"}},
		{name: "falls back to login email", admin: AdminConfig{Email: "a@x.com"}, want: []string{"a@x.com"}},
		{name: "nothing configured", admin: AdminConfig{}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.admin.Recipients())
		})
	}
}
