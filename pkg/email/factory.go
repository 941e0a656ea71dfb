package email

import (
	"context"
	"fmt"

	"car-rental/pkg/config"
)

// email provider constants
const (
	ProviderSMTP     = "smtp"
	ProviderSendGrid = "sendgrid"
	ProviderNoOp     = "noop"
)

// NewEmailProvider creates an email provider based on configuration
func NewEmailProvider(ctx context.Context, cfg *config.EmailConfig) (Provider, error) {
	var (
		provider Provider
		err      error
	)

	switch cfg.Provider {
	case ProviderSMTP:
		if cfg.SMTP.Host == "" || cfg.SMTP.Port == 0 || cfg.SMTP.Username == "" {
			return nil, fmt.Errorf("SMTP host, port, and username are required")
		}
		provider, err = NewSMTPProvider(cfg.SMTP)

	case ProviderSendGrid:
		if cfg.SendGrid.APIKey == "" {
			return nil, fmt.Errorf("SendGrid API key is required")
		}
		provider, err = NewSendGridProvider(cfg.SendGrid)

	case ProviderNoOp, "":
		provider = NewNoOpProvider("disabled")

	default:
		return nil, fmt.Errorf("unsupported email provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	if err := provider.ValidateProvider(ctx); err != nil {
		return nil, fmt.Errorf("invalid email provider configuration: %w", err)
	}
	return provider, nil
}
