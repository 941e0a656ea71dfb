package email

import (
	"context"
	"sync"

	"car-rental/pkg/logger"
)

// SentEmail is an email captured by NoOpProvider
type SentEmail struct {
	To          []string
	Subject     string
	Template    string
	Body        EmailBody
	Attachments []Attachment
}

// NoOpProvider implements the Provider interface without delivering anything.
// It remembers what would have been sent so the standalone runner can log it
// and tests can assert on it.
type NoOpProvider struct {
	mode string

	mu   sync.Mutex
	sent []SentEmail
}

// NewNoOpProvider creates a new no-op email provider
func NewNoOpProvider(mode string) *NoOpProvider {
	return &NoOpProvider{
		mode: mode,
	}
}

// SendEmail records the email
func (n *NoOpProvider) SendEmail(ctx context.Context, to []string, subject string, body EmailBody) error {
	n.record(SentEmail{To: to, Subject: subject, Body: body, Attachments: body.Attachments})
	return nil
}

// SendTemplateEmail renders the template so template errors still surface,
// then records the email
func (n *NoOpProvider) SendTemplateEmail(ctx context.Context, to []string, templateName string, data interface{}, attachments ...Attachment) error {
	subject, body, err := buildTemplateEmail(templateName, data, attachments)
	if err != nil {
		return err
	}
	n.record(SentEmail{To: to, Subject: subject, Template: templateName, Body: body, Attachments: attachments})
	return nil
}

// ValidateProvider always succeeds
func (n *NoOpProvider) ValidateProvider(ctx context.Context) error {
	if n.mode != "silent" {
		logger.Infof("email provider disabled (mode: %s), emails will only be logged", n.mode)
	}
	return nil
}

// Sent returns a copy of everything recorded so far
func (n *NoOpProvider) Sent() []SentEmail {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]SentEmail, len(n.sent))
	copy(out, n.sent)
	return out
}

func (n *NoOpProvider) record(e SentEmail) {
	n.mu.Lock()
	n.sent = append(n.sent, e)
	n.mu.Unlock()

	if n.mode != "silent" {
		logger.Debugf("email to %v suppressed: %s\n%s", e.To, e.Subject, e.Body.Text)
	}
}
