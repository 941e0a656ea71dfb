package email

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"car-rental/pkg/config"
	"car-rental/pkg/logger"
)

const sendGridEndpoint = "https://api.sendgrid.com/v3/mail/send"

// SendGridProvider implements Provider for SendGrid
type SendGridProvider struct {
	config   config.SendGridConfig
	client   *http.Client
	endpoint string
}

// NewSendGridProvider creates a new SendGrid email provider
func NewSendGridProvider(cfg config.SendGridConfig) (*SendGridProvider, error) {
	return &SendGridProvider{
		config:   cfg,
		client:   &http.Client{Timeout: 15 * time.Second},
		endpoint: sendGridEndpoint,
	}, nil
}

type sendGridAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendGridPersonalization struct {
	To []sendGridAddress `json:"to"`
}

type sendGridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendGridAttachment struct {
	Content     string `json:"content"`
	Type        string `json:"type,omitempty"`
	Filename    string `json:"filename"`
	Disposition string `json:"disposition"`
}

type sendGridMail struct {
	Personalizations []sendGridPersonalization `json:"personalizations"`
	From             sendGridAddress           `json:"from"`
	Subject          string                    `json:"subject,omitempty"`
	Content          []sendGridContent         `json:"content"`
	Attachments      []sendGridAttachment      `json:"attachments,omitempty"`
}

// SendEmail sends an email using SendGrid API
func (sg *SendGridProvider) SendEmail(ctx context.Context, to []string, subject string, body EmailBody) error {
	// one personalization per recipient keeps addresses private
	personalizations := make([]sendGridPersonalization, 0, len(to))
	for _, recipient := range to {
		personalizations = append(personalizations, sendGridPersonalization{
			To: []sendGridAddress{{Email: recipient}},
		})
	}

	// prepare content
	content := make([]sendGridContent, 0, 2)
	if body.Text != "" {
		content = append(content, sendGridContent{Type: "text/plain", Value: body.Text})
	}
	if body.HTML != "" {
		content = append(content, sendGridContent{Type: "text/html", Value: body.HTML})
	}

	// if no content provided, use a default text
	if len(content) == 0 {
		content = append(content, sendGridContent{Type: "text/plain", Value: subject})
	}

	attachments := make([]sendGridAttachment, 0, len(body.Attachments))
	for _, a := range body.Attachments {
		attachments = append(attachments, sendGridAttachment{
			Content:     base64.StdEncoding.EncodeToString(a.Data),
			Type:        a.ContentType,
			Filename:    a.Filename,
			Disposition: "attachment",
		})
	}

	payload := sendGridMail{
		Personalizations: personalizations,
		From:             sendGridAddress{Email: sg.config.FromEmail, Name: sg.config.FromName},
		Subject:          subject,
		Content:          content,
		Attachments:      attachments,
	}

	// convert to JSON
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	// create HTTP request
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sg.endpoint, bytes.NewReader(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// set headers
	req.Header.Set("Authorization", "Bearer "+sg.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	// send request
	resp, err := sg.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	// check response
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("SendGrid API returned status %d", resp.StatusCode)
	}

	return nil
}

// SendTemplateEmail sends an email using a template
func (sg *SendGridProvider) SendTemplateEmail(ctx context.Context, to []string, templateName string, data interface{}, attachments ...Attachment) error {
	subject, body, err := buildTemplateEmail(templateName, data, attachments)
	if err != nil {
		return err
	}
	return sg.SendEmail(ctx, to, subject, body)
}

// ValidateProvider validates the SendGrid configuration
func (sg *SendGridProvider) ValidateProvider(ctx context.Context) error {
	if sg.config.APIKey == "" {
		return fmt.Errorf("SendGrid API key is required")
	}
	if sg.config.FromEmail == "" {
		return fmt.Errorf("SendGrid from email is required")
	}
	if sg.config.FromName == "" {
		logger.Warn("SendGrid from name is not set, using default")
		sg.config.FromName = "Car Rental"
	}
	return nil
}
