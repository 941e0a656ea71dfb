package email

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"car-rental/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rentalData() RentalTemplateData {
	return RentalTemplateData{
		TemplateData: TemplateData{RecipientName: "Ana", AppName: "Island Car Rental", AppURL: "https://rent.example.com"},
		FolderID:     "folder-1",
		Vehicle:      "Silver Ford Focus",
		VIN:          "1FAFP404X1234ABCD",
		StartDate:    "2024-06-01",
		EndDate:      "2024-06-05",
		CostPerDay:   "$85/Day",
	}
}

func TestRenderTemplate(t *testing.T) {
	link := LinkTemplateData{RentalTemplateData: rentalData(), LinkURL: "https://rent.example.com/customer-info?t=abc", ExpiresAt: "June 8, 2024"}

	tests := []struct {
		name        string
		template    string
		data        interface{}
		wantSubject string
		wantText    []string
	}{
		{
			name:     "request received",
			template: TemplateRequestReceived,
			data: RequestReceivedData{
				TemplateData: TemplateData{AppName: "Island Car Rental"},
				Name:         "Ana Lima", Email: "ana@example.com", Phone: "555-0100",
				StartDate: "2024-06-01", EndDate: "2024-06-05", Message: "Need a car seat",
			},
			wantSubject: "New rental request from Ana Lima",
			wantText:    []string{"ana@example.com", "Need a car seat"},
		},
		{
			name:        "customer info link",
			template:    TemplateCustomerInfoLink,
			data:        link,
			wantSubject: "Your Silver Ford Focus rental: driver and insurance details needed",
			wantText:    []string{"https://rent.example.com/customer-info?t=abc", "$85/Day", "June 8, 2024"},
		},
		{
			name:        "contract ready",
			template:    TemplateContractReady,
			data:        link,
			wantSubject: "Your rental contract is ready to sign",
			wantText:    []string{"customer-info?t=abc"},
		},
		{
			name:     "admin links",
			template: TemplateAdminLinks,
			data: AdminLinksData{
				RentalTemplateData: rentalData(), CustomerName: "Ana Lima",
				PickupURL: "https://p", DropoffURL: "https://d", ExpiresAt: "July 1, 2024",
			},
			wantSubject: "Customer info received: Ana Lima (2024-06-01 to 2024-06-05)",
			wantText:    []string{"https://p", "https://d", "1FAFP404X1234ABCD"},
		},
		{
			name:     "pickup instructions",
			template: TemplatePickupInstructions,
			data: InstructionsData{
				LinkTemplateData: link, Address: "12 Harbor Rd", Time: "9:00 AM", Instructions: "Key in lockbox 4411",
			},
			wantSubject: "Pickup instructions for your rental",
			wantText:    []string{"12 Harbor Rd", "Key in lockbox 4411"},
		},
		{
			name:        "dropoff instructions",
			template:    TemplateDropoffInstructions,
			data:        InstructionsData{LinkTemplateData: link, Address: "Airport lot B", Time: "5:00 PM"},
			wantSubject: "Return instructions for your rental",
			wantText:    []string{"Airport lot B", "2024-06-05"},
		},
		{
			name:     "admin notification",
			template: TemplateAdminNotification,
			data: AdminNotificationData{
				RentalTemplateData: rentalData(), Title: "Mileage out recorded",
				Details: map[string]string{"mileage": "42000", "fuel": "full"},
			},
			wantSubject: "Mileage out recorded: Silver Ford Focus",
			wantText:    []string{"mileage: 42000", "fuel: full", "/admin/rentals/folder-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := renderTemplate(tt.template, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSubject, getTemplateSubject(tt.template, tt.data))
			assert.Contains(t, body.HTML, "<!DOCTYPE html>")
			for _, want := range tt.wantText {
				assert.Contains(t, body.Text, want)
			}
			assert.NotContains(t, body.Text, "\t")
		})
	}
}

func TestRenderTemplate_Unknown(t *testing.T) {
	_, err := renderTemplate("missing", nil)
	assert.Error(t, err)
	assert.Equal(t, "Rental Notification", getTemplateSubject("missing", nil))
}

func TestRenderTemplate_EscapesHTML(t *testing.T) {
	body, err := renderTemplate(TemplateRequestReceived, RequestReceivedData{Name: "<script>x</script>"})
	require.NoError(t, err)
	assert.NotContains(t, body.HTML, "<script>")
}

func TestSMTPProvider_CreateMessage(t *testing.T) {
	p, err := NewSMTPProvider(config.SMTPConfig{Host: "smtp.example.com", Username: "login@example.com", From: "Rentals <rent@example.com>"})
	require.NoError(t, err)

	pdf := []byte(strings.Repeat("%PDF-1.3 ", 20))
	msg := p.createMessage(p.sender(), []string{"a@b.com"}, "Contract", EmailBody{
		HTML:        "<p>hi</p>",
		Text:        "hi",
		Attachments: []Attachment{{Filename: "contract.pdf", ContentType: "application/pdf", Data: pdf}},
	})

	assert.Contains(t, msg, "From: Rentals <rent@example.com>\r\n")
	assert.Contains(t, msg, "Content-Type: multipart/mixed; boundary=")
	assert.Contains(t, msg, "Content-Type: multipart/alternative; boundary=")
	assert.Contains(t, msg, `Content-Disposition: attachment; filename="contract.pdf"`)

	encoded := base64.StdEncoding.EncodeToString(pdf)
	assert.Contains(t, msg, encoded[:76]+"\r\n")
	for _, line := range strings.Split(msg, "\r\n") {
		assert.LessOrEqual(t, len(line), 998)
	}
}

func TestSMTPProvider_CreateMessage_NoSubject(t *testing.T) {
	p, err := NewSMTPProvider(config.SMTPConfig{Host: "smtp.example.com", Username: "login@example.com"})
	require.NoError(t, err)

	msg := p.createMessage(p.sender(), []string{"5551234567@vtext.com"}, "", EmailBody{Text: "New request"})
	assert.NotContains(t, msg, "Subject:")
	assert.Contains(t, msg, "From: login@example.com\r\n")
	assert.True(t, strings.HasSuffix(msg, "New request"))
}

func TestSendGridProvider_SendTemplateEmail(t *testing.T) {
	var got sendGridMail
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sg-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	p, err := NewSendGridProvider(config.SendGridConfig{APIKey: "sg-key", FromEmail: "rent@example.com", FromName: "Rentals"})
	require.NoError(t, err)
	p.endpoint = server.URL

	link := LinkTemplateData{RentalTemplateData: rentalData(), LinkURL: "https://x"}
	err = p.SendTemplateEmail(context.Background(), []string{"a@b.com", "c@d.com"}, TemplateContractReady, link,
		Attachment{Filename: "contract.pdf", ContentType: "application/pdf", Data: []byte("%PDF")})
	require.NoError(t, err)

	assert.Len(t, got.Personalizations, 2)
	assert.Equal(t, "Your rental contract is ready to sign", got.Subject)
	require.Len(t, got.Attachments, 1)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("%PDF")), got.Attachments[0].Content)
}

func TestSendGridProvider_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	p, err := NewSendGridProvider(config.SendGridConfig{APIKey: "bad"})
	require.NoError(t, err)
	p.endpoint = server.URL

	err = p.SendEmail(context.Background(), []string{"a@b.com"}, "s", EmailBody{Text: "t"})
	assert.ErrorContains(t, err, "401")
}

func TestSendSMS(t *testing.T) {
	noop := NewNoOpProvider("silent")
	ctx := context.Background()

	require.NoError(t, SendSMS(ctx, noop, nil, "ignored"))
	assert.Empty(t, noop.Sent())

	long := strings.Repeat("x", 200)
	require.NoError(t, SendSMS(ctx, noop, []string{"5551234567@vtext.com"}, long))

	sent := noop.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "", sent[0].Subject)
	assert.Len(t, sent[0].Body.Text, smsMaxLength)
	assert.True(t, strings.HasSuffix(sent[0].Body.Text, "..."))
}

func TestNewEmailProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.EmailConfig
		wantErr bool
	}{
		{name: "noop by default", cfg: config.EmailConfig{}},
		{name: "smtp missing host", cfg: config.EmailConfig{Provider: ProviderSMTP}, wantErr: true},
		{name: "sendgrid missing key", cfg: config.EmailConfig{Provider: ProviderSendGrid}, wantErr: true},
		{name: "unknown", cfg: config.EmailConfig{Provider: "pigeon"}, wantErr: true},
		{
			name: "smtp",
			cfg: config.EmailConfig{Provider: ProviderSMTP, SMTP: config.SMTPConfig{
				Host: "smtp.example.com", Port: 587, Username: "u", Password: "p",
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewEmailProvider(context.Background(), &tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, p)
		})
	}
}
