package email

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

// template names
const (
	TemplateRequestReceived     = "request_received"
	TemplateCustomerInfoLink    = "customer_info_link"
	TemplateContractReady       = "contract_ready"
	TemplateAdminLinks          = "admin_links"
	TemplatePickupInstructions  = "pickup_instructions"
	TemplateDropoffInstructions = "dropoff_instructions"
	TemplateAdminNotification   = "admin_notification"
)

type emailTemplate struct {
	subject func(data interface{}) string
	html    *htmltemplate.Template
	text    *texttemplate.Template
}

var templates = map[string]emailTemplate{
	TemplateRequestReceived: {
		subject: func(data interface{}) string {
			if d, ok := data.(RequestReceivedData); ok {
				return fmt.Sprintf("New rental request from %s", d.Name)
			}
			return "New rental request"
		},
		html: htmltemplate.Must(htmltemplate.New(TemplateRequestReceived).Parse(requestReceivedHTML)),
		text: texttemplate.Must(texttemplate.New(TemplateRequestReceived).Parse(requestReceivedText)),
	},
	TemplateCustomerInfoLink: {
		subject: func(data interface{}) string {
			if d, ok := data.(LinkTemplateData); ok && d.Vehicle != "" {
				return fmt.Sprintf("Your %s rental: driver and insurance details needed", d.Vehicle)
			}
			return "Your rental: driver and insurance details needed"
		},
		html: htmltemplate.Must(htmltemplate.New(TemplateCustomerInfoLink).Parse(customerInfoLinkHTML)),
		text: texttemplate.Must(texttemplate.New(TemplateCustomerInfoLink).Parse(customerInfoLinkText)),
	},
	TemplateContractReady: {
		subject: func(interface{}) string { return "Your rental contract is ready to sign" },
		html:    htmltemplate.Must(htmltemplate.New(TemplateContractReady).Parse(contractReadyHTML)),
		text:    texttemplate.Must(texttemplate.New(TemplateContractReady).Parse(contractReadyText)),
	},
	TemplateAdminLinks: {
		subject: func(data interface{}) string {
			if d, ok := data.(AdminLinksData); ok {
				return fmt.Sprintf("Customer info received: %s (%s to %s)", d.CustomerName, d.StartDate, d.EndDate)
			}
			return "Customer info received"
		},
		html: htmltemplate.Must(htmltemplate.New(TemplateAdminLinks).Parse(adminLinksHTML)),
		text: texttemplate.Must(texttemplate.New(TemplateAdminLinks).Parse(adminLinksText)),
	},
	TemplatePickupInstructions: {
		subject: func(interface{}) string { return "Pickup instructions for your rental" },
		html:    htmltemplate.Must(htmltemplate.New(TemplatePickupInstructions).Parse(pickupInstructionsHTML)),
		text:    texttemplate.Must(texttemplate.New(TemplatePickupInstructions).Parse(pickupInstructionsText)),
	},
	TemplateDropoffInstructions: {
		subject: func(interface{}) string { return "Return instructions for your rental" },
		html:    htmltemplate.Must(htmltemplate.New(TemplateDropoffInstructions).Parse(dropoffInstructionsHTML)),
		text:    texttemplate.Must(texttemplate.New(TemplateDropoffInstructions).Parse(dropoffInstructionsText)),
	},
	TemplateAdminNotification: {
		subject: func(data interface{}) string {
			if d, ok := data.(AdminNotificationData); ok {
				return fmt.Sprintf("%s: %s", d.Title, d.Vehicle)
			}
			return "Rental update"
		},
		html: htmltemplate.Must(htmltemplate.New(TemplateAdminNotification).Parse(adminNotificationHTML)),
		text: texttemplate.Must(texttemplate.New(TemplateAdminNotification).Parse(adminNotificationText)),
	},
}

// renderTemplate renders an email template with the given data
func renderTemplate(templateName string, data interface{}) (EmailBody, error) {
	tmpl, ok := templates[templateName]
	if !ok {
		return EmailBody{}, fmt.Errorf("unknown template: %s", templateName)
	}

	var htmlBuf bytes.Buffer
	err := tmpl.html.Execute(&htmlBuf, data)
	if err != nil {
		return EmailBody{}, fmt.Errorf("failed to execute HTML template: %w", err)
	}

	var textBuf bytes.Buffer
	err = tmpl.text.Execute(&textBuf, data)
	if err != nil {
		return EmailBody{}, fmt.Errorf("failed to execute text template: %w", err)
	}

	return EmailBody{
		HTML: strings.TrimSpace(htmlBuf.String()),
		Text: dedent(textBuf.String()),
	}, nil
}

// getTemplateSubject returns the subject for a given template
func getTemplateSubject(templateName string, data interface{}) string {
	tmpl, ok := templates[templateName]
	if !ok {
		return "Rental Notification"
	}
	return tmpl.subject(data)
}

// dedent strips the indentation the raw templates carry
func dedent(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

// buildTemplateEmail renders templateName and attaches files
func buildTemplateEmail(templateName string, data interface{}, attachments []Attachment) (string, EmailBody, error) {
	body, err := renderTemplate(templateName, data)
	if err != nil {
		return "", EmailBody{}, fmt.Errorf("failed to render template: %w", err)
	}
	body.Attachments = attachments
	return getTemplateSubject(templateName, data), body, nil
}
