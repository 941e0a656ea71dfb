package email

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// smsMaxLength is the single segment limit of carrier email-to-SMS gateways
const smsMaxLength = 160

// SendSMS texts message through carrier email-to-SMS gateway addresses such
// as 5551234567@vtext.com. Gateways drop the subject and HTML part, so the
// message goes out as a single plain text body.
func SendSMS(ctx context.Context, provider Provider, addresses []string, message string) error {
	if len(addresses) == 0 {
		return nil
	}

	body := EmailBody{Text: truncateSMS(strings.TrimSpace(message))}
	if err := provider.SendEmail(ctx, addresses, "", body); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	return nil
}

func truncateSMS(s string) string {
	if utf8.RuneCountInString(s) <= smsMaxLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:smsMaxLength-3]) + "..."
}
