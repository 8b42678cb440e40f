// internal/adapters/out/mail/sendgrid_client.go
package mail

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridClient sends transactional storefront mail (order confirmations)
// through the SendGrid v3 API.
type SendGridClient struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewSendGridClient(apiKey, fromEmail, fromName string) *SendGridClient {
	if strings.TrimSpace(fromName) == "" {
		fromName = "Leafline"
	}
	return &SendGridClient{
		apiKey:    strings.TrimSpace(apiKey),
		fromEmail: strings.TrimSpace(fromEmail),
		fromName:  fromName,
	}
}

// Send delivers a single plain-text email. A 4xx/5xx API response is returned
// as an error so the caller can retry on the next pass.
func (c *SendGridClient) Send(ctx context.Context, toEmail, subject, body string) error {
	if c == nil || c.apiKey == "" {
		return fmt.Errorf("sendgrid_client: api key is empty")
	}
	if strings.TrimSpace(toEmail) == "" {
		return fmt.Errorf("sendgrid_client: to email is empty")
	}

	from := sgmail.NewEmail(c.fromName, c.fromEmail)
	to := sgmail.NewEmail("", toEmail)
	msg := sgmail.NewSingleEmail(from, subject, to, body, "")

	client := sendgrid.NewSendClient(c.apiKey)
	resp, err := client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("sendgrid_client: send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid_client: send failed: status=%d body=%s", resp.StatusCode, resp.Body)
	}

	log.Printf("[mail] sent to=%q subject=%q status=%d", toEmail, subject, resp.StatusCode)
	return nil
}
