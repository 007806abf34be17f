package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendSender implements Sender using the Resend API.
type ResendSender struct {
	client *resend.Client
}

// NewResendSender creates a new ResendSender.
func NewResendSender(apiKey string) (*ResendSender, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend: API key is required")
	}
	return &ResendSender{client: resend.NewClient(apiKey)}, nil
}

// Send sends an email via the Resend API.
func (s *ResendSender) Send(ctx context.Context, msg Message) (*SendResult, error) {
	params := &resend.SendEmailRequest{
		From:    FromAddress,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTMLBody,
		Text:    msg.TextBody,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("resend: failed to send email: %w", err)
	}
	if sent == nil {
		return &SendResult{}, nil
	}

	return &SendResult{ID: sent.Id}, nil
}
