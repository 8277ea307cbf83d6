package services

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"shopnest/config"
)

// Mailer dispatches a single transactional email.
type Mailer interface {
	Send(ctx context.Context, to, subject, message string) error
}

type ResendMailer struct {
	client *resend.Client
	from   string
}

func NewResendMailer(config *config.MailConfig) *ResendMailer {
	return &ResendMailer{
		client: resend.NewClient(config.APIKey),
		from:   config.From,
	}
}

func (m *ResendMailer) Send(ctx context.Context, to, subject, message string) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Text:    message,
	}
	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("mail send failed: %w", err)
	}
	return nil
}
