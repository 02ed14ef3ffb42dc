package email

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mailersend/mailersend-go"
)

// MailerSendSender sends emails via the MailerSend API.
type MailerSendSender struct {
	client *mailersend.Mailersend
	from   mailersend.From
}

func NewMailerSendSender(apiKey, fromName, fromEmail string) *MailerSendSender {
	return &MailerSendSender{
		client: mailersend.NewMailersend(apiKey),
		from:   mailersend.From{Name: fromName, Email: fromEmail},
	}
}

func (s *MailerSendSender) Send(ctx context.Context, msg Message) error {
	m := s.client.Email.NewMessage()
	m.SetFrom(s.from)
	m.SetRecipients([]mailersend.Recipient{{Email: msg.To}})
	m.SetSubject(msg.Subject)
	if strings.TrimSpace(msg.Text) != "" {
		m.SetText(msg.Text)
	}
	if strings.TrimSpace(msg.HTML) != "" {
		m.SetHTML(msg.HTML)
	}

	res, err := s.client.Email.Send(ctx, m)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("mailersend: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
