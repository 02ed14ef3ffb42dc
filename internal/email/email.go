package email

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

const (
	ProviderLog        = "log"
	ProviderSMTP       = "smtp"
	ProviderResend     = "resend"
	ProviderMailerSend = "mailersend"
)

// Options configures whichever provider NewSender picks.
type Options struct {
	Provider string

	FromName  string
	FromEmail string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string

	ResendAPIKey     string
	MailerSendAPIKey string
}

func (o Options) from() string {
	if o.FromName == "" {
		return o.FromEmail
	}
	return fmt.Sprintf("%s <%s>", o.FromName, o.FromEmail)
}

// LogSender logs emails instead of sending them. Used for local development.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger.With("component", "email")}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.logger.InfoContext(ctx, "email (not sent)", "to", msg.To, "subject", msg.Subject, "text", msg.Text)
	return nil
}

// NewSender returns the provider named by opts.Provider.
func NewSender(opts Options, logger *slog.Logger) (Sender, error) {
	switch strings.ToLower(opts.Provider) {
	case "", ProviderLog:
		return NewLogSender(logger), nil
	case ProviderSMTP:
		return NewSMTPSender(opts.SMTPHost, opts.SMTPPort, opts.SMTPUser, opts.SMTPPass, opts.FromEmail, opts.from()), nil
	case ProviderResend:
		return NewResendSender(opts.ResendAPIKey, opts.from()), nil
	case ProviderMailerSend:
		return NewMailerSendSender(opts.MailerSendAPIKey, opts.FromName, opts.FromEmail), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", opts.Provider)
	}
}
