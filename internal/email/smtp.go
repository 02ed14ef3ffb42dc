package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

const smtpBoundary = "leadops-alternative"

// SMTPSender delivers over SMTP with STARTTLS and PLAIN auth (Gmail by default).
type SMTPSender struct {
	host     string
	port     int
	user     string
	pass     string
	envelope string // bare address for MAIL FROM
	from     string // header value, may include a display name
}

func NewSMTPSender(host string, port int, user, pass, envelope, from string) *SMTPSender {
	return &SMTPSender{
		host:     strings.TrimSpace(host),
		port:     port,
		user:     strings.TrimSpace(user),
		pass:     strings.TrimSpace(pass),
		envelope: strings.TrimSpace(envelope),
		from:     from,
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	to := strings.TrimSpace(msg.To)
	if to == "" {
		return fmt.Errorf("empty recipient email")
	}

	addr := net.JoinHostPort(s.host, strconv.Itoa(s.port))
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else {
		_ = conn.SetDeadline(time.Now().Add(time.Minute))
	}

	c, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.host}); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}
	if s.user != "" {
		if err := c.Auth(smtp.PlainAuth("", s.user, s.pass, s.host)); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}
	if err := c.Mail(s.envelope); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := c.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt: %w", err)
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(s.compose(to, msg)); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close data: %w", err)
	}
	return c.Quit()
}

func (s *SMTPSender) compose(to string, msg Message) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "From: %s\r\n", s.from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", smtpBoundary)

	if msg.Text != "" {
		fmt.Fprintf(&buf, "--%s\r\n", smtpBoundary)
		fmt.Fprintf(&buf, "Content-Type: text/plain; charset=utf-8\r\n\r\n")
		fmt.Fprintf(&buf, "%s\r\n\r\n", msg.Text)
	}
	if msg.HTML != "" {
		fmt.Fprintf(&buf, "--%s\r\n", smtpBoundary)
		fmt.Fprintf(&buf, "Content-Type: text/html; charset=utf-8\r\n\r\n")
		fmt.Fprintf(&buf, "%s\r\n\r\n", msg.HTML)
	}

	fmt.Fprintf(&buf, "--%s--\r\n", smtpBoundary)
	return buf.Bytes()
}
