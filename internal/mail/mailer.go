// Package mail delivers transactional email for the auth flows.
// There is deliberately no queue or retry: a reset mail either goes
// out or the request fails.
package mail

import (
	"context"
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"
)

// Mailer sends account-related notifications.
type Mailer interface {
	// SendPasswordReset mails a reset link to the account's address.
	SendPasswordReset(ctx context.Context, to, username, link string) error
}

const resetSubject = "Yêu cầu đặt lại mật khẩu"

const resetBodyTemplate = `Xin chào %s,

Bạn đã yêu cầu đặt lại mật khẩu. Vui lòng nhấp vào liên kết sau:

%s

Nếu bạn không yêu cầu đặt lại mật khẩu, hãy bỏ qua email này.

Trân trọng,
Đội ngũ Live Chat
`

// SMTPMailer sends mail through a plain SMTP relay (STARTTLS is
// negotiated by net/smtp when the server offers it).
type SMTPMailer struct {
	addr string // host:port
	auth smtp.Auth
	from string
}

// NewSMTPMailer configures a mailer for the given relay.
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	if from == "" {
		from = username
	}
	return &SMTPMailer{
		addr: fmt.Sprintf("%s:%d", host, port),
		auth: auth,
		from: from,
	}
}

// SendPasswordReset mails a reset link to the account's address.
func (m *SMTPMailer) SendPasswordReset(_ context.Context, to, username, link string) error {
	msg := buildMessage(m.from, to, resetSubject, fmt.Sprintf(resetBodyTemplate, username, link))
	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}

// LogMailer writes reset links to the log instead of sending mail.
// Used when no SMTP relay is configured (local development).
type LogMailer struct {
	log *zerolog.Logger
}

// NewLogMailer builds a mailer that only logs.
func NewLogMailer(logger *zerolog.Logger) *LogMailer {
	return &LogMailer{log: logger}
}

// SendPasswordReset logs the reset link.
func (m *LogMailer) SendPasswordReset(_ context.Context, to, username, link string) error {
	m.log.Info().
		Str("to", to).
		Str("username", username).
		Str("link", link).
		Msg("password reset requested (smtp not configured, logging only)")
	return nil
}
