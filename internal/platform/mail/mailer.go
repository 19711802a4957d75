package mail

import (
	"log/slog"

	gomail "gopkg.in/gomail.v2"
)

// SMTPMailer sends through a configured SMTP relay. Errors are returned to
// the dispatcher, which logs and swallows them; mail delivery is never part
// of a workflow's reported outcome.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	logger *slog.Logger
}

func NewSMTPMailer(host string, port int, username string, password string, from string, logger *slog.Logger) *SMTPMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		logger: logger,
	}
}

func (m *SMTPMailer) Send(to string, subject string, textBody string, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", textBody)
	if htmlBody != "" {
		msg.AddAlternative("text/html", htmlBody)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return err
	}
	m.logger.Debug("mail sent",
		"event", "mail_sent",
		"module", "internal/platform/mail",
		"layer", "platform",
		"to", to,
		"subject", subject,
	)
	return nil
}

// NopMailer is used when SMTP is not configured (tests, local development).
type NopMailer struct {
	logger *slog.Logger
}

func NewNopMailer(logger *slog.Logger) *NopMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &NopMailer{logger: logger}
}

func (m *NopMailer) Send(to string, subject string, _ string, _ string) error {
	m.logger.Debug("mail suppressed, smtp not configured",
		"event", "mail_suppressed",
		"module", "internal/platform/mail",
		"layer", "platform",
		"to", to,
		"subject", subject,
	)
	return nil
}
