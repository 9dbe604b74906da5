package share

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/pkg/errors"
)

// ErrNotConfigured is returned when SMTP credentials are missing.
var ErrNotConfigured = errors.New("SMTP credentials not configured")

// ContactMessage is a visitor's message from the shared page.
type ContactMessage struct {
	Name    string
	Email   string
	Message string
}

// Mailer delivers contact messages to the portfolio owner.
type Mailer interface {
	Send(to string, msg ContactMessage) error
}

type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
}

// SMTPMailer sends over authenticated SMTP.
type SMTPMailer struct {
	cfg      SMTPConfig
	logger   *slog.Logger
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg SMTPConfig, logger *slog.Logger) *SMTPMailer {
	if cfg.Host == "" {
		cfg.Host = "smtp.gmail.com"
	}
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	return &SMTPMailer{cfg: cfg, logger: logger, sendMail: smtp.SendMail}
}

func (m *SMTPMailer) Send(to string, msg ContactMessage) error {
	if m.cfg.User == "" || m.cfg.Pass == "" {
		return ErrNotConfigured
	}
	if to == "" {
		return errors.New("portfolio has no contact email")
	}

	body := composeMessage(to, m.cfg.User, msg)
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	if err := m.sendMail(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.User, []string{to}, body); err != nil {
		return errors.Wrap(err, "sending contact email")
	}

	m.logger.Info("contact email sent", "from", msg.Email)
	return nil
}

func composeMessage(to, from string, msg ContactMessage) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", oneLine(msg.Name))
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, msg.Name, msg.Email, msg.Message)

	return []byte("To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + from + "\r\n" +
		"Reply-To: " + oneLine(msg.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

// oneLine strips CR/LF so visitor input cannot inject headers.
func oneLine(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
