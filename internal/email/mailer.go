package email

import (
	"fmt"
	"net/smtp"

	"github.com/eventpulse/eventpulse-api/internal/config"
)

// Mailer sends transactional mail over SMTP. A nil *Mailer is valid and
// turns sending into a no-op, for deployments without an SMTP server.
type Mailer struct {
	addr   string
	auth   smtp.Auth
	sender string
}

// New builds a Mailer from the application config, or returns nil when no
// SMTP host is configured.
func New(cfg *config.Config) *Mailer {
	if cfg.SMTPHost == "" {
		return nil
	}

	return &Mailer{
		addr:   fmt.Sprintf("%s:%s", cfg.SMTPHost, cfg.SMTPPort),
		auth:   smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost),
		sender: cfg.SMTPSender,
	}
}

// SendWelcome sends the post-registration welcome mail.
func (m *Mailer) SendWelcome(recipientEmail, name string) error {
	if m == nil {
		return nil
	}

	subject := "Welcome to EventPulse!"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour account is ready. Browse what's on near you, bookmark the events you don't want to miss, and join the ones you'll attend.\n\nThe EventPulse Team",
		name,
	)

	message := []byte(
		"To: " + recipientEmail + "\r\n" +
			"From: " + m.sender + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"\r\n" +
			body + "\r\n")

	if err := smtp.SendMail(m.addr, m.auth, m.sender, []string{recipientEmail}, message); err != nil {
		return fmt.Errorf("smtp error: %w", err)
	}

	return nil
}
