package notif

import (
	"fmt"
	"log"
	"net/smtp"

	"inkwell/internal/common"
	"inkwell/internal/config"
)

type smtpMailer struct {
	addr     string
	auth     smtp.Auth
	from     string
	fromName string
}

// NewEmailService builds the subscriber mailer. When email is
// disabled the broadcasts go to the log instead, so development
// setups need no SMTP server.
func NewEmailService(cfg *config.Config) common.EmailService {
	if !cfg.Email.Enabled || cfg.Email.SMTPHost == "" {
		return &logMailer{}
	}

	var auth smtp.Auth
	if cfg.Email.Username != "" {
		auth = smtp.PlainAuth("", cfg.Email.Username, cfg.Email.Password, cfg.Email.SMTPHost)
	}

	return &smtpMailer{
		addr:     fmt.Sprintf("%s:%d", cfg.Email.SMTPHost, cfg.Email.SMTPPort),
		auth:     auth,
		from:     cfg.Email.FromEmail,
		fromName: cfg.Email.FromName,
	}
}

func (m *smtpMailer) SendEmail(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.fromName, m.from, to, subject, body)

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

type logMailer struct{}

func (*logMailer) SendEmail(to, subject, body string) error {
	log.Printf("Email disabled - To: %s, Subject: %s", to, subject)
	return nil
}
