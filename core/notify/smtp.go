package notify

import (
	"fmt"

	"flamtunes/config"
	"flamtunes/logger"

	"gopkg.in/gomail.v2"
)

// smtpSender delivers messages over SMTP.
type smtpSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender builds a Sender from the SMTP configuration. When no SMTP
// host is configured a log-only sender is returned so development setups work
// without a mail relay.
func NewSMTPSender(cfg *config.Config) Sender {
	if cfg.SMTPHost == "" {
		logger.Warn("SMTP host not configured, notifications will only be logged")
		return logSender{}
	}
	return &smtpSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.MailFrom,
	}
}

// Send delivers one message.
func (s *smtpSender) Send(msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	m.AddAlternative("text/html", msg.HTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp delivery failed: %w", err)
	}
	return nil
}

// logSender is the no-relay fallback.
type logSender struct{}

func (logSender) Send(msg Message) error {
	logger.Info("Email (not sent, SMTP disabled)",
		logger.String("to", msg.To),
		logger.String("subject", msg.Subject))
	return nil
}
