package email

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type Service interface {
	SendEmail(to, subject, body string) error
}

// Sender delivers a prepared message. *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type SMTPService struct {
	from   string
	sender Sender
	logger *zap.Logger
}

func NewSMTPService(cfg SMTPConfig, logger *zap.Logger) (*SMTPService, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host is not configured")
	}
	if cfg.Port <= 0 {
		return nil, fmt.Errorf("invalid SMTP port: %d", cfg.Port)
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("email from address is not configured")
	}

	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return newSMTPService(cfg.From, dialer, logger), nil
}

func newSMTPService(from string, sender Sender, logger *zap.Logger) *SMTPService {
	return &SMTPService{from: from, sender: sender, logger: logger}
}

func (s *SMTPService) SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Debug("email sent", zap.String("subject", subject))
	return nil
}
