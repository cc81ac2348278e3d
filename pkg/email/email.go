package email

import (
	"context"
	"fmt"

	"church-app-go/pkg/logger"
	"gopkg.in/gomail.v2"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// DevMode logs messages instead of dialing SMTP.
	DevMode bool
}

type Message struct {
	To      string
	Subject string
	HTML    string
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type Sender struct {
	cfg    Config
	dialer dialer
	log    logger.Logger
}

func NewSender(cfg Config, log logger.Logger) *Sender {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	cfg.From = from

	return &Sender{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		log:    log,
	}
}

func (s *Sender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.cfg.DevMode {
		s.log.Info("email: dev mode, not sent", "to", msg.To, "subject", msg.Subject, "body", msg.HTML)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	s.log.Info("email: sent", "to", msg.To, "subject", msg.Subject)
	return nil
}
