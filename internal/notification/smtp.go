package notification

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string

	FromEmail string
	FromName  string
}

// SMTPDispatcher envia o lembrete por SMTP com gomail.
type SMTPDispatcher struct {
	cfg    SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPDispatcher(cfg SMTPConfig) *SMTPDispatcher {
	return &SMTPDispatcher{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (d *SMTPDispatcher) Send(ctx context.Context, r Reminder) error {
	subject, body, err := Render(r)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(d.cfg.FromEmail, d.cfg.FromName))
	m.SetHeader("To", r.To)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	// gomail não aceita context; o envio segue em background e o
	// chamador é liberado quando o prazo estoura.
	done := make(chan error, 1)
	go func() {
		done <- d.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("failed to send email: %w", ctx.Err())
	}
}
