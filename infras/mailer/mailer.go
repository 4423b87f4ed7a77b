package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"lunchtime/config"
)

// Mailer sends transactional mail. Delivery is best-effort; callers are
// expected to invoke it off the request path.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

type mailerImpl struct {
	config *config.Config
	dialer *gomail.Dialer
}

func New(config *config.Config) Mailer {
	dialer := gomail.NewDialer(
		config.SMTP.Host,
		config.SMTP.Port,
		config.SMTP.Username,
		config.SMTP.Password,
	)

	if config.SMTP.Enable {
		log.Info().Str("host", config.SMTP.Host).Int("port", config.SMTP.Port).Msg("Mailer initialized")
	} else {
		log.Warn().Msg("Mailer disabled, outgoing mail will be dropped")
	}

	return &mailerImpl{
		config: config,
		dialer: dialer,
	}
}

func (m *mailerImpl) Send(to, subject, htmlBody string) error {
	if !m.config.SMTP.Enable {
		log.Debug().Str("to", to).Str("subject", subject).Msg("Mailer disabled, dropping message")

		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.SMTP.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		log.Error().Err(err).Str("to", to).Msg("Failed to send mail")

		return fmt.Errorf("failed to send mail: %w", err)
	}

	return nil
}
