// Package mail sends notification mail over SMTP.
package mail

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	gomail "github.com/wneessen/go-mail"

	"github.com/catalogshop/catalog-api/internal/core/domain"
)

const (
	defaultTimeout      = 10 * time.Second
	breakerOpenDuration = 30 * time.Second
	breakerTripAfter    = 3
)

// ErrUnavailable is returned while the breaker is open.
var ErrUnavailable = errors.New("mail transport unavailable")

// Config describes the SMTP relay.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	TLS      bool
	Timeout  time.Duration
}

// SMTPSender delivers mail through one relay. Consecutive failures open a
// circuit breaker so a dead relay is not dialled for every notification.
type SMTPSender struct {
	from    string
	client  *gomail.Client
	breaker *gobreaker.CircuitBreaker[struct{}]
}

func NewSMTPSender(cfg Config, log zerolog.Logger) (*SMTPSender, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTimeout(timeout),
	}
	if cfg.TLS {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.NoTLS))
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("mail client: %w", err)
	}

	breaker := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:    "smtp",
		Timeout: breakerOpenDuration,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= breakerTripAfter
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("mail breaker state changed")
		},
	})

	return &SMTPSender{from: cfg.From, client: client, breaker: breaker}, nil
}

func (s *SMTPSender) Send(ctx context.Context, m domain.Mail) error {
	msg := gomail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := msg.To(m.To); err != nil {
		return fmt.Errorf("mail to: %w", err)
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(gomail.TypeTextHTML, m.Body)

	_, err := s.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, s.client.DialAndSendWithContext(ctx, msg)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err != nil {
		return fmt.Errorf("mail send: %w", err)
	}
	return nil
}

// LogSender only logs mail. It stands in when no relay is configured.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, m domain.Mail) error {
	s.log.Info().Str("to", m.To).Str("subject", m.Subject).Msg("mail (no relay configured)")
	return nil
}
