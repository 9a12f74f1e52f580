package notification

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/dtroode/pawconnect-server/internal/config"
	"github.com/dtroode/pawconnect-server/internal/logger"
)

// Sender delivers rendered messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPSender delivers mail through an SMTP relay. Each message gets its own
// connection, so concurrent workers never share a client.
type SMTPSender struct {
	host string
	opts []mail.Option
	from string

	deliver func(ctx context.Context, msg *mail.Msg) error
}

func NewSMTPSender(cfg config.SMTP) (*SMTPSender, error) {
	policy := mail.TLSOpportunistic
	if cfg.RequireTLS {
		policy = mail.TLSMandatory
	}
	opts := []mail.Option{mail.WithPort(cfg.Port), mail.WithTLSPolicy(policy)}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password))
	}

	s := &SMTPSender{host: cfg.Host, opts: opts, from: cfg.From}
	if _, err := mail.NewClient(s.host, s.opts...); err != nil {
		return nil, fmt.Errorf("invalid SMTP configuration: %w", err)
	}
	s.deliver = s.dialAndSend
	return s, nil
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m, err := s.newMsg(msg)
	if err != nil {
		return err
	}
	if err := s.deliver(ctx, m); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

func (s *SMTPSender) newMsg(msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetDate()
	m.SetMessageID()
	m.SetBodyString(mail.TypeTextPlain, msg.Body)
	return m, nil
}

func (s *SMTPSender) dialAndSend(ctx context.Context, m *mail.Msg) error {
	client, err := mail.NewClient(s.host, s.opts...)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, m)
}

// LogSender stands in for a mailbox when no SMTP relay is configured. The
// body carries bearer links, so it is only written at debug level.
type LogSender struct {
	logger *logger.Logger
}

func NewLogSender(logger *logger.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.logger.Info("Notification: message not sent, no SMTP relay configured",
		"to", msg.To,
		"subject", msg.Subject)
	s.logger.Debug("Notification: message body",
		"to", msg.To,
		"body", msg.Body)
	return nil
}
