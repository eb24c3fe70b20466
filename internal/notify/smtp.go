package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/go-mail"
)

// Transport delivers rendered content to one recipient.
type Transport interface {
	Send(ctx context.Context, to string, content Content) error
}

// Checker is implemented by transports that can refuse a message without
// touching the network. A refusal is about the message, so the Notifier keeps
// it out of the transport's circuit breaker.
type Checker interface {
	Check(to string, content Content) error
}

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromName    string
	FromAddress string
	Timeout     time.Duration
}

// Missing lists the required settings that are empty.
func (c *SMTPConfig) Missing() []string {
	var missing []string
	if strings.TrimSpace(c.Host) == "" {
		missing = append(missing, "MAIL_HOST")
	}
	if strings.TrimSpace(c.Username) == "" {
		missing = append(missing, "MAIL_USER")
	}
	if c.Password == "" {
		missing = append(missing, "MAIL_PASSWORD")
	}
	return missing
}

func (c *SMTPConfig) sender() string {
	if c.FromAddress != "" {
		return c.FromAddress
	}
	return c.Username
}

// SMTPTransport builds a client per send, so a bad configuration only fails
// the send that hits it.
type SMTPTransport struct {
	cfg SMTPConfig
}

func NewSMTPTransport(cfg SMTPConfig) *SMTPTransport {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &SMTPTransport{cfg: cfg}
}

func (t *SMTPTransport) Send(ctx context.Context, to string, content Content) error {
	msg, err := t.buildMessage(to, content)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(t.cfg.Host,
		mail.WithPort(t.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(t.cfg.Username),
		mail.WithPassword(t.cfg.Password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
		mail.WithTimeout(t.cfg.Timeout),
	)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail via %s:%d: %w", t.cfg.Host, t.cfg.Port, err)
	}
	return nil
}

// Check builds the message and discards it; a bad recipient fails here.
func (t *SMTPTransport) Check(to string, content Content) error {
	_, err := t.buildMessage(to, content)
	return err
}

func (t *SMTPTransport) buildMessage(to string, content Content) (*mail.Msg, error) {
	msg := mail.NewMsg()

	if err := msg.FromFormat(t.cfg.FromName, t.cfg.sender()); err != nil {
		return nil, fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("set recipient: %w", err)
	}

	msg.Subject(content.Subject)
	msg.SetBodyString(mail.TypeTextPlain, content.Text)
	msg.AddAlternativeString(mail.TypeTextHTML, content.HTML)

	return msg, nil
}
