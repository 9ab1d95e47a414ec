package mail

import (
	"crypto/tls"
	"fmt"
	"net/mail"
	"net/url"

	"github.com/dajohi/goemail"
	"go.uber.org/zap"

	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/core/port"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/infra/config"
)

// Client is an SMTP mailer for outbound account email. When SMTP credentials
// are not configured the client is disabled and Send becomes a no-op, which
// keeps development setups working without a mail server.
type Client struct {
	smtp        *goemail.SMTP
	mailName    string
	mailAddress string
	disabled    bool
	logger      *zap.Logger
}

// NewClient builds an SMTP client from configuration.
func NewClient(cfg config.SMTPSettings, logger *zap.Logger) (*Client, error) {
	if cfg.Host == "" || cfg.User == "" || cfg.Password == "" {
		logger.Info("smtp not configured, outbound email disabled")
		return &Client{disabled: true, logger: logger}, nil
	}

	h := fmt.Sprintf("smtps://%v:%v@%v", cfg.User, cfg.Password, cfg.Host)
	u, err := url.Parse(h)
	if err != nil {
		return nil, fmt.Errorf("parse smtp host: %w", err)
	}

	addr, err := mail.ParseAddress(cfg.FromAddress)
	if err != nil {
		return nil, fmt.Errorf("parse from address: %w", err)
	}

	tlsConfig := &tls.Config{}
	if cfg.SkipVerify {
		tlsConfig.InsecureSkipVerify = true
	}

	smtp, err := goemail.NewSMTP(u.String(), tlsConfig)
	if err != nil {
		return nil, fmt.Errorf("init smtp client: %w", err)
	}

	return &Client{
		smtp:        smtp,
		mailName:    addr.Name,
		mailAddress: addr.Address,
		logger:      logger,
	}, nil
}

// IsEnabled reports whether the mailer will actually deliver email.
func (c *Client) IsEnabled() bool {
	return !c.disabled
}

// Send delivers an email to the recipients. Disabled clients return nil.
func (c *Client) Send(subject, body string, recipients []string) error {
	if c.disabled || len(recipients) == 0 {
		return nil
	}

	msg := goemail.NewMessage(c.mailAddress, subject, body)
	msg.SetName(c.mailName)
	for _, r := range recipients {
		msg.AddTo(r)
	}

	return c.smtp.Send(msg)
}

var _ port.Mailer = (*Client)(nil)
