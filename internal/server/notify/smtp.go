package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/vmtecnologia/usersvc/internal/logging"
)

var (
	errExecTemplate = errors.New("execute e-mail template failed")
	errSendMail     = errors.New("sending e-mail failed")
)

const (
	createdSubject = "Welcome"
	updatedSubject = "Your account was updated"
)

var (
	createdTmpl = template.Must(template.New("created").Parse(
		`Hello {{.Username}},

Your account has been created. You can now sign in with {{.Email}}.
`))
	updatedTmpl = template.Must(template.New("updated").Parse(
		`Hello {{.Username}},

The account registered to {{.Email}} was just updated. If you did not make
this change, contact support.
`))
)

// SMTPConfig describes the outgoing mail server.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPNotifier sends plain-text mail through an SMTP relay.
type SMTPNotifier struct {
	from   string
	dialer sender
	logger logging.Logger
}

func NewSMTPNotifier(cfg SMTPConfig, logger logging.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		logger: logger,
	}
}

func (n *SMTPNotifier) UserCreated(ctx context.Context, email, username string) error {
	return n.send(ctx, createdTmpl, createdSubject, email, username)
}

func (n *SMTPNotifier) UserUpdated(ctx context.Context, email, username string) error {
	return n.send(ctx, updatedTmpl, updatedSubject, email, username)
}

func (n *SMTPNotifier) send(ctx context.Context, tmpl *template.Template, subject, email, username string) error {
	var body bytes.Buffer
	data := struct{ Email, Username string }{email, username}
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("%w: %v", errExecTemplate, err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body.String())

	if err := n.dialer.DialAndSend(m); err != nil {
		n.logger.Error(ctx, "mail delivery failed", "to", email, "subject", subject, "err", err)
		return fmt.Errorf("%w: %v", errSendMail, err)
	}

	n.logger.Debug(ctx, "mail sent", "to", email, "subject", subject)
	return nil
}
