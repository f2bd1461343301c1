package infra

import (
	"bytes"
	"fmt"
	"net/smtp"

	"energen/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer sends report emails through the configured SMTP relay.
type Mailer struct {
	from string
	host string
	user string
	pass string
	addr string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		from: cfg.MailFrom(),
		host: cfg.SMTPHost,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPassword,
		addr: fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// Configurado is false when no SMTP host was set; sends would always fail.
func (m *Mailer) Configurado() bool { return m.host != "" }

// SendReporte mails body to `to` with the optional attachment.
func (m *Mailer) SendReporte(to, subject, body string, adjunto []byte, nombreAdjunto, contentType string) error {
	if !m.Configurado() {
		return fmt.Errorf("mailer: SMTP_HOST not configured")
	}
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	if len(adjunto) > 0 {
		if _, err := e.Attach(bytes.NewReader(adjunto), nombreAdjunto, contentType); err != nil {
			return fmt.Errorf("mailer: attach %s: %w", nombreAdjunto, err)
		}
	}

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}
	return e.Send(m.addr, auth)
}
