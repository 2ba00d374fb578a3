// Package mail sends transactional email. The SMTP transport itself is an
// external collaborator; everything here goes through the Mailer interface
// so the outbox worker and OTP service can be tested without a server.
package mail

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	intconfig "courierdesk/internal/config"
)

type Mailer interface {
	Send(to, subject, body string) error
}

type SMTPMailer struct {
	host string
	port string
	user string
	pass string
	from string
}

func NewSMTPMailer(env intconfig.Env) (*SMTPMailer, error) {
	if env.SMTPHost == "" || env.SMTPFrom == "" {
		return nil, fmt.Errorf("missing SMTP_HOST or SMTP_FROM")
	}
	return &SMTPMailer{
		host: env.SMTPHost,
		port: env.SMTPPort,
		user: env.SMTPUser,
		pass: env.SMTPPass,
		from: env.SMTPFrom,
	}, nil
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	var msg strings.Builder
	msg.WriteString("From: " + m.from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(body)

	addr := m.host + ":" + m.port
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}
	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg.String()))
}

// LogMailer is the dev fallback when SMTP is not configured.
type LogMailer struct{}

func (LogMailer) Send(to, subject, _ string) error {
	log.Printf("[MAIL] (not configured) to=%s subject=%q", to, subject)
	return nil
}
