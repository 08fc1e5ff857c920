// Package mailer sends outbound mail for the contact form.
package mailer

import (
	"fmt"
	"net/smtp"
)

// Mailer sends a plain-text message.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer delivers mail through an authenticated SMTP relay with
// STARTTLS, the way a gmail-style submission endpoint expects.
type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// NewSMTPMailer creates a new SMTPMailer
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
	}
}

// Send delivers the message. Failures are returned to the caller; the
// contact boundary decides how to surface them.
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		m.From, to, subject, body)

	addr := fmt.Sprintf("%s:%d", m.Host, m.Port)
	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)
	return smtp.SendMail(addr, auth, m.From, []string{to}, []byte(msg))
}
