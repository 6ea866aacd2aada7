// Package mail implements the contact-form email collaborator.
package mail

import (
	"errors"
	"fmt"
	"net/smtp"

	"go-portfolio-app/internal/config"
)

// Message is one contact-form submission.
type Message struct {
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
	Subject   string `json:"subject"`
	Body      string `json:"message"`
}

// Sender delivers a contact message: success or failure, nothing more.
// Failures are reported to the visitor as a generic error.
type Sender interface {
	Send(m Message) error
}

// SMTPSender delivers messages over plain SMTP.
type SMTPSender struct {
	host     string
	port     string
	username string
	password string
	to       string
}

// NewSMTPSender creates an SMTPSender from configuration.
func NewSMTPSender(cfg config.MailConfig) *SMTPSender {
	return &SMTPSender{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		to:       cfg.To,
	}
}

// Send delivers the message to the configured recipient.
func (s *SMTPSender) Send(m Message) error {
	if s.host == "" || s.to == "" {
		return errors.New("mail is not configured")
	}

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	subject := m.Subject
	if subject == "" {
		subject = "Portfolio contact from " + m.FromName
	}
	body := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nReply-To: %s\r\n\r\n%s\r\n",
		m.FromName, s.username, s.to, subject, m.FromEmail, m.Body)

	addr := s.host + ":" + s.port
	if err := smtp.SendMail(addr, auth, s.username, []string{s.to}, []byte(body)); err != nil {
		return fmt.Errorf("failed to send contact email: %w", err)
	}
	return nil
}
